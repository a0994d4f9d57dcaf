package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"project-store/internal/models"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "treectl",
		Short: "Inspect and flatten project file trees",
		Long: `treectl reads a nested project file tree (a JSON object mapping names to
{"content"}, {"url"} or {"files"} descriptors) and prints the flat node list
that would be stored for it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.AddCommand(newFlattenCmd())
	root.AddCommand(newStatsCmd())
	return root
}

// readTree loads directory contents from the named file, or from stdin when
// no file (or "-") is given.
func readTree(cmd *cobra.Command, args []string) (models.DirectoryContents, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, fmt.Errorf("read tree: %w", err)
	}

	if !models.IsJSONObject(data) {
		return nil, fmt.Errorf("tree must be a JSON object")
	}
	return models.ParseDirectory(data)
}

package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"project-store/internal/idgen"
	"project-store/internal/projectmap"
)

func newFlattenCmd() *cobra.Command {
	var (
		idFormat  string
		stripRoot bool
		compact   bool
	)

	cmd := &cobra.Command{
		Use:   "flatten [file]",
		Short: "Print the flat node list for a file tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			newID, err := idgen.New(idFormat)
			if err != nil {
				return err
			}
			tree, err := readTree(cmd, args)
			if err != nil {
				return err
			}

			nodes, err := projectmap.NewFlattener(newID).TransformFiles(tree)
			if err != nil {
				return err
			}
			if stripRoot {
				nodes = projectmap.StripRoot(nodes)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(nodes)
		},
	}

	cmd.Flags().StringVar(&idFormat, "id-format", idgen.FormatUUID, "node id format: uuid, objectid or ulid")
	cmd.Flags().BoolVar(&stripRoot, "strip-root", false, "omit the synthetic root folder")
	cmd.Flags().BoolVar(&compact, "compact", false, "print without indentation")
	return cmd
}

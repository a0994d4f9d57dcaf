package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"project-store/internal/idgen"
	"project-store/internal/models"
	"project-store/internal/projectmap"
)

type treeStats struct {
	Nodes     int
	Folders   int
	Files     int
	URLFiles  int
	MaxDepth  int
	EmptyDirs int
}

// computeStats walks a flattened node list from its root. Depth counts
// levels below the synthetic root, so a top-level file has depth 1.
func computeStats(nodes []models.FileNode) treeStats {
	var s treeStats
	if len(nodes) == 0 {
		return s
	}

	byID := make(map[string]*models.FileNode, len(nodes))
	for i := range nodes {
		byID[nodes[i].ID] = &nodes[i]
	}

	var walk func(n *models.FileNode, depth int)
	walk = func(n *models.FileNode, depth int) {
		s.Nodes++
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		if !n.IsFolder() {
			s.Files++
			if n.URL != nil {
				s.URLFiles++
			}
			return
		}
		s.Folders++
		if len(n.Children) == 0 {
			s.EmptyDirs++
		}
		for _, id := range n.Children {
			if child, ok := byID[id]; ok {
				walk(child, depth+1)
			}
		}
	}
	walk(&nodes[0], 0)
	return s
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [file]",
		Short: "Print node counts and depth of a file tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := readTree(cmd, args)
			if err != nil {
				return err
			}
			nodes, err := projectmap.NewFlattener(idgen.Sequence("n")).TransformFiles(tree)
			if err != nil {
				return err
			}

			s := computeStats(nodes)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "nodes:       %d\n", s.Nodes)
			fmt.Fprintf(out, "folders:     %d (root included, %d empty)\n", s.Folders, s.EmptyDirs)
			fmt.Fprintf(out, "files:       %d (%d by url)\n", s.Files, s.URLFiles)
			fmt.Fprintf(out, "max depth:   %d\n", s.MaxDepth)
			return nil
		},
	}
}

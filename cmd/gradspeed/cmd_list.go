package main

import (
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"github.com/born-ml/gradspeed/internal/algo"
	"github.com/born-ml/gradspeed/internal/driver"
)

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List backends and the algorithms they support",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			a.out.Line(backendTree(a.runner.Registry()).String())
			return nil
		},
	}
}

func backendTree(r *driver.Registry) treeprint.Tree {
	tree := treeprint.NewWithRoot("backends")
	for _, b := range r.Backends() {
		branch := tree.AddMetaBranch(b.Name, b.Description)
		for _, name := range algo.Names() {
			if b.Supports(name) {
				branch.AddNode(name)
			}
		}
	}
	return tree
}

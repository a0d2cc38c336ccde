package main

import "github.com/spf13/cobra"

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			a.out.Line("gradspeed " + version)
		},
	}
}

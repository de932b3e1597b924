package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the espalier version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("espalier %s\n", espalier.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

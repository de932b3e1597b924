package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/internal/cli"
	"github.com/aretw0/espalier/internal/presentation/graph"
	"github.com/aretw0/espalier/internal/resolver"
	"github.com/aretw0/espalier/pkg/domain"
)

var graphCmd = &cobra.Command{
	Use:   "graph <plan>",
	Short: "Render a plan as a Mermaid diagram",
	Long: `Compiles a plan and prints a Mermaid flowchart of its prerequisite and
co-requisite edges. Nodes are colored by eligibility computed from the
statuses declared in the document.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		plain, _ := cmd.Flags().GetBool("plain")

		cur, err := cli.LoadPlan(dir, args[0])
		if err != nil {
			fmt.Printf("Error loading plan: %v\n", err)
			os.Exit(1)
		}

		var overlay map[string]domain.Eligibility
		if !plain {
			overlay = resolver.Resolve(cur, domain.NewProgress(cur))
		}
		fmt.Println(graph.GenerateMermaid(cur, overlay))
	},
}

func init() {
	graphCmd.Flags().Bool("plain", false, "Omit the eligibility overlay")
	rootCmd.AddCommand(graphCmd)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/internal/cli"
	"github.com/aretw0/espalier/internal/presentation/tui"
	"github.com/aretw0/espalier/internal/resolver"
	"github.com/aretw0/espalier/pkg/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status <plan>",
	Short: "Show eligibility for a plan",
	Long: `Compiles a plan, resolves eligibility from the statuses declared in the
document, and prints the courses grouped by semester. With --groups the
co-requisite packages are listed as well.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		showGroups, _ := cmd.Flags().GetBool("groups")

		cur, err := cli.LoadPlan(dir, args[0])
		if err != nil {
			fmt.Printf("Error loading plan: %v\n", err)
			os.Exit(1)
		}

		elig := resolver.Resolve(cur, domain.NewProgress(cur))
		renderer := tui.NewRenderer()
		fmt.Print(renderer.RenderCurriculum(cur, elig))

		if showGroups {
			fmt.Println()
			fmt.Print(renderer.RenderGroups(cur, domain.CoreqGroups(cur)))
		}
	},
}

func init() {
	statusCmd.Flags().Bool("groups", false, "List co-requisite packages")
	rootCmd.AddCommand(statusCmd)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/internal/cli"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/plan"
)

var exportCmd = &cobra.Command{
	Use:   "export <plan>",
	Short: "Print a plan document to stdout",
	Long: `Compiles a plan and re-encodes it, normalized, to stdout. Useful for
converting between JSON and YAML or for checking what a document looks
like after a round trip.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		format, _ := cmd.Flags().GetString("format")

		cur, err := cli.LoadPlan(dir, args[0])
		if err != nil {
			fmt.Printf("Error loading plan: %v\n", err)
			os.Exit(1)
		}

		doc := plan.FromCurriculum(cur, domain.NewProgress(cur))

		var out []byte
		switch format {
		case "json":
			out, err = plan.EncodeJSON(doc)
		case "yaml":
			out, err = plan.EncodeYAML(doc)
		default:
			fmt.Printf("Unknown format %q (want json or yaml)\n", format)
			os.Exit(1)
		}
		if err != nil {
			fmt.Printf("Error encoding plan: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "Output format (json or yaml)")
	rootCmd.AddCommand(exportCmd)
}

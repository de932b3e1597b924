package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/internal/cli"
	"github.com/aretw0/espalier/pkg/adapters/file"
	"github.com/aretw0/espalier/pkg/plan"
)

var validateCmd = &cobra.Command{
	Use:   "validate [plan]",
	Short: "Check plan documents for consistency",
	Long: `Compiles one plan (or every plan in the directory) and reports dangling
references, self-references and prerequisite cycles.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")

		var ids []string
		if len(args) > 0 {
			ids = args
		} else {
			var err error
			ids, err = file.New(dir).List()
			if err != nil {
				fmt.Printf("Validation failed: %v\n", err)
				os.Exit(1)
			}
			if len(ids) == 0 {
				fmt.Printf("No plans found in %s\n", dir)
				os.Exit(1)
			}
		}

		failed := 0
		for _, id := range ids {
			if err := validatePlan(dir, id); err != nil {
				failed++
				fmt.Printf("✗ %s\n", id)
				if subs := plan.ValidationErrors(err); subs != nil {
					for _, sub := range subs {
						fmt.Printf("    %v\n", sub)
					}
				} else {
					fmt.Printf("    %v\n", err)
				}
				continue
			}
			fmt.Printf("✓ %s\n", id)
		}

		if failed > 0 {
			fmt.Printf("\n%d of %d plans failed validation\n", failed, len(ids))
			os.Exit(1)
		}
		fmt.Println("\nAll plans are valid! ✅")
	},
}

func validatePlan(dir, id string) error {
	_, err := cli.LoadPlan(dir, id)
	return err
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

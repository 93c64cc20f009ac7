package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fundboard/internal/cli"
	"github.com/theirongolddev/fundboard/internal/pipeline"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the values accepted by --industry, --city and --year",
	RunE:  runOptions,
}

func init() {
	rootCmd.AddCommand(optionsCmd)
}

func runOptions(_ *cobra.Command, _ []string) error {
	result := loadData()
	if result.Empty() {
		fmt.Println("\n  No startup data found.")
		return nil
	}

	opts := pipeline.Options(result.Dataset)

	fmt.Println()
	fmt.Println(cli.RenderTitle("FILTER OPTIONS"))

	for _, group := range []struct {
		name string
		vals []string
	}{
		{"Industries", opts.Industries},
		{"Cities", opts.Cities},
		{"Years", opts.Years},
	} {
		fmt.Printf("\n  %s (%d)\n", group.name, len(group.vals)-1)
		fmt.Println("  " + strings.Join(group.vals, ", "))
	}
	return nil
}

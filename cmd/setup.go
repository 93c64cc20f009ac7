package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fundboard/internal/config"
	"github.com/theirongolddev/fundboard/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	next := cfg
	horizon := strconv.Itoa(next.Forecast.HorizonDays)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Funding CSV").
				Description("Path to the startup funding export.").
				Value(&next.General.DataFile).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("a file path is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&next.Appearance.Theme),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Forecast horizon").
				Options(
					huh.NewOption("90 days", "90"),
					huh.NewOption("180 days", "180"),
					huh.NewOption("365 days", "365"),
					huh.NewOption("730 days", "730"),
				).
				Value(&horizon),
			huh.NewInput().
				Title("API listen address").
				Value(&next.Server.Addr),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&next.Logging.Level),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("\n  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	if n, err := strconv.Atoi(horizon); err == nil {
		next.Forecast.HorizonDays = n
	}
	next.General.DataFile = strings.TrimSpace(next.General.DataFile)

	if err := config.Save(next); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	if _, err := os.Stat(next.General.DataFile); err != nil {
		fmt.Println("  Note: the data file does not exist yet.")
	}
	fmt.Println("  Run `fundboard setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

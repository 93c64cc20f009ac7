package cmd

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fundboard/internal/logging"
	"github.com/theirongolddev/fundboard/internal/pipeline"
	"github.com/theirongolddev/fundboard/internal/tui"
	"github.com/theirongolddev/fundboard/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// Reject a malformed --year before taking over the screen.
	if _, err := pipeline.ParseCriteria(flagIndustry, flagCity, flagYear); err != nil {
		return err
	}

	theme.SetActive(cfg.Appearance.Theme)

	// Log lines would tear the alt screen.
	logging.Setup(cfg.Logging, io.Discard)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(cfg.General.DataFile, cfg.Forecast.HorizonDays, flagIndustry, flagCity, flagYear)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

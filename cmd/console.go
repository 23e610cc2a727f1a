package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/productbazar/bazaaradmin/internal/console"
	"github.com/productbazar/bazaaradmin/internal/tui"
	"github.com/productbazar/bazaaradmin/pkg/logger"
	"github.com/spf13/cobra"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open the interactive role-management console",
	Long: `Open the role-management console: search and filter users, inspect
their roles and capabilities, and change primary or secondary roles.

The console logs to a file since it owns the terminal. Set BAZAAR_LOG_FILE
to choose where.`,
	Args: cobra.NoArgs,
	RunE: runConsole,
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

func runConsole(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	logPath := cfg.ConsoleLogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	level := cfg.LogLevel
	if level == "" {
		level = "info"
	}
	if err := logger.Init(logger.Config{Level: level, Output: logPath}); err != nil {
		return fmt.Errorf("opening console log: %w", err)
	}
	logger.Info("console_started", map[string]interface{}{"server": cfg.ServerURL})

	app := tui.New(apiClient, tui.Options{
		NarrowWidth: cfg.NarrowWidth,
		Clipboard:   clipboard.WriteAll,
		Notifier:    console.LogNotifier{},
	})
	defer app.Console().Close()

	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil && cmd.Context().Err() == nil {
		return fmt.Errorf("running console: %w", err)
	}
	logger.Info("console_stopped", nil)
	return nil
}

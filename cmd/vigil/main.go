package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vigilops/vigil/internal/app"
	"github.com/vigilops/vigil/internal/config"
	"github.com/vigilops/vigil/internal/connectivity"
	"github.com/vigilops/vigil/internal/logger"
	"github.com/vigilops/vigil/internal/sound"
)

var (
	// Version info (set by ldflags)
	version = "dev"

	// Flags
	debug   bool
	logPath string
	feedURL string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vigil",
		Short: "Realtime operations dashboard",
		Long: `vigil is a terminal dashboard for a realtime alert feed. It ranks active
alerts by severity and recency, tracks feed connectivity, and surfaces
server-pushed notifications as they arrive.`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logPath, "log-file", "", "log file path (default ~/.config/vigil/vigil.log)")
	rootCmd.Flags().StringVar(&feedURL, "feed-url", "", "override the feed websocket URL")

	rootCmd.AddCommand(newConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		// Error already printed by cobra
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if feedURL != "" {
		cfg.Feed.URL = feedURL
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}

	logLevel := logger.LevelInfo
	if debug || cfg.Debug {
		logLevel = logger.LevelDebug
	}
	logger.Init(logLevel, logPath)
	defer logger.Close()
	logger.Info("vigil starting", "version", version, "feed_url", cfg.Feed.URL)

	probe, err := connectivity.NewProbe(cfg.Feed.URL, cfg.Feed.ProbeInterval, cfg.Feed.ProbeTimeout)
	if err != nil {
		return fmt.Errorf("starting network probe: %w", err)
	}
	defer probe.Close()

	var player sound.Player = sound.Muted{}
	if cfg.Sound.Enabled {
		player = sound.NewBellPlayer(nil)
	}

	model := app.New(cfg, probe, player)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	if m, ok := finalModel.(*app.App); ok {
		m.Cleanup()
	}

	return nil
}

// newConfigCmd creates the config subcommand.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration helpers",
	}
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

// newConfigShowCmd prints the effective configuration after defaults,
// file, and environment are merged.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshaling config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

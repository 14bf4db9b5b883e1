package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"finderhub/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set the directory url and api_key (or export DIRECTORY_URL and DIRECTORY_KEY) before running FinderHub.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(ctx.configPath())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			rows := [][2]string{
				{"Data directory", cfg.Paths.DataDir},
				{"Log directory", cfg.Paths.LogDir},
				{"Directory URL", cfg.Directory.URL},
				{"Directory key", redactSecret(cfg.Directory.APIKey)},
				{"Provider table", cfg.Directory.Table},
				{"Web search model", cfg.WebSearch.Model},
				{"Web search key", redactSecret(cfg.WebSearch.APIKey)},
				{"Firecrawl key", redactSecret(cfg.Firecrawl.APIKey)},
				{"Budget ceiling", fmt.Sprintf("%d credits", cfg.Budget.Ceiling)},
				{"Budget reserve", fmt.Sprintf("%d credits", cfg.Budget.Reserve)},
				{"Ledger backend", cfg.Budget.Backend},
				{"Ledger path", cfg.ResolvedLedgerPath()},
				{"Ledger locking", yesNo(cfg.Budget.Locking)},
				{"Batch", fmt.Sprintf("%d (size %d)", cfg.Batch.Number, cfg.Batch.Size)},
				{"Notifications", notifyTopicLabel(cfg.Notifications.Topic)},
				{"Log level", cfg.Logging.Level},
				{"Log format", cfg.Logging.Format},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSettingsTable(rows))
			return nil
		},
	}
}

func renderSettingsTable(rows [][2]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Setting", "Value"})
	for _, row := range rows {
		tw.AppendRow(table.Row{row[0], row[1]})
	}
	return tw.Render()
}

func redactSecret(value string) string {
	if strings.TrimSpace(value) == "" {
		return "(not set)"
	}
	return "(set)"
}

func notifyTopicLabel(topic string) string {
	if strings.TrimSpace(topic) == "" {
		return "disabled"
	}
	return topic
}

package main

import (
	"fmt"
	"sort"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/jamesainslie/sift/pkg/sift/config"
	"github.com/jamesainslie/sift/pkg/sift/logging"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: heredoc.Doc(`
			Manage sift configuration settings.

			Configuration is loaded from $XDG_CONFIG_HOME/sift/config.yaml, or the
			file given with --config. Command line flags override file values.
			Environment variables are not consulted.
		`),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  `Display the configuration after merging the config file, flags and defaults.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigShow(cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Long:  `Create a default configuration file if one doesn't exist.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigInit(cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Long:  `Display the path to the configuration file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigPath(cmd)
		},
	})
	return cmd
}

// configFilePath returns the file given with --config or the default one.
func (a *app) configFilePath() (string, error) {
	if a.cfgFile != "" {
		return config.ExpandPath(a.cfgFile)
	}
	return config.ConfigPath(), nil
}

// runConfigShow displays the current configuration.
func (a *app) runConfigShow(cmd *cobra.Command) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	defer func() { _ = logging.Close() }()

	w := cmd.OutOrStdout()
	if used := a.v.ConfigFileUsed(); used != "" {
		fmt.Fprintf(w, "Config file: %s\n\n", used)
	} else {
		fmt.Fprintln(w, "Config file: (using defaults, no file found)")
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Current Configuration:")
	fmt.Fprintln(w, "----------------------")
	fmt.Fprintf(w, "default_path:         %s\n", cfg.DefaultPath)
	fmt.Fprintf(w, "output:               %s\n", cfg.Output)
	fmt.Fprintf(w, "out_dir:              %s\n", cfg.OutDir)
	fmt.Fprintf(w, "charts.enabled:       %t\n", cfg.Charts.Enabled)
	fmt.Fprintf(w, "charts.width:         %d\n", cfg.Charts.Width)
	fmt.Fprintf(w, "charts.height:        %d\n", cfg.Charts.Height)
	fmt.Fprintf(w, "charts.bins:          %d\n", cfg.Charts.Bins)
	fmt.Fprintf(w, "logging.level:        %s\n", cfg.Logging.Level)
	fmt.Fprintf(w, "logging.format:       %s\n", cfg.Logging.Format)
	if cfg.Logging.Path != "" {
		fmt.Fprintf(w, "logging.path:         %s\n", cfg.Logging.Path)
	} else {
		fmt.Fprintf(w, "logging.path:         (disabled, e.g. %s)\n", logging.DefaultLogPath())
	}

	components := make([]string, 0, len(cfg.Logging.Components))
	for name := range cfg.Logging.Components {
		components = append(components, name)
	}
	sort.Strings(components)
	for _, name := range components {
		fmt.Fprintf(w, "logging.components.%s: %s\n", name, cfg.Logging.Components[name])
	}
	return nil
}

// runConfigInit creates a default config file.
func (a *app) runConfigInit(cmd *cobra.Command) error {
	path, err := a.configFilePath()
	if err != nil {
		return err
	}

	written, err := config.WriteDefault(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	w := cmd.OutOrStdout()
	if !written {
		fmt.Fprintf(w, "Config file already exists: %s\n", path)
		return nil
	}
	fmt.Fprintf(w, "Created default config file: %s\n", path)
	return nil
}

// runConfigPath prints the config file path.
func (a *app) runConfigPath(cmd *cobra.Command) error {
	path, err := a.configFilePath()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

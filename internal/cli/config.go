package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tessro/wavebar/internal/config"
	"github.com/tessro/wavebar/internal/wizard"
)

var (
	configInitDefaults bool
	configInitForce    bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing wavebar configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration, including defaults and environment overrides.`,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long:  `Open the configuration file in your default editor.`,
	RunE:  runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a new configuration file.

In a terminal this asks for your Spotify client ID, theme and bar settings.
Use --defaults to write the defaults without prompting.`,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Supported keys:
  spotify.client_id      Spotify client ID
  spotify.redirect_uri   OAuth redirect URI
  ui.theme               auto, dark, light, latte, frappe, macchiato, mocha
  ui.refresh_interval    Polling interval in milliseconds
  ui.waveform            Draw the loudness waveform (true/false)
  ui.bar_rows            Bar height in rows (1-4)
  ui.mouse               Enable mouse seeking (true/false)
  cache.analysis_size    Number of analyses kept in memory
  log.level              debug, info, warn, error
  log.file               Log file path

Examples:
  wavebar config set ui.theme mocha
  wavebar config set ui.bar_rows 2`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitDefaults, "defaults", false, "Write defaults without prompting")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if JSONOutput() {
		return printJSON(cmd.OutOrStdout(), cfg)
	}

	encoder := toml.NewEncoder(cmd.OutOrStdout())
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path := getConfigPath()
	if JSONOutput() {
		_, err := os.Stat(path)
		return printJSON(cmd.OutOrStdout(), map[string]any{"path": path, "exists": err == nil})
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found at %s. Run 'wavebar config init' first", configPath)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"nano", "vim", "vi", "notepad"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set EDITOR environment variable")
	}

	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	return editorCmd.Run()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil && !configInitForce {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", configPath)
	}

	newCfg := config.Default()
	if v := cfg.Spotify.ClientID; v != "" {
		newCfg.Spotify.ClientID = v
	}

	interactive := wizard.NewInteractive()
	interactive.SetEnabled(!configInitDefaults && !JSONOutput())
	answers, err := interactive.PromptSetup(wizard.SetupFrom(newCfg))
	if errors.Is(err, huh.ErrUserAborted) {
		return errors.New("setup cancelled")
	}
	if err != nil {
		return err
	}
	if answers != nil {
		answers.Apply(newCfg)
	}

	if err := newCfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(configPath, newCfg); err != nil {
		return err
	}
	logger.Info("wrote config", "path", configPath)

	if JSONOutput() {
		return printJSON(out, map[string]string{
			"status": "created",
			"path":   configPath,
		})
	}
	_, _ = fmt.Fprintf(out, "Created config file: %s\n", configPath)
	_, _ = fmt.Fprintln(out, "\nNext steps:")
	if newCfg.Spotify.ClientID == "" {
		_, _ = fmt.Fprintln(out, "  - Set spotify.client_id with 'wavebar config set' or WAVEBAR_SPOTIFY_CLIENT_ID")
	}
	_, _ = fmt.Fprintln(out, "  - Run 'wavebar auth login' to authenticate with Spotify")
	_, _ = fmt.Fprintln(out, "  - Run 'wavebar ui' to open the bar")
	return nil
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if path := config.FindFile(); path != "" {
		return path
	}
	return config.DefaultPath()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	configPath := getConfigPath()

	fileCfg := config.Default()
	if _, err := os.Stat(configPath); err == nil {
		fileCfg, err = config.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := fileCfg.Set(key, value); err != nil {
		return err
	}
	if err := fileCfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(configPath, fileCfg); err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(cmd.OutOrStdout(), map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessro/wavebar/internal/core"
)

// transportCmd builds a command that sends one transport command.
func transportCmd(use, short string, command core.Command, done string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := getSpotifyPlayer()
			if err != nil {
				return err
			}
			if err := core.Dispatch(cmd.Context(), p, command); err != nil {
				return fmt.Errorf("failed to %s: %w", command, err)
			}
			logger.Debug("transport", "command", command.String())

			if JSONOutput() {
				return printJSON(cmd.OutOrStdout(), map[string]string{"status": "ok", "command": command.String()})
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), done)
			return nil
		},
	}
}

var restartCmd = &cobra.Command{
	Use:     "restart",
	Aliases: []string{"replay"},
	Short:   "Restart current track",
	Long:    `Restart the current track from the beginning.`,
	Args:    cobra.NoArgs,
	RunE:    runRestart,
}

func init() {
	rootCmd.AddCommand(transportCmd("pause", "Pause playback", core.CommandPause, "⏸ Paused"))
	rootCmd.AddCommand(transportCmd("resume", "Resume playback", core.CommandResume, "▶ Resumed"))
	rootCmd.AddCommand(transportCmd("next", "Skip to next track", core.CommandNext, "⏭ Next track"))
	rootCmd.AddCommand(transportCmd("prev", "Go to previous track", core.CommandPrevious, "⏮ Previous track"))
	rootCmd.AddCommand(restartCmd)
}

func runRestart(cmd *cobra.Command, args []string) error {
	return seekTo(cmd, "0")
}

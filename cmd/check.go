package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/speechmark/speechmark/config"
	"github.com/speechmark/speechmark/constant"
	"github.com/speechmark/speechmark/icon"
	"github.com/speechmark/speechmark/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkCmd reports whether the configured media player can be found.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that the media player is installed",
	Run: func(cmd *cobra.Command, args []string) {
		binary := config.Load().PlayerBinary
		path := CheckDependencies(binary)
		cmd.Printf("%s %s found at %s\n", style.Fg(style.SuccessColor)(icon.Get(icon.Success)), binary, path)
	},
}

// CheckDependencies exits with install instructions when the player binary is not in PATH.
// It returns the resolved path otherwise.
func CheckDependencies(binary string) string {
	path, err := exec.LookPath(binary)
	if err != nil {
		printMissingDependencyError(binary)
		os.Exit(1)
	}
	return path
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case constant.Darwin:
		installCmd = "brew install mpv"
	case constant.Linux:
		installCmd = "sudo apt install mpv"
	case constant.Windows:
		installCmd = "scoop install mpv"
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.ErrorColor).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.ErrorColor).Render(fmt.Sprintf("%s Missing media player", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("'%s' was not found in your PATH.", dep))

	suggestion := fmt.Sprintf(
		"\n\nSet another executable with:\n  %s",
		style.New().Foreground(style.AccentColor).Bold(true).Render(constant.Speechmark+" config set player.binary /path/to/mpv"),
	)
	if installCmd != "" {
		suggestion = fmt.Sprintf(
			"\n\nTo install it, try running:\n  %s%s",
			style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd),
			suggestion,
		)
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}

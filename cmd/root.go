// Package cmd implements the command-line interface for speechmark.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/speechmark/speechmark/config"
	"github.com/speechmark/speechmark/constant"
	"github.com/speechmark/speechmark/icon"
	"github.com/speechmark/speechmark/key"
	"github.com/speechmark/speechmark/log"
	"github.com/speechmark/speechmark/style"
	"github.com/speechmark/speechmark/tui"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.Flags().BoolP("write-history", "H", true, "Remember the playback position of the video to resume later")
	lo.Must0(viper.BindPFlag(key.HistorySave, rootCmd.Flags().Lookup("write-history")))

	rootCmd.Flags().IntP("loop-interval", "l", 0, "Length of the loop window in milliseconds")
	lo.Must0(viper.BindPFlag(key.PlayerLoopInterval, rootCmd.Flags().Lookup("loop-interval")))

	rootCmd.Flags().StringP("transcript", "t", "", "Transcript file to open or create")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("transcript", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return constant.TranscriptExtensions, cobra.ShellCompDirectiveFilterFileExt
	}))

	rootCmd.Flags().BoolP("continue", "c", false, "Reopen the most recent session at its saved position")
	rootCmd.MarkFlagsMutuallyExclusive("continue", "version")
}

// rootCmd opens the annotation workspace.
var rootCmd = &cobra.Command{
	Use:   constant.Speechmark + " [video] [transcript]",
	Short: "Transcribe and annotate video from the terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(style.AccentColor).Render("    - Transcribe and annotate video from the terminal"),
	Args: cobra.MaximumNArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return constant.VideoExtensions, cobra.ShellCompDirectiveFilterFileExt
		}
		return constant.TranscriptExtensions, cobra.ShellCompDirectiveFilterFileExt
	},
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("version")) {
			versionCmd.Run(versionCmd, args)
			return
		}

		settings := config.Load()
		CheckDependencies(settings.PlayerBinary)

		options := tui.Options{
			Settings:   settings,
			Transcript: lo.Must(cmd.Flags().GetString("transcript")),
			Continue:   lo.Must(cmd.Flags().GetBool("continue")),
		}

		if len(args) > 0 {
			options.Video = args[0]
		}
		if len(args) > 1 {
			if options.Transcript != "" {
				handleErr(fmt.Errorf("transcript given both as an argument and with --transcript"))
			}
			options.Transcript = args[1]
		}

		if options.Continue && options.Video != "" {
			handleErr(fmt.Errorf("--continue reopens the last video and takes no video argument"))
		}

		handleErr(tui.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

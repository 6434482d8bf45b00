package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/speechmark/speechmark/color"
	"github.com/speechmark/speechmark/history"
	"github.com/speechmark/speechmark/icon"
	"github.com/speechmark/speechmark/style"
	"github.com/speechmark/speechmark/timecode"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringP("query", "q", "", "Only show videos whose name fuzzily matches the query")
	historyCmd.Flags().StringP("remove", "r", "", "Forget the session of this video")
	historyCmd.Flags().BoolP("json", "j", false, "Print the sessions as JSON")
	historyCmd.MarkFlagsMutuallyExclusive("query", "remove")

	historyCmd.SetOut(os.Stdout)
}

// historyCmd lists the sessions that can be resumed.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent annotation sessions",
	Run: func(cmd *cobra.Command, args []string) {
		if video := lo.Must(cmd.Flags().GetString("remove")); video != "" {
			handleErr(history.Remove(video))
			cmd.Printf("%s forgot %s\n", style.Fg(style.SuccessColor)(icon.Get(icon.Success)), video)
			return
		}

		var (
			entries []*history.Entry
			err     error
		)
		if query := lo.Must(cmd.Flags().GetString("query")); query != "" {
			entries, err = history.Find(query)
		} else {
			entries, err = history.Sorted()
		}
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(lo.Ternary(entries == nil, []*history.Entry{}, entries)))
			return
		}

		if len(entries) == 0 {
			cmd.Println(style.Faint("No sessions yet"))
			return
		}

		for _, entry := range entries {
			cmd.Printf(
				"%s %s\n  %s / %s  %s\n",
				icon.Get(icon.Video),
				style.Fg(color.Purple)(entry.Name()),
				style.Timecode(timecode.Format(entry.PositionMs)),
				timecode.Format(entry.DurationMs),
				style.Faint(humanize.Time(entry.UpdatedAt)),
			)

			if entry.Transcript != "" {
				cmd.Printf("  %s %s\n", icon.Get(icon.Transcript), entry.Transcript)
			}
		}

		cmd.Println(style.Faint(fmt.Sprintf("\nResume the latest with %s --continue", cmd.Root().Name())))
	},
}

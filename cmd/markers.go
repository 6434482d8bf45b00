package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/speechmark/speechmark/constant"
	"github.com/speechmark/speechmark/filesystem"
	"github.com/speechmark/speechmark/icon"
	"github.com/speechmark/speechmark/style"
	"github.com/speechmark/speechmark/transcript"
	"github.com/speechmark/speechmark/util"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func init() {
	rootCmd.AddCommand(markersCmd)

	markersCmd.Flags().StringP("format", "f", string(transcript.FormatText), fmt.Sprintf("Output format, one of %v", transcript.Formats))
	lo.Must0(markersCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(transcript.Formats, func(f transcript.Format, _ int) string { return string(f) }), cobra.ShellCompDirectiveNoFileComp
	}))

	markersCmd.Flags().StringP("query", "q", "", "Only keep segments whose text fuzzily matches the query")
	markersCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
	markersCmd.Flags().Bool("schema", false, "Print the JSON schema of a segment and exit")
	markersCmd.Flags().Bool("skip-flagged", false, "Leave out segments whose start time was lost")

	markersCmd.SetOut(os.Stdout)
}

// markersCmd extracts the [start]-[end] segments of a transcript.
var markersCmd = &cobra.Command{
	Use:     "markers transcript",
	Short:   "Export the timed segments of a transcript",
	Example: "  " + constant.Speechmark + " markers interview.txt --format srt -o interview.srt",
	Args: func(cmd *cobra.Command, args []string) error {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return constant.TranscriptExtensions, cobra.ShellCompDirectiveFilterFileExt
	},
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			schema := jsonschema.Reflect(&[]transcript.Segment{})
			data, err := json.MarshalIndent(schema, "", "  ")
			handleErr(err)
			cmd.Println(string(data))
			return
		}

		format, err := transcript.ParseFormat(lo.Must(cmd.Flags().GetString("format")))
		handleErr(err)

		doc := transcript.NewDocument()
		handleErr(doc.Load(args[0]))

		segments := transcript.Segments(doc.Text())

		if query := lo.Must(cmd.Flags().GetString("query")); query != "" {
			segments = lo.Filter(segments, func(s transcript.Segment, _ int) bool {
				return fuzzy.MatchNormalizedFold(query, s.Text)
			})
		}

		if lo.Must(cmd.Flags().GetBool("skip-flagged")) {
			segments = lo.Reject(segments, func(s transcript.Segment, _ int) bool {
				return s.Flagged
			})
		}

		var buf bytes.Buffer
		handleErr(transcript.Render(&buf, segments, format))

		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			handleErr(filesystem.WriteAtomic(output, buf.Bytes(), 0o644))
			fmt.Fprintf(
				os.Stderr,
				"%s wrote %s to %s\n",
				style.Fg(style.SuccessColor)(icon.Get(icon.Success)),
				util.Quantify(len(segments), "segment", "segments"),
				output,
			)
			return
		}

		out := buf.String()
		if format == transcript.FormatText && term.IsTerminal(int(os.Stdout.Fd())) {
			if width, _, err := util.TerminalSize(); err == nil && width > 0 {
				out = wordwrap.String(out, width)
			}
		}
		cmd.Print(out)
	},
}

package cmd

import (
	"os"

	"github.com/speechmark/speechmark/color"
	"github.com/speechmark/speechmark/style"
	"github.com/speechmark/speechmark/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

type whereTarget struct {
	name     string
	where    func() string
	argLong  string
	argShort mo.Option[string]
	hidden   bool
}

var wherePaths = []*whereTarget{
	{"Config", where.Config, "config", mo.Some("c"), false},
	{"Logs", where.Logs, "logs", mo.Some("l"), false},
	{"History", where.History, "history", mo.Some("s"), false},
	{"Recent", where.Recent, "recent", mo.None[string](), true},
	{"Cache", where.Cache, "cache", mo.None[string](), true},
	{"Temp", where.Temp, "temp", mo.None[string](), true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, target := range wherePaths {
		help := target.name + " path"
		if short, ok := target.argShort.Get(); ok {
			whereCmd.Flags().BoolP(target.argLong, short, false, help)
		} else {
			whereCmd.Flags().Bool(target.argLong, false, help)
		}

		if target.hidden {
			lo.Must0(whereCmd.Flags().MarkHidden(target.argLong))
		}
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(wherePaths, func(t *whereTarget, _ int) string {
		return t.argLong
	})...)

	whereCmd.SetOut(os.Stdout)
}

// whereCmd prints where speechmark keeps its files.
var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show the paths of configuration, logs, and history",
	Run: func(cmd *cobra.Command, args []string) {
		for _, target := range wherePaths {
			if lo.Must(cmd.Flags().GetBool(target.argLong)) {
				cmd.Println(target.where())
				return
			}
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		visible := lo.Reject(wherePaths, func(t *whereTarget, _ int) bool {
			return t.hidden
		})

		for i, target := range visible {
			cmd.Printf("%s %s\n", header(target.name+"?"), style.Fg(color.Yellow)("--"+target.argLong))
			cmd.Println(target.where())

			if i < len(visible)-1 {
				cmd.Println()
			}
		}
	},
}

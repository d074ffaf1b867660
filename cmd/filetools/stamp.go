package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/authenticvision/filetools/fnstamp"
	"github.com/authenticvision/filetools/logutil"
	"github.com/spf13/cobra"
)

func (a *app) newStampCommand() *cobra.Command {
	var all, listPatterns bool
	cmd := &cobra.Command{
		Use:   "stamp [NAME...]",
		Short: "Print the time stamp embedded in each file name",
		Long: `Print each NAME followed by the time stamp found in it, or "-" if there is none.
Names need not exist on disk. Times are printed in RFC 3339 in the local time zone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if listPatterns {
				for i, p := range fnstamp.Patterns() {
					_, _ = fmt.Fprintf(w, "%2d  %-18s %s\n", i, p.Layout, p.Regexp)
				}
				return nil
			}
			if len(args) == 0 {
				return errors.New("no file names given")
			}
			ctx := cmd.Context()
			log := logutil.FromContext(ctx)
			for _, name := range args {
				var stamps []time.Time
				if all {
					stamps = fnstamp.Extract(name)
				} else if t, ok := fnstamp.First(name); ok {
					stamps = []time.Time{t}
				}
				if len(stamps) == 0 {
					log.DebugContext(ctx, "no time stamp in name", slog.String("name", name))
					_, _ = fmt.Fprintf(w, "%s\t-\n", name)
					continue
				}
				formatted := make([]string, len(stamps))
				for i, t := range stamps {
					formatted[i] = t.Format(time.RFC3339)
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\n", name, strings.Join(formatted, " "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "print the reading of every matching pattern, not only the first")
	cmd.Flags().BoolVar(&listPatterns, "patterns", false, "list the recognized patterns in matching order")
	return cmd
}

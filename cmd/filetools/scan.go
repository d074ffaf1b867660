package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/BooleanCat/go-functional/v2/it"
	"github.com/authenticvision/filetools/bsize"
	"github.com/authenticvision/filetools/configutil"
	"github.com/authenticvision/filetools/fnstamp"
	"github.com/authenticvision/filetools/logutil"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	sourceName    = "name"
	sourceModTime = "mtime"
)

type scanEntry struct {
	Name     string    `json:"name" yaml:"name"`
	Size     int64     `json:"size" yaml:"size"`
	SizeText string    `json:"size_text" yaml:"size_text"`
	Time     time.Time `json:"time" yaml:"time"`
	Source   string    `json:"source" yaml:"source"`
}

func (a *app) newScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan DIR",
		Short: "List files in DIR with their size and time stamp",
		Long: `List the regular files in DIR with their size and time stamp. The stamp is taken from the
file name if it embeds one, else from the modification time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Scan
			w := cmd.OutOrStdout()
			if cfg.Output != "text" && cfg.Output != "json" && cfg.Output != "yaml" {
				return fmt.Errorf("unsupported output %q", cfg.Output)
			}
			entries, err := scanDir(cmd.Context(), args[0], cfg.MinSize, a.cfg.Locale.Tag())
			if err != nil {
				return logutil.NewError(err, "scan directory", slog.String("dir", args[0]))
			}
			switch cfg.Output {
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			case "yaml":
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(entries); err != nil {
					return err
				}
				return enc.Close()
			default:
				return writeScanTable(w, entries)
			}
		},
	}
	configutil.BindFlags(cmd.Flags(), "", &a.cfg.Scan)
	return cmd
}

func scanDir(ctx context.Context, dir string, minSize bsize.Bytes, tag language.Tag) ([]scanEntry, error) {
	log := logutil.FromContext(ctx)
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	regular := it.Filter(slices.Values(dirEntries), func(e fs.DirEntry) bool {
		return e.Type().IsRegular()
	})
	entries := []scanEntry{}
	for e := range regular {
		info, err := e.Info()
		if err != nil {
			// removed since ReadDir
			log.DebugContext(ctx, "skipping file", slog.String("name", e.Name()), logutil.Err(err))
			continue
		}
		size := bsize.Bytes(info.Size())
		if size < minSize {
			continue
		}
		entry := scanEntry{Name: e.Name(), Size: int64(size), SizeText: bsize.Format(size, tag)}
		if stamps := fnstamp.FromFile(info); len(stamps) > 0 {
			entry.Time, entry.Source = stamps[0], sourceName
		} else if t, ok := fnstamp.ModTime(filepath.Join(dir, e.Name())); ok {
			entry.Time, entry.Source = t, sourceModTime
		} else {
			log.WarnContext(ctx, "no time stamp for file", slog.String("name", e.Name()))
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func writeScanTable(w io.Writer, entries []scanEntry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintln(tw, "SIZE\tTIME\tSOURCE\tNAME\t")
	for _, e := range entries {
		ts := "-"
		if !e.Time.IsZero() {
			ts = e.Time.Format(time.DateTime)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", e.SizeText, ts, e.Source, e.Name)
	}
	return tw.Flush()
}

package logutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

func NewHandler(format Format, level slog.Level) (slog.Handler, error) {
	return NewHandlerTo(os.Stderr, format, level)
}

func NewHandlerTo(w io.Writer, format Format, level slog.Level) (slog.Handler, error) {
	var handler slog.Handler
	switch format {
	case FormatText:
		color := false
		if f, ok := w.(*os.File); ok {
			color = isatty.IsTerminal(f.Fd())
		}
		handler = tint.NewHandler(w, &tint.Options{
			Level:       level,
			ReplaceAttr: terminalLevelReplacer,
			NoColor:     !color,
		})
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: LevelAttrReplacer,
		})
	default:
		return nil, fmt.Errorf("unsupported log format: %s", format)
	}
	return &scopedErrorHandler{next: handler}, nil
}

var attrLevelTerminal = map[slog.Level]struct {
	ansiColor uint8
	label     string
}{
	LevelTrace: {ansiColor: 13, label: "TRC"},
	LevelFatal: {ansiColor: 9, label: "FTL"},
}

func terminalLevelReplacer(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok {
		if term, ok := attrLevelTerminal[level]; ok {
			a.Value = slog.StringValue(term.label)
			a = tint.Attr(term.ansiColor, a)
		}
	}
	return a
}

// scopedErrorHandler extends log messages by scopedError attributes of an error under ErrKey.
type scopedErrorHandler struct {
	next slog.Handler
}

func (d *scopedErrorHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return d.next.Enabled(ctx, level)
}

func (d *scopedErrorHandler) Handle(ctx context.Context, record slog.Record) error {
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key != ErrKey {
			return true // next key
		}
		value := attr.Value
		if value.Kind() == slog.KindLogValuer {
			value = value.LogValuer().LogValue()
		}
		if err, ok := value.Any().(error); ok {
			if attrs := Destructure(err); len(attrs) > 0 {
				record = record.Clone()
				record.AddAttrs(attrs...)
			}
		}
		return false // stop
	})
	return d.next.Handle(ctx, record)
}

func (d *scopedErrorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &scopedErrorHandler{next: d.next.WithAttrs(attrs)}
}

func (d *scopedErrorHandler) WithGroup(name string) slog.Handler {
	return &scopedErrorHandler{next: d.next.WithGroup(name)}
}

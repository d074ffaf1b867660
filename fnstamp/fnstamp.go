// Package fnstamp recognizes date and time stamps embedded in file names, such as
// "backup_2021-03-31_120059.tar" or "scan 09-03-20 1122.pdf".
//
// Names are matched against a fixed, ordered pattern table. Time-bearing patterns precede
// date-only ones and four-digit years precede two-digit years, so a shorter pattern never
// wins over a longer reading of the same stamp. Times are interpreted in time.Local.
package fnstamp

import (
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"slices"
	"time"
)

// Pattern pairs a regular expression with the time layout of the text it matches.
type Pattern struct {
	Regexp *regexp.Regexp
	Layout string
	// ShortYear is set for two-digit year layouts, which resolve into 2000-2099.
	ShortYear bool
}

func (p Pattern) parse(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(p.Layout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	if p.ShortYear && t.Year() < 2000 {
		// time.Parse pivots at 69, i.e. "70" is 1970
		t = time.Date(t.Year()+100, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local)
	}
	return t, true
}

// match returns the first substring matched by p that is also a valid calendar time.
func (p Pattern) match(name string) (time.Time, bool) {
	for _, s := range p.Regexp.FindAllString(name, -1) {
		if t, ok := p.parse(s); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

var separators = []string{"_", " "}

var patterns = func() []Pattern {
	families := []struct {
		expr      string
		layout    string
		shortYear bool
		seconds   bool
	}{
		{expr: `\d{4}-\d{2}-\d{2}`, layout: "2006-01-02", seconds: true},
		{expr: `\d{8}`, layout: "20060102", seconds: true},
		{expr: `\d{2}-\d{2}-\d{4}`, layout: "02-01-2006"},
		{expr: `\d{2}-\d{2}-\d{2}`, layout: "02-01-06", shortYear: true},
		{expr: `\d{2}/\d{2}/\d{4}`, layout: "02/01/2006"},
		{expr: `\d{2}/\d{2}/\d{2}`, layout: "02/01/06", shortYear: true},
	}
	add := func(ps []Pattern, expr, layout string, shortYear bool) []Pattern {
		return append(ps, Pattern{Regexp: regexp.MustCompile(expr), Layout: layout, ShortYear: shortYear})
	}
	var ps []Pattern
	for _, f := range families {
		if f.seconds {
			for _, sep := range separators {
				ps = add(ps, f.expr+sep+`\d{6}`, f.layout+sep+"150405", f.shortYear)
			}
		}
		for _, sep := range separators {
			ps = add(ps, f.expr+sep+`\d{4}`, f.layout+sep+"1504", f.shortYear)
		}
		ps = add(ps, f.expr, f.layout, f.shortYear)
	}
	return ps
}()

// Patterns returns the pattern table in matching order.
func Patterns() []Pattern {
	return slices.Clone(patterns)
}

// Extract returns one time per pattern that matches somewhere in name, in table order.
// Callers usually want only the first; see First. The result is nil for names without a stamp.
func Extract(name string) []time.Time {
	if name == "" {
		return nil
	}
	var ts []time.Time
	for _, p := range patterns {
		if t, ok := p.match(name); ok {
			ts = append(ts, t)
		}
	}
	return ts
}

// First returns the highest-priority stamp in name.
func First(name string) (time.Time, bool) {
	for _, p := range patterns {
		if t, ok := p.match(name); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// Named is satisfied by fs.FileInfo, fs.DirEntry and *os.File.
type Named interface {
	Name() string
}

// FromFile extracts stamps from the base name of f. A nil f yields nil, including a nil
// pointer such as a (*os.File)(nil).
func FromFile(f Named) []time.Time {
	if isNil(f) {
		return nil
	}
	return Extract(filepath.Base(f.Name()))
}

func isNil(f Named) bool {
	if f == nil {
		return true
	}
	switch v := reflect.ValueOf(f); v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return v.IsNil()
	}
	return false
}

// ModTime returns the modification time of the file at path, truncated to whole seconds.
// It reports false when path is empty or cannot be stat'ed.
func ModTime(path string) (time.Time, bool) {
	if path == "" {
		return time.Time{}, false
	}
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return fi.ModTime().Truncate(time.Second), true
}

// ModTimeFS is ModTime for a file in fsys.
func ModTimeFS(fsys fs.FS, name string) (time.Time, bool) {
	if fsys == nil || name == "" {
		return time.Time{}, false
	}
	fi, err := fs.Stat(fsys, name)
	if err != nil {
		return time.Time{}, false
	}
	return fi.ModTime().Truncate(time.Second), true
}

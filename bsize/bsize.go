// Package bsize provides typed byte counts and the compact binary notation used in file
// listings ("4.0 M"), modeled after time.Duration.
package bsize

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/BooleanCat/go-functional/v2/it/op"
	"github.com/authenticvision/filetools/logutil"
	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	KiB Bytes = 1 << 10
	MiB Bytes = 1 << 20
	GiB Bytes = 1 << 30
	TiB Bytes = 1 << 40
	PiB Bytes = 1 << 50
	EiB Bytes = 1 << 60
)

// Unit is a binary unit. Its value is the power of 1024 it stands for.
type Unit int

const (
	B Unit = iota
	K
	M
	G
	T
	P
	E
)

const unitSymbols = "BKMGTPE"

// Size returns the unit's multiplier.
func (u Unit) Size() Bytes {
	return 1 << (10 * u)
}

func (u Unit) String() string {
	return unitSymbols[u : u+1]
}

var ErrInvalidFormat = errors.New("invalid byte size format")

var _ pflag.Value = op.Ref(Bytes(0))

// Bytes is a signed byte count.
type Bytes int64

// UnmarshalText accepts everything ParseLenient does.
func (b *Bytes) UnmarshalText(s []byte) error {
	n, err := ParseLenient(string(s))
	if err != nil {
		return err
	}
	*b = n
	return nil
}

func (b *Bytes) Set(s string) error {
	return b.UnmarshalText([]byte(s))
}

func (b *Bytes) Type() string {
	return "bytes"
}

// String formats b for American English, e.g. "1.5 G".
func (b Bytes) String() string {
	return Format(b, language.AmericanEnglish)
}

// formatThresholds is ordered by descending lower bound. Exactly one KiB is labeled B, not K;
// existing listings depend on that, so the row stays.
var formatThresholds = [...]struct {
	min  uint64
	div  Bytes
	unit Unit
}{
	{uint64(EiB), EiB, E},
	{uint64(PiB), PiB, P},
	{uint64(TiB), TiB, T},
	{uint64(GiB), GiB, G},
	{uint64(MiB), MiB, M},
	{uint64(KiB) + 1, KiB, K},
	{uint64(KiB), KiB, B},
	{0, 1, B},
}

// Format renders n with one fractional digit in the largest fitting unit, using the decimal
// separator of tag: Format(268435456, language.AmericanEnglish) is "256.0 M".
func Format(n Bytes, tag language.Tag) string {
	sign := ""
	abs := uint64(n)
	if n < 0 {
		sign = "-"
		abs = uint64(-n) // MinInt64 wraps to itself, which still converts to 1<<63
	}
	p := message.NewPrinter(tag)
	for _, th := range formatThresholds {
		if abs >= th.min {
			// x/text rounds half to even; listings round half up (1280 is "1.3 K")
			v := math.Round(float64(abs)/float64(th.div)*10) / 10
			return sign + p.Sprint(number.Decimal(v, number.Scale(1), number.NoSeparator())) + " " + th.unit.String()
		}
	}
	panic("unreachable")
}

// parseRe accepts a whole number, optionally one fractional digit as written by Format,
// an optional space and a unit symbol.
var parseRe = regexp.MustCompile(`^(\d+)(?:[.,](\d))? ?([BKMGTPE])$`)

// Parse reads sizes such as "1024B", "4M" or "1.5 G". Units are case-sensitive.
// The result is value * 1024^unit. Errors wrap ErrInvalidFormat.
func Parse(s string) (Bytes, error) {
	m := parseRe.FindStringSubmatch(s)
	if m == nil {
		return 0, invalidFormat(s, nil)
	}
	whole, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, invalidFormat(s, err)
	}
	size := Unit(strings.IndexByte(unitSymbols, m[3][0])).Size()
	if whole > math.MaxInt64/int64(size) {
		return 0, invalidFormat(s, errOverflow)
	}
	n := Bytes(whole) * size
	if m[2] != "" {
		tenths := uint64(m[2][0] - '0')
		frac := Bytes(tenths * uint64(size) / 10)
		if n > math.MaxInt64-frac {
			return 0, invalidFormat(s, errOverflow)
		}
		n += frac
	}
	return n, nil
}

// ParseLenient tries Parse first and then falls back to go-humanize, which understands
// spellings like "10 MB" (SI) or "1.5GiB" (IEC) and plain byte counts.
func ParseLenient(s string) (Bytes, error) {
	if n, err := Parse(s); err == nil {
		return n, nil
	}
	u, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, invalidFormat(s, err)
	}
	if u > math.MaxInt64 {
		return 0, invalidFormat(s, errOverflow)
	}
	return Bytes(u), nil
}

var errOverflow = errors.New("value exceeds int64")

func invalidFormat(s string, cause error) error {
	err := ErrInvalidFormat
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidFormat, cause)
	}
	return logutil.NewError(err, "parse byte size", slog.String("input", s))
}

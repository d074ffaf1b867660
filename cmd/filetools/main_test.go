package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/authenticvision/filetools/bsize"
	"github.com/authenticvision/filetools/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()
	for k, v := range env {
		t.Setenv(k, v)
	}
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(testutil.Context(t, testutil.Trace))
	return out.String(), err
}

func TestStamp(t *testing.T) {
	r := require.New(t)
	out, err := run(t, nil, "stamp", "2021-03-31_120059", "justText", "some-Text_09-03-2020_text.txt")
	r.NoError(err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	r.Len(lines, 3)
	r.Equal("2021-03-31_120059\t"+time.Date(2021, 3, 31, 12, 0, 59, 0, time.Local).Format(time.RFC3339), lines[0])
	r.Equal("justText\t-", lines[1])
	r.Equal("some-Text_09-03-2020_text.txt\t"+time.Date(2020, 3, 9, 0, 0, 0, 0, time.Local).Format(time.RFC3339), lines[2])
}

func TestStampAll(t *testing.T) {
	r := require.New(t)
	out, err := run(t, nil, "stamp", "--all", "20210331_1200")
	r.NoError(err)
	r.Equal("20210331_1200\t"+
		time.Date(2021, 3, 31, 12, 0, 0, 0, time.Local).Format(time.RFC3339)+" "+
		time.Date(2021, 3, 31, 0, 0, 0, 0, time.Local).Format(time.RFC3339)+"\n", out)
}

func TestStampPatterns(t *testing.T) {
	r := require.New(t)
	out, err := run(t, nil, "stamp", "--patterns")
	r.NoError(err)
	r.Contains(out, "2006-01-02_150405")
	r.Contains(out, "02/01/06")

	_, err = run(t, nil, "stamp")
	r.ErrorContains(err, "no file names given")
}

func TestSizeFormat(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
		want string
	}{
		{
			name: "default locale",
			args: []string{"size", "format", "1024", "4194304", "268435456"},
			want: "1.0 B\n4.0 M\n256.0 M\n",
		},
		{
			name: "locale flag",
			args: []string{"size", "format", "--locale", "de-DE", "268435456"},
			want: "256,0 M\n",
		},
		{
			name: "locale from environment",
			env:  map[string]string{"FILETOOLS_LOCALE": "de-DE"},
			args: []string{"size", "format", "1536"},
			want: "1,5 K\n",
		},
		{
			name: "flag overrides environment",
			env:  map[string]string{"FILETOOLS_LOCALE": "de-DE"},
			args: []string{"size", "format", "--locale", "en", "1536"},
			want: "1.5 K\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := require.New(t)
			out, err := run(t, tt.env, tt.args...)
			r.NoError(err)
			r.Equal(tt.want, out)
		})
	}
}

func TestSizeFormatInvalid(t *testing.T) {
	_, err := run(t, nil, "size", "format", "4M")
	require.ErrorContains(t, err, `byte count "4M"`)
}

func TestSizeParse(t *testing.T) {
	r := require.New(t)

	out, err := run(t, nil, "size", "parse", "1G", "1024B", "4.0 M")
	r.NoError(err)
	r.Equal("1073741824\n1024\n4194304\n", out)

	_, err = run(t, nil, "size", "parse", "notanumber")
	r.ErrorIs(err, bsize.ErrInvalidFormat)

	_, err = run(t, nil, "size", "parse", "10MB")
	r.ErrorIs(err, bsize.ErrInvalidFormat)

	out, err = run(t, nil, "size", "parse", "--lenient", "10MB")
	r.NoError(err)
	r.Equal("10000000\n", out)
}

func TestConfigFile(t *testing.T) {
	r := require.New(t)
	path := filepath.Join(t.TempDir(), "filetools.yaml")
	r.NoError(os.WriteFile(path, []byte("locale: de-DE\n"), 0o600))

	out, err := run(t, nil, "--config", path, "size", "format", "268435456")
	r.NoError(err)
	r.Equal("256,0 M\n", out)

	// the environment wins over the file
	out, err = run(t, map[string]string{"FILETOOLS_LOCALE": "en-US"}, "--config", path, "size", "format", "268435456")
	r.NoError(err)
	r.Equal("256.0 M\n", out)

	// flags win over both
	out, err = run(t, map[string]string{"FILETOOLS_LOCALE": "en-US"}, "--config", path, "size", "format", "--locale", "fr", "268435456")
	r.NoError(err)
	r.Equal("256,0 M\n", out)

	_, err = run(t, nil, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "size", "format", "1")
	r.ErrorContains(err, "load configuration")
	r.ErrorIs(err, os.ErrNotExist)
}

func TestConfigFileScan(t *testing.T) {
	r := require.New(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "big_20210331.bin"), 2048, time.Now())
	writeFile(t, filepath.Join(dir, "small.bin"), 10, time.Now())
	path := filepath.Join(t.TempDir(), "filetools.yaml")
	r.NoError(os.WriteFile(path, []byte("scan:\n  min_size: 1K\n  output: json\n"), 0o600))

	out, err := run(t, nil, "--config", path, "scan", dir)
	r.NoError(err)
	var entries []scanEntry
	r.NoError(json.Unmarshal([]byte(out), &entries))
	r.Len(entries, 1)
	r.Equal("big_20210331.bin", entries[0].Name)

	out, err = run(t, nil, "--config", path, "scan", "--min-size", "0B", "--output", "text", dir)
	r.NoError(err)
	r.Contains(out, "small.bin")
	r.Contains(out, "SIZE")
}

func TestConfigInvalidEnvironment(t *testing.T) {
	_, err := run(t, map[string]string{"FILETOOLS_LOCALE": "no such locale!"}, "size", "format", "1")
	require.ErrorContains(t, err, "FILETOOLS_LOCALE")
}

func writeFile(t *testing.T, path string, size int, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o600))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestScan(t *testing.T) {
	r := require.New(t)
	dir := t.TempDir()
	mtime := time.Date(2022, 6, 1, 8, 30, 15, 0, time.Local)
	writeFile(t, filepath.Join(dir, "backup_2021-03-31_120059.tar"), 2048, mtime)
	writeFile(t, filepath.Join(dir, "notes.txt"), 10, mtime)
	r.NoError(os.Mkdir(filepath.Join(dir, "20200101"), 0o700))

	out, err := run(t, nil, "scan", "--output", "json", dir)
	r.NoError(err)

	var entries []scanEntry
	r.NoError(json.Unmarshal([]byte(out), &entries))
	r.Len(entries, 2)

	a := assert.New(t)
	a.Equal("backup_2021-03-31_120059.tar", entries[0].Name)
	a.Equal(int64(2048), entries[0].Size)
	a.Equal("2.0 K", entries[0].SizeText)
	a.True(time.Date(2021, 3, 31, 12, 0, 59, 0, time.Local).Equal(entries[0].Time))
	a.Equal(sourceName, entries[0].Source)

	a.Equal("notes.txt", entries[1].Name)
	a.Equal("10.0 B", entries[1].SizeText)
	a.True(mtime.Equal(entries[1].Time))
	a.Equal(sourceModTime, entries[1].Source)
}

func TestScanMinSize(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "big_20210331.bin"), 2048, time.Now())
	writeFile(t, filepath.Join(dir, "small.bin"), 10, time.Now())

	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{name: "flag", args: []string{"scan", "--min-size", "1K", dir}},
		{name: "lenient flag", args: []string{"scan", "--min-size", "1kB", dir}},
		{name: "environment", env: map[string]string{"FILETOOLS_SCAN_MIN_SIZE": "1K"}, args: []string{"scan", dir}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := require.New(t)
			out, err := run(t, tt.env, tt.args...)
			r.NoError(err)
			r.Contains(out, "big_20210331.bin")
			r.NotContains(out, "small.bin")
		})
	}
}

func TestScanText(t *testing.T) {
	r := require.New(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "log_31-03-2021_1200.txt"), 268435456/1024, time.Now())

	out, err := run(t, map[string]string{"FILETOOLS_LOCALE": "de-DE"}, "scan", dir)
	r.NoError(err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	r.Len(lines, 2)
	r.Contains(lines[0], "SIZE")
	r.Contains(lines[1], "256,0 K")
	r.Contains(lines[1], "2021-03-31 12:00:00")
	r.Contains(lines[1], sourceName)
}

func TestScanErrors(t *testing.T) {
	r := require.New(t)

	_, err := run(t, nil, "scan", "--output", "xml", t.TempDir())
	r.ErrorContains(err, `unsupported output "xml"`)

	_, err = run(t, nil, "scan", filepath.Join(t.TempDir(), "missing"))
	r.ErrorContains(err, "scan directory")
	r.ErrorIs(err, os.ErrNotExist)

	out, err := run(t, nil, "scan", "--output", "json", t.TempDir())
	r.NoError(err)
	r.Equal("[]\n", out)

	_, err = run(t, nil, "scan", "--locale", "!!", t.TempDir())
	r.ErrorContains(err, "invalid argument")
}

func TestScanYAML(t *testing.T) {
	r := require.New(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "scan 09-03-20 1122.pdf"), 1280, time.Now())

	out, err := run(t, nil, "scan", "--output", "yaml", dir)
	r.NoError(err)
	var entries []scanEntry
	r.NoError(yaml.Unmarshal([]byte(out), &entries))
	r.Len(entries, 1)
	r.Equal("1.3 K", entries[0].SizeText)
	r.Equal(sourceName, entries[0].Source)
	r.True(time.Date(2020, 3, 9, 11, 22, 0, 0, time.Local).Equal(entries[0].Time))
}

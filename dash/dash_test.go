package dash

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/midbel/bars"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
title = "population"
width = 400
height = 300
x = "state"
group_by = ["men", "women"]
colors = ["#111111", "#222222"]
labels = false
locale = "de"

[padding]
top = 10
right = 10
bottom = 30
left = 30

[data]
content = """
state,men,women
NY,10,12
CA,20,18
"""

[y_axis]
min_zero = true
label = "people"

[quantiles]
buckets = 3
colors_on_hover = ["#a", "#b", "#c"]
`

const sampleYAML = `
title: sales
x: month
y: amount
sort_by: [month]
x_axis:
  scale: band
  padding: 0.2
y_axis:
  domains: [0, 100]
data:
  delimiter: ";"
  content: |
    month;amount
    mar;20
    jan;10
`

func TestDecode(t *testing.T) {
	spec, err := Decode(strings.NewReader(sampleTOML), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, "population", spec.Title)
	assert.Equal(t, 400.0, spec.Width)
	assert.Equal(t, []string{"men", "women"}, spec.GroupBy)
	require.NotNil(t, spec.Padding)
	assert.Equal(t, 30.0, spec.Padding.Left)
	require.NotNil(t, spec.Labels)
	assert.False(t, *spec.Labels)
	assert.True(t, spec.YAxis.MinZero)
	require.NotNil(t, spec.Quantiles)
	assert.Equal(t, 3, spec.Quantiles.Buckets)

	spec, err = Decode(strings.NewReader(sampleYAML), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "sales", spec.Title)
	assert.Equal(t, DefaultWidth, spec.Width)
	assert.Equal(t, "band", spec.XAxis.Scale)
	assert.Len(t, spec.YAxis.Domains, 2)
	assert.Equal(t, ";", spec.Data.Delimiter)

	_, err = Decode(strings.NewReader(""), "json")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestBuild(t *testing.T) {
	spec, err := Decode(strings.NewReader(sampleTOML), FormatTOML)
	require.NoError(t, err)

	cfg, err := spec.Build()
	require.NoError(t, err)
	assert.Equal(t, bars.ModeGroupByX, cfg.Mode())
	assert.True(t, cfg.HideLabels)
	assert.True(t, cfg.YAxis.MinZero)
	require.NotNil(t, cfg.Quantiles)
	assert.Len(t, cfg.Quantiles.Colors, 3)
	assert.Equal(t, "1.234,5", cfg.Format(1234.5, 1))

	spec.Locale = "??"
	_, err = spec.Build()
	var cerr bars.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "locale", cerr.Option)

	spec.Locale = ""
	spec.XAxis.Scale = "pow"
	_, err = spec.Build()
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "x_axis.scale", cerr.Option)

	spec.XAxis.Scale = ""
	spec.StackBy = []string{"men"}
	_, err = spec.Build()
	assert.ErrorIs(t, err, bars.ErrConflictingModes)
}

func TestRender(t *testing.T) {
	spec, err := Decode(strings.NewReader(sampleYAML), FormatYAML)
	require.NoError(t, err)

	var (
		buf    bytes.Buffer
		logger = log.New(io.Discard)
	)
	require.NoError(t, spec.Render(context.Background(), &buf, logger))
	out := buf.String()
	assert.Contains(t, out, "<title>sales</title>")
	assert.Equal(t, 2, strings.Count(out, `class="bar"`))
	assert.NotContains(t, out, "<script")
	assert.Less(t, strings.Index(out, ">jan<"), strings.Index(out, ">mar<"), "records are sorted by month")
}

func TestChartInteractionsAreLogged(t *testing.T) {
	spec, err := Decode(strings.NewReader(sampleYAML), FormatYAML)
	require.NoError(t, err)

	var logs bytes.Buffer
	c, err := spec.Chart(context.Background(), log.New(&logs))
	require.NoError(t, err)
	require.NoError(t, c.Render(io.Discard))
	require.NoError(t, c.Layer.Click(0))
	assert.Contains(t, logs.String(), "click")
	assert.Contains(t, logs.String(), "jan")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	data := "cat,val\nA,5\nB,-3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "values.csv"), []byte(data), 0o644))

	file := filepath.Join(dir, "simple.toml")
	chart := "x = \"cat\"\ny = \"val\"\n[data]\npath = \"values.csv\"\n[style]\nstroke = \"black\"\n"
	require.NoError(t, os.WriteFile(file, []byte(chart), 0o644))

	spec, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "values.csv"), spec.Data.Path)
	assert.Equal(t, "simple", spec.Name())
	assert.Equal(t, filepath.Join(dir, "simple.svg"), spec.OutputPath(""))

	out := t.TempDir()
	written, err := spec.RenderFile(context.Background(), out, log.New(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "simple.svg"), written)

	svg, err := os.ReadFile(written)
	require.NoError(t, err)
	assert.Contains(t, string(svg), `stroke="black"`)
	assert.Contains(t, string(svg), `id="bars-1"`)

	_, err = Load(filepath.Join(dir, "values.csv"))
	assert.ErrorIs(t, err, ErrFormat)
	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestRenderFileRemovedOnError(t *testing.T) {
	dir := t.TempDir()
	spec := Default()
	spec.X = "cat"
	spec.Y = "val"
	spec.Output = "broken.svg"
	spec.Data = DataSource{Path: filepath.Join(dir, "missing.csv")}

	_, err := spec.RenderFile(context.Background(), dir, log.New(io.Discard))
	require.Error(t, err)
	_, err = os.Stat(filepath.Join(dir, "broken.svg"))
	assert.True(t, os.IsNotExist(err), "no partial output is left")
}

func TestRecordsFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data.csv" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, "cat\tval\nA\t5\nB\t\n")
	}))
	defer srv.Close()

	src := DataSource{URL: srv.URL + "/data.csv", Delimiter: `\t`}
	records, err := src.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, bars.Record{"cat": "A", "val": "5"}, records[0])
	assert.Equal(t, "", records[1]["val"])

	src.URL = srv.URL + "/missing.csv"
	_, err = src.Records(context.Background())
	assert.Error(t, err)
}

func TestRecordsErrors(t *testing.T) {
	_, err := DataSource{}.Records(context.Background())
	assert.ErrorIs(t, err, ErrNoSource)

	_, err = DataSource{Content: "a,b\n1,2\n", Delimiter: "::"}.Records(context.Background())
	var cerr bars.ConfigError
	assert.ErrorAs(t, err, &cerr)

	_, err = DataSource{URL: "ftp://example.com/data.csv"}.Records(context.Background())
	assert.Error(t, err)

	records, err := DataSource{Content: "a,b\n"}.Records(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSelectors(t *testing.T) {
	records := []bars.Record{
		{"a": "1", "b": "2", "c": "x"},
		{"a": "3", "b": "4", "c": "5"},
	}
	values, err := Values(records, SelectSingle("a"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3}, values)

	values, err = Values(records, SelectSum("a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 12}, values)

	values, err = Values(records, Combined(SelectMulti("c"), SelectSingle("b")))
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 5, 4}, values)

	_, err = Values(records, SelectSingle("z"))
	assert.ErrorIs(t, err, ErrColumn)
}

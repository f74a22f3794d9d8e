package bars

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleChart(t *testing.T, backend Backend) Chart {
	t.Helper()
	cfg, err := NewBuilder().X("cat").Y("val").Build()
	require.NoError(t, err)

	layer := New(cfg)
	layer.Data(sampleRecords())
	return Chart{
		Title:   "sample & co",
		Width:   200,
		Height:  160,
		Padding: Padding{Top: 10, Right: 10, Bottom: 40, Left: 40},
		Layer:   layer,
		Backend: backend,
		XLabel:  "category",
	}
}

func TestChartRender(t *testing.T) {
	c := sampleChart(t, SVGBackend{EventsURL: "/charts/1"})
	assert.Equal(t, Area{Width: 150, Height: 110}, c.Area())

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `class="dbox-bars"`)
	assert.Contains(t, out, "<title>sample &amp; co</title>")
	assert.Contains(t, out, `id="bars-0"`)
	assert.Contains(t, out, `id="bars-1"`)
	assert.Equal(t, 2, strings.Count(out, `class="bar"`))
	assert.Equal(t, 2, strings.Count(out, `class="popup"`))
	assert.Contains(t, out, `data-for="bars-0"`)
	assert.Contains(t, out, `class="dbox-label"`)
	assert.Contains(t, out, "category")
	assert.Contains(t, out, `"/charts/1"`)
	assert.Contains(t, out, `transform="translate(40.00,10.00)"`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
}

func TestChartRenderNoScript(t *testing.T) {
	c := sampleChart(t, SVGBackend{NoScript: true})
	c.NoAxis = true

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	assert.NotContains(t, buf.String(), "<script")
	assert.NotContains(t, buf.String(), `id="axis"`)
}

func TestChartRefresh(t *testing.T) {
	c := sampleChart(t, nil)

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	require.NoError(t, c.Layer.MouseOver(0))

	buf.Reset()
	require.NoError(t, c.Refresh(&buf))
	assert.Contains(t, buf.String(), `id="bars-0"`)

	c.Layer = nil
	assert.ErrorIs(t, c.Refresh(&buf), ErrNoData)
	assert.ErrorIs(t, c.Render(&buf), ErrNoData)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestChartRenderWriteError(t *testing.T) {
	c := sampleChart(t, nil)
	assert.Error(t, c.Render(failingWriter{}))
}

func TestTipLines(t *testing.T) {
	tests := []struct {
		Tip  string
		Want []string
	}{
		{Tip: "men<br>NY<br>10", Want: []string{"men", "NY", "10"}},
		{Tip: "<span>A &amp; B</span></br><span>5</span></br>", Want: []string{"A & B", "5"}},
		{Tip: "<b>one</b><BR/>two", Want: []string{"one", "two"}},
		{Tip: "", Want: nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.Want, TipLines(tt.Tip), tt.Tip)
	}
}

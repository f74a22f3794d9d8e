package bars

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarsLifecycle(t *testing.T) {
	cfg, err := NewBuilder().X("cat").Y("val").Build()
	require.NoError(t, err)

	b := New(cfg)
	_, err = b.Draw()
	assert.ErrorIs(t, err, ErrNoData)
	_, err = b.Scales(Area{Width: 10, Height: 10})
	assert.ErrorIs(t, err, ErrNoData)
	_, err = b.Dataset()
	assert.ErrorIs(t, err, ErrNoData)

	b.Data(sampleRecords())
	_, err = b.Draw()
	assert.ErrorIs(t, err, ErrNoScales)

	_, err = b.Scales(Area{Width: 100, Height: 80})
	require.NoError(t, err)
	scene, err := b.Draw()
	require.NoError(t, err)
	assert.Len(t, scene.Marks, 2)
	assert.Equal(t, scene, b.Scene())

	b.Data(sampleRecords()[:1])
	assert.Empty(t, b.Scene().Marks, "new data discards the scene")
	_, err = b.Draw()
	assert.ErrorIs(t, err, ErrNoScales)
}

func TestBarsInteractions(t *testing.T) {
	var events []string
	record := func(name string) Handler {
		return func(d Datum, i int) {
			events = append(events, name+":"+d.Axis)
		}
	}
	cfg, err := NewBuilder().
		X("cat").
		Y("val").
		Fill("val").
		Quantiles(QuantileConfig{
			Buckets:       2,
			Colors:        []string{"c0", "c1"},
			ColorsOnHover: []string{"h0", "h1"},
		}).
		OnMouseOver(record("over")).
		OnMouseOut(record("out")).
		OnClick(record("click")).
		Build()
	require.NoError(t, err)

	var popup Popup
	b := New(cfg, WithTooltip(&popup))
	b.Data(sampleRecords())
	_, err = b.Scales(Area{Width: 100, Height: 80})
	require.NoError(t, err)
	_, err = b.Draw()
	require.NoError(t, err)

	require.NoError(t, b.MouseOver(0))
	m, ok := b.Scene().Mark(0)
	require.True(t, ok)
	assert.True(t, m.Hovered)
	assert.Equal(t, "h1", m.Color())
	assert.True(t, popup.Visible())
	assert.Equal(t, m.ID, popup.Mark)
	assert.Equal(t, m.Tip, popup.Content)

	require.NoError(t, b.MouseOut(0))
	m, _ = b.Scene().Mark(0)
	assert.False(t, m.Hovered)
	assert.Equal(t, "c1", m.Color())
	assert.False(t, popup.Visible())

	require.NoError(t, b.Click(1))
	assert.Equal(t, []string{"over:A", "out:A", "click:B"}, events)

	assert.ErrorIs(t, b.MouseOver(2), ErrNoMark)
	assert.ErrorIs(t, b.MouseOut(-1), ErrNoMark)
	assert.ErrorIs(t, b.Click(5), ErrNoMark)
	assert.Len(t, events, 3)
}

func TestBarsHoverWithoutPalette(t *testing.T) {
	cfg, err := NewBuilder().X("cat").Y("val").Build()
	require.NoError(t, err)

	b := New(cfg)
	b.Data(sampleRecords())
	_, err = b.Scales(Area{Width: 100, Height: 80})
	require.NoError(t, err)
	_, err = b.Draw()
	require.NoError(t, err)

	require.NoError(t, b.MouseOver(1))
	m, _ := b.Scene().Mark(1)
	assert.False(t, m.Hovered)

	popup, ok := b.Tooltip().(*Popup)
	require.True(t, ok)
	assert.True(t, popup.Visible())
}

type fixedFactory struct {
	calls int
}

func (f *fixedFactory) Generate(ds Dataset, cfg ScaleConfig) (Scaler, error) {
	f.calls++
	return LinearScaler(0, 10, cfg.Range), nil
}

func TestBarsWithFactory(t *testing.T) {
	cfg, err := NewBuilder().X("cat").Y("val").Build()
	require.NoError(t, err)

	var f fixedFactory
	b := New(cfg, WithFactory(&f))
	b.Data(sampleRecords())
	sc, err := b.Scales(Area{Width: 100, Height: 100})
	require.NoError(t, err)
	assert.Equal(t, 2, f.calls)
	assert.InDelta(t, 50, sc.X.Scale(5), 1e-9)
}

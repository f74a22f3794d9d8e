package bars

import (
	"github.com/lucasb-eyer/go-colorful"
)

type Palette []string

var (
	Category10 Palette
	Tableau10  Palette
	Reds       Palette
)

const NoDataColor = "#cccccc"

func init() {
	Category10 = splitColorString("1f77b4ff7f0e2ca02cd627289467bd8c564be377c27f7f7fbcbd2217becf")
	Tableau10 = splitColorString("4e79a7f28e2ce1575976b7b259a14fedc949af7aa1ff9da79c755fbab0ab")
	Reds = splitColorString("f7c7c5e65158c20216750000480000")
}

func splitColorString(str string) []string {
	var arr []string
	for i := 0; i < len(str); i += 6 {
		arr = append(arr, "#"+str[i:i+6])
	}
	return arr
}

// SequentialPalette spreads n colors over the Reds stops, interpolated in
// CIE-Lab.
func SequentialPalette(n int) Palette {
	return Interpolate(Reds, n)
}

func Interpolate(stops Palette, n int) Palette {
	if n <= 0 || len(stops) == 0 {
		return nil
	}
	colors := make([]colorful.Color, 0, len(stops))
	for _, s := range stops {
		c, err := colorful.Hex(s)
		if err != nil {
			continue
		}
		colors = append(colors, c)
	}
	if len(colors) == 0 {
		return nil
	}
	if n == 1 || len(colors) == 1 {
		list := make(Palette, n)
		for i := range list {
			list[i] = colors[0].Hex()
		}
		return list
	}
	var (
		list     = make(Palette, n)
		segments = float64(len(colors) - 1)
	)
	for i := range list {
		var (
			pos = float64(i) / float64(n-1) * segments
			j   = int(pos)
		)
		if j >= len(colors)-1 {
			list[i] = colors[len(colors)-1].Hex()
			continue
		}
		if pos == float64(j) {
			list[i] = colors[j].Hex()
			continue
		}
		list[i] = colors[j].BlendLab(colors[j+1], pos-float64(j)).Clamped().Hex()
	}
	return list
}

// ColorScale maps a category key to a color.
type ColorScale interface {
	Color(string) string
}

// Ordinal assigns palette entries to keys in the order the keys are
// first seen, cycling when the palette is exhausted.
type Ordinal struct {
	palette Palette
	index   map[string]int
}

func NewOrdinal(palette Palette) *Ordinal {
	if len(palette) == 0 {
		palette = Category10
	}
	return &Ordinal{
		palette: palette,
		index:   make(map[string]int),
	}
}

func (o *Ordinal) Color(key string) string {
	i, ok := o.index[key]
	if !ok {
		i = len(o.index)
		o.index[key] = i
	}
	return o.palette[i%len(o.palette)]
}

func (o *Ordinal) Domain() []string {
	keys := make([]string, len(o.index))
	for k, i := range o.index {
		keys[i] = k
	}
	return keys
}

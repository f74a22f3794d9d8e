package bars

// Datum is the value a mark represents. It is given to tooltips and to
// the interaction handlers.
type Datum struct {
	Record Record
	Key    string
	Axis   string
	Value  float64
	Lower  float64
	Upper  float64
}

type Mark struct {
	ID        string
	Class     string
	Index     int
	Rect      Rect
	Fill      string
	HoverFill string
	Hovered   bool
	Tip       string
	Datum     Datum
}

// Color gives the fill currently displayed for the mark.
func (m Mark) Color() string {
	if m.Hovered && m.HoverFill != "" {
		return m.HoverFill
	}
	return m.Fill
}

const (
	ClassBar         = "bar"
	ClassLabel       = "dbox-label"
	ClassCoefficient = "dbox-label-coefficient"
)

// Label is a text placed at Pos then moved by Shift.
type Label struct {
	Class string
	Pos   Point
	Shift Point
	Text  string
}

func (b Label) At() Point {
	return b.Pos.Add(b.Shift)
}

type Scene struct {
	Mode   Mode
	Marks  []Mark
	Labels []Label
}

func (s Scene) Mark(i int) (Mark, bool) {
	if i < 0 || i >= len(s.Marks) {
		return Mark{}, false
	}
	return s.Marks[i], true
}

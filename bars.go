// Package bars draws simple, grouped and stacked bar charts as SVG.
//
// A chart goes through four steps: a Config is built, records are
// submitted with Data, scales are computed for a drawing area with Scales
// and the marks are laid out by Draw. The resulting scene keeps the state
// of the interactions (hovered fill, tooltip) until the next Draw.
package bars

type Option func(*Bars)

func WithFactory(f ScaleFactory) Option {
	return func(b *Bars) {
		b.factory = f
	}
}

func WithTooltip(t Tooltip) Option {
	return func(b *Bars) {
		b.tooltip = t
	}
}

// Bars is the bar chart layer. It is not safe for concurrent use.
type Bars struct {
	cfg     Config
	factory ScaleFactory
	tooltip Tooltip

	data   *Dataset
	scales *Scales
	scene  Scene
}

func New(cfg Config, options ...Option) *Bars {
	b := Bars{
		cfg:     cfg,
		factory: DefaultFactory,
		tooltip: &Popup{},
	}
	for _, o := range options {
		o(&b)
	}
	return &b
}

func (b *Bars) Config() Config {
	return b.cfg
}

func (b *Bars) Mode() Mode {
	return b.cfg.Mode()
}

func (b *Bars) Tooltip() Tooltip {
	return b.tooltip
}

// Data prepares records and discards previously computed scales.
func (b *Bars) Data(records []Record) {
	ds := Prepare(records, b.cfg)
	b.data = &ds
	b.scales = nil
	b.scene = Scene{}
}

func (b *Bars) Dataset() (Dataset, error) {
	if b.data == nil {
		return Dataset{}, ErrNoData
	}
	return *b.data, nil
}

// Scales computes the scales of the chart for a drawing area.
func (b *Bars) Scales(area Area) (Scales, error) {
	if b.data == nil {
		return Scales{}, ErrNoData
	}
	sc, err := SelectScales(*b.data, b.cfg, area, b.factory)
	if err != nil {
		return sc, err
	}
	b.scales = &sc
	return sc, nil
}

func (b *Bars) Draw() (Scene, error) {
	if b.data == nil {
		return Scene{}, ErrNoData
	}
	if b.scales == nil {
		return Scene{}, ErrNoScales
	}
	b.scene = Paint(b.cfg, *b.data, *b.scales)
	return b.scene, nil
}

// Scene gives the last drawn scene with the current interaction state.
func (b *Bars) Scene() Scene {
	return b.scene
}

// MouseOver highlights mark i, shows its tooltip then calls the
// OnMouseOver handler.
func (b *Bars) MouseOver(i int) error {
	m, err := b.mark(i)
	if err != nil {
		return err
	}
	if b.hoverable() {
		m.Hovered = true
	}
	if b.tooltip != nil {
		b.tooltip.Show(m.Tip, *m)
	}
	if fn := b.cfg.OnMouseOver; fn != nil {
		fn(m.Datum, i)
	}
	return nil
}

// MouseOut restores the fill of mark i, hides the tooltip then calls the
// OnMouseOut handler.
func (b *Bars) MouseOut(i int) error {
	m, err := b.mark(i)
	if err != nil {
		return err
	}
	m.Hovered = false
	if b.tooltip != nil {
		b.tooltip.Hide()
	}
	if fn := b.cfg.OnMouseOut; fn != nil {
		fn(m.Datum, i)
	}
	return nil
}

func (b *Bars) Click(i int) error {
	m, err := b.mark(i)
	if err != nil {
		return err
	}
	if fn := b.cfg.OnClick; fn != nil {
		fn(m.Datum, i)
	}
	return nil
}

func (b *Bars) mark(i int) (*Mark, error) {
	if i < 0 || i >= len(b.scene.Marks) {
		return nil, ErrNoMark
	}
	return &b.scene.Marks[i], nil
}

func (b *Bars) hoverable() bool {
	q := b.cfg.Quantiles
	return q != nil && len(q.ColorsOnHover) > 0
}

package dash

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/midbel/bars"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0

	DefaultLocale = "en"
	DefaultDelim  = ","
	DefaultExt    = ".svg"
)

var DefaultPadding = Padding{
	Top:    40,
	Right:  20,
	Bottom: 60,
	Left:   60,
}

const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

var ErrFormat = errors.New("unsupported chart file format")

type Padding struct {
	Top    float64 `toml:"top" yaml:"top"`
	Right  float64 `toml:"right" yaml:"right"`
	Bottom float64 `toml:"bottom" yaml:"bottom"`
	Left   float64 `toml:"left" yaml:"left"`
}

// Spec is the content of a chart file.
type Spec struct {
	Title   string   `toml:"title" yaml:"title"`
	Width   float64  `toml:"width" yaml:"width"`
	Height  float64  `toml:"height" yaml:"height"`
	Padding *Padding `toml:"padding" yaml:"padding"`
	Output  string   `toml:"output" yaml:"output"`

	Data DataSource `toml:"data" yaml:"data"`

	X       string   `toml:"x" yaml:"x"`
	Y       string   `toml:"y" yaml:"y"`
	Fill    string   `toml:"fill" yaml:"fill"`
	ID      string   `toml:"id" yaml:"id"`
	GroupBy []string `toml:"group_by" yaml:"group_by"`
	StackBy []string `toml:"stack_by" yaml:"stack_by"`
	SortBy  []string `toml:"sort_by" yaml:"sort_by"`

	Colors      []string `toml:"colors" yaml:"colors"`
	Labels      *bool    `toml:"labels" yaml:"labels"`
	Coefficient string   `toml:"coefficient" yaml:"coefficient"`
	Locale      string   `toml:"locale" yaml:"locale"`

	XAxis     Domain        `toml:"x_axis" yaml:"x_axis"`
	YAxis     Domain        `toml:"y_axis" yaml:"y_axis"`
	Quantiles *QuantileSpec `toml:"quantiles" yaml:"quantiles"`
	Style     *Style        `toml:"style" yaml:"style"`

	file string
}

func Default() Spec {
	return Spec{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Locale: DefaultLocale,
	}
}

// Load reads a chart file. The decoder is selected by the file extension.
func Load(file string) (Spec, error) {
	r, err := os.Open(file)
	if err != nil {
		return Spec{}, err
	}
	defer r.Close()

	format, err := formatOf(file)
	if err != nil {
		return Spec{}, err
	}
	spec, err := Decode(bufio.NewReader(r), format)
	if err != nil {
		return spec, fmt.Errorf("%s: %w", file, err)
	}
	spec.file = file
	if spec.Data.Path != "" && !filepath.IsAbs(spec.Data.Path) {
		spec.Data.Path = filepath.Join(filepath.Dir(file), spec.Data.Path)
	}
	return spec, nil
}

func Decode(r io.Reader, format string) (Spec, error) {
	var (
		spec = Default()
		err  error
	)
	switch format {
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&spec)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&spec)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		err = fmt.Errorf("%s: %w", format, ErrFormat)
	}
	return spec, err
}

func formatOf(file string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%s: %w", ext, ErrFormat)
	}
}

// Name identifies the chart, from its title or its file.
func (s Spec) Name() string {
	if s.Title != "" {
		return s.Title
	}
	if s.file != "" {
		return strings.TrimSuffix(filepath.Base(s.file), filepath.Ext(s.file))
	}
	return "chart"
}

// OutputPath gives the location of the rendered chart. Relative outputs are
// resolved against dir; without output the file name gets the svg extension.
func (s Spec) OutputPath(dir string) string {
	out := s.Output
	if out == "" {
		base := "chart"
		if s.file != "" {
			base = strings.TrimSuffix(filepath.Base(s.file), filepath.Ext(s.file))
		}
		out = base + DefaultExt
	}
	if filepath.IsAbs(out) {
		return out
	}
	if dir == "" && s.file != "" {
		dir = filepath.Dir(s.file)
	}
	return filepath.Join(dir, out)
}

// Build maps the chart file onto a bars configuration.
func (s Spec) Build() (bars.Config, error) {
	tag, err := s.locale()
	if err != nil {
		return bars.Config{}, err
	}
	xaxis, err := s.XAxis.axisConfig("x_axis")
	if err != nil {
		return bars.Config{}, err
	}
	yaxis, err := s.YAxis.axisConfig("y_axis")
	if err != nil {
		return bars.Config{}, err
	}
	b := bars.NewBuilder().
		X(s.X).
		Y(s.Y).
		Fill(s.Fill).
		ID(s.ID).
		GroupBy(s.GroupBy...).
		StackBy(s.StackBy...).
		SortBy(s.SortBy...).
		XAxis(xaxis).
		YAxis(yaxis).
		Colors(s.Colors...).
		Coefficient(s.Coefficient).
		Format(bars.LocaleFormat(tag))
	if s.Labels != nil {
		b.HideLabels(!*s.Labels)
	}
	if s.Quantiles != nil {
		b.Quantiles(s.Quantiles.quantileConfig())
	}
	return b.Build()
}

func (s Spec) locale() (language.Tag, error) {
	if s.Locale == "" {
		return language.English, nil
	}
	tag, err := language.Parse(s.Locale)
	if err != nil {
		return tag, bars.ConfigError{Option: "locale", Reason: err.Error()}
	}
	return tag, nil
}

// Chart loads the records of the file and prepares a chart from them. The
// interactions on the chart are reported to logger.
func (s Spec) Chart(ctx context.Context, logger *log.Logger) (bars.Chart, error) {
	if logger == nil {
		logger = log.Default()
	}
	cfg, err := s.Build()
	if err != nil {
		return bars.Chart{}, err
	}
	records, err := s.Data.Records(ctx)
	if err != nil {
		return bars.Chart{}, fmt.Errorf("data: %w", err)
	}
	cfg.Handlers = eventLogger(logger.With("chart", s.Name()))

	layer := bars.New(cfg)
	layer.Data(records)

	logger.Debug("chart prepared", "chart", s.Name(), "mode", cfg.Mode(), "records", len(records))
	return s.chart(layer), nil
}

func (s Spec) chart(layer *bars.Bars) bars.Chart {
	pad := DefaultPadding
	if s.Padding != nil {
		pad = *s.Padding
	}
	width, height := s.Width, s.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return bars.Chart{
		Title:  s.Title,
		Width:  width,
		Height: height,
		Padding: bars.Padding{
			Top:    pad.Top,
			Right:  pad.Right,
			Bottom: pad.Bottom,
			Left:   pad.Left,
		},
		Layer:  layer,
		XLabel: s.XAxis.Label,
		YLabel: s.YAxis.Label,
		NoAxis: s.XAxis.Hide && s.YAxis.Hide,
	}
}

// Backend gives the SVG backend configured with the style of the file.
func (s Spec) Backend(events string) bars.SVGBackend {
	b := bars.SVGBackend{
		EventsURL: events,
		NoScript:  events == "",
	}
	if s.Style != nil {
		style := s.Style.merge(bars.DefaultStyle())
		b.Style = &style
	}
	return b
}

// Render draws the chart described by the file into w.
func (s Spec) Render(ctx context.Context, w io.Writer, logger *log.Logger) error {
	c, err := s.Chart(ctx, logger)
	if err != nil {
		return err
	}
	c.Backend = s.Backend("")
	return c.Render(w)
}

// RenderFile draws the chart into its output file and returns the path of
// the file written. The file is removed when the chart can not be drawn.
func (s Spec) RenderFile(ctx context.Context, dir string, logger *log.Logger) (string, error) {
	file := s.OutputPath(dir)
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return "", err
	}
	w, err := os.Create(file)
	if err != nil {
		return "", err
	}
	defer w.Close()
	if err := s.Render(ctx, w, logger); err != nil {
		w.Close()
		os.Remove(file)
		return "", err
	}
	return file, w.Close()
}

func eventLogger(logger *log.Logger) bars.Handlers {
	event := func(name string) bars.Handler {
		return func(d bars.Datum, i int) {
			logger.Info(name, "mark", i, "key", d.Key, "axis", d.Axis, "value", d.Value)
		}
	}
	return bars.Handlers{
		OnMouseOver: event("mouseover"),
		OnMouseOut:  event("mouseout"),
		OnClick:     event("click"),
	}
}

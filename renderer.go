package bars

import (
	"bufio"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	svg "github.com/ajstarks/svgo/float"
	strip "github.com/grokify/html-strip-tags-go"
)

// Frame describes the surface a scene is drawn onto.
type Frame struct {
	Title  string
	Width  float64
	Height float64
	Padding

	Left   Axis
	Bottom Axis
}

func (f Frame) DrawingWidth() float64 {
	return f.Width - f.Padding.Horizontal()
}

func (f Frame) DrawingHeight() float64 {
	return f.Height - f.Padding.Vertical()
}

// Backend materializes a scene.
type Backend interface {
	Render(io.Writer, Frame, Scene) error
}

const (
	barOpacity      = 0.9
	popupLineHeight = FontSize * 1.4
	popupMargin     = 6.0
)

const popupCSS = `
    .popup { pointer-events: none; transition: opacity 0.15s ease; }
    .popup[visibility="hidden"] { opacity: 0; }
    .popup[visibility="visible"] { opacity: 1; }`

const chartJS = `
    const events = %s;
    const notify = (el, name) => {
      if (!events) return;
      fetch(events + '/marks/' + el.dataset.index + '/' + name, {method: 'POST'});
    };
    document.querySelectorAll('rect.bar').forEach(el => {
      const popup = document.querySelector('.popup[data-for="' + el.id + '"]');
      el.addEventListener('mouseenter', () => {
        if (el.dataset.hoverFill) el.setAttribute('fill', el.dataset.hoverFill);
        if (popup) popup.setAttribute('visibility', 'visible');
        notify(el, 'mouseover');
      });
      el.addEventListener('mouseleave', () => {
        el.setAttribute('fill', el.dataset.fill);
        if (popup) popup.setAttribute('visibility', 'hidden');
        notify(el, 'mouseout');
      });
      el.addEventListener('click', () => notify(el, 'click'));
    });`

// SVGBackend writes scenes as standalone SVG documents. When EventsURL is
// set, the embedded script posts the interactions of the user to it.
type SVGBackend struct {
	EventsURL string
	Decimals  int
	NoScript  bool
	Style     *Style
}

func (b SVGBackend) Render(w io.Writer, frame Frame, scene Scene) error {
	var (
		bw     = bufio.NewWriter(w)
		ew     = errWriter{Writer: bw}
		canvas = svg.New(&ew)
	)
	if b.Decimals > 0 {
		canvas.Decimals = b.Decimals
	}
	style := DefaultStyle()
	if b.Style != nil {
		style = *b.Style
	}
	canvas.Start(frame.Width, frame.Height, `class="dbox-bars"`)
	if frame.Title != "" {
		canvas.Title(frame.Title)
	}
	canvas.Style("text/css", style.css())

	b.renderAxis(canvas, frame)

	canvas.Group(`class="area"`, translate(frame.Padding.Left, frame.Padding.Top))
	for _, m := range scene.Marks {
		renderMark(canvas, m, style)
	}
	for _, lb := range scene.Labels {
		renderLabel(canvas, lb)
	}
	for _, m := range scene.Marks {
		renderPopup(canvas, m, style)
	}
	canvas.Gend()

	if !b.NoScript {
		events, _ := json.Marshal(b.EventsURL)
		canvas.Script("application/javascript", fmt.Sprintf(chartJS, events))
	}
	canvas.End()
	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

func (b SVGBackend) renderAxis(canvas *svg.SVG, frame Frame) {
	if frame.Left == nil && frame.Bottom == nil {
		return
	}
	canvas.Gid("axis")
	if frame.Left != nil {
		frame.Left.Render(canvas, frame.DrawingHeight(), frame.DrawingWidth(), frame.Padding.Left, frame.Padding.Top)
	}
	if frame.Bottom != nil {
		frame.Bottom.Render(canvas, frame.DrawingWidth(), frame.DrawingHeight(), frame.Padding.Left, frame.Height-frame.Padding.Bottom)
	}
	canvas.Gend()
}

func renderMark(canvas *svg.SVG, m Mark, style Style) {
	attrs := []string{
		attr("id", m.ID),
		attr("class", m.Class),
		attr("fill", m.Color()),
		attr("data-fill", m.Fill),
		attr("data-index", fmt.Sprint(m.Index)),
	}
	attrs = append(attrs, style.barAttrs()...)
	if m.HoverFill != "" {
		attrs = append(attrs, attr("data-hover-fill", m.HoverFill))
	}
	canvas.Rect(m.Rect.X, m.Rect.Y, m.Rect.Width, m.Rect.Height, attrs...)
}

func renderLabel(canvas *svg.SVG, lb Label) {
	attrs := []string{attr("class", lb.Class)}
	if lb.Shift != (Point{}) {
		attrs = append(attrs, translate(lb.Shift.X, lb.Shift.Y))
	}
	canvas.Text(lb.Pos.X, lb.Pos.Y, lb.Text, attrs...)
}

func renderPopup(canvas *svg.SVG, m Mark, style Style) {
	lines := TipLines(m.Tip)
	if len(lines) == 0 {
		return
	}
	var (
		width  float64
		height = float64(len(lines))*popupLineHeight + popupMargin*2
	)
	for _, str := range lines {
		if w := float64(len(str)) * FontSize * 0.6; w > width {
			width = w
		}
	}
	width += popupMargin * 2

	y := m.Rect.Y - height - popupMargin
	if y < 0 {
		y = m.Rect.Y + m.Rect.Height + popupMargin
	}
	canvas.Group(`class="popup"`, attr("data-for", m.ID), `visibility="hidden"`, translate(m.Rect.X+m.Rect.Width/2-width/2, y))
	canvas.Roundrect(0, 0, width, height, 4, 4, attr("fill", style.Popup.Fill), attr("stroke", style.Popup.Stroke), `fill-opacity="0.95"`)
	for i, str := range lines {
		canvas.Text(popupMargin, popupMargin+float64(i+1)*popupLineHeight-FontSize*0.3, str, fmt.Sprintf(`font-size="%.0f"`, FontSize))
	}
	canvas.Gend()
}

var breaks = regexp.MustCompile(`(?i)<\s*/?\s*br\s*/?\s*>`)

// TipLines splits the html content of a tooltip in lines of plain text.
func TipLines(tip string) []string {
	var lines []string
	for _, str := range breaks.Split(tip, -1) {
		str = html.UnescapeString(strip.StripTags(str))
		if str = strings.TrimSpace(str); str != "" {
			lines = append(lines, str)
		}
	}
	return lines
}

func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, html.EscapeString(value))
}

type errWriter struct {
	io.Writer
	err error
}

func (w *errWriter) Write(b []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.Writer.Write(b)
	if err != nil {
		w.err = err
	}
	return n, err
}

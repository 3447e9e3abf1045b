// Package svg is a reticle.Surface that keeps primitive attributes in memory
// and renders them as a standalone SVG document.
package svg

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"text/template"
	"time"

	"reticlego/pkg/reticle"
)

var doc = template.Must(template.New("reticle").Funcs(template.FuncMap{
	"num": num,
	"vis": vis,
	"ms":  func(d time.Duration) int64 { return d.Milliseconds() },
	"add": func(a, b float64) float64 { return a + b },
}).Parse(`<svg xmlns="http://www.w3.org/2000/svg" width="{{num .Size.Width}}" height="{{num .Size.Height}}" viewBox="0 0 {{num .Size.Width}} {{num .Size.Height}}" visibility="{{vis .G.Visible}}" opacity="{{num .G.Opacity}}">
  <circle id="outerCircle" cx="{{num .G.Circle.Center.X}}" cy="{{num .G.Circle.Center.Y}}" r="{{num .G.Circle.Radius}}" fill="{{html .G.Circle.Fill}}" stroke="{{html .G.Circle.Stroke}}" stroke-width="{{num .G.Circle.StrokeWidth}}" visibility="{{vis .G.Circle.Visible}}"/>
  <circle id="centerDot" cx="{{num .G.Dot.Center.X}}" cy="{{num .G.Dot.Center.Y}}" r="{{num .G.Dot.Radius}}" fill="{{html .G.Dot.Fill}}" stroke="{{html .G.Dot.Stroke}}" stroke-width="{{num .G.Dot.StrokeWidth}}" visibility="{{vis .G.Dot.Visible}}"/>
  <g id="cross" transform="rotate({{num .Rotation}} {{num .Pivot.X}} {{num .Pivot.Y}})">
{{- if .Spinning}}
    <animateTransform attributeName="transform" type="rotate" from="{{num .Rotation}} {{num .Pivot.X}} {{num .Pivot.Y}}" to="{{num (add .Rotation 360)}} {{num .Pivot.X}} {{num .Pivot.Y}}" dur="{{ms .Period}}ms" repeatCount="indefinite"/>
{{- end}}
{{- range .G.Bars}}
    <rect x="{{num .Origin.X}}" y="{{num .Origin.Y}}" width="{{num .Width}}" height="{{num .Height}}" fill="{{html .Fill}}" visibility="{{vis .Visible}}" transform="translate({{num .Translate.X}} {{num .Translate.Y}})"/>
{{- end}}
  </g>
</svg>
`))

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func vis(visible bool) string {
	if visible {
		return "visible"
	}
	return "hidden"
}

// Surface is not safe for concurrent use; the only work done off the
// caller's goroutine is handing the spin completion to post.
type Surface struct {
	size     reticle.Size
	geometry reticle.Geometry
	post     func(func())
	now      func() time.Time

	spinning bool
	pivot    reticle.Point
	period   time.Duration
	started  time.Time
	timer    *time.Timer
}

// New creates a surface of the given size. Spin completions are passed to
// post, which must run them on the renderer's goroutine.
func New(size reticle.Size, post func(func())) *Surface {
	return &Surface{size: size, post: post, now: time.Now}
}

func (s *Surface) Size() reticle.Size { return s.size }

// Resize changes the drawable area and reports whether it differed.
func (s *Surface) Resize(size reticle.Size) bool {
	if size == s.size {
		return false
	}
	s.size = size
	return true
}

func (s *Surface) Draw(g reticle.Geometry) { s.geometry = g }

// Geometry returns the drawn primitives.
func (s *Surface) Geometry() reticle.Geometry { return s.geometry }

func (s *Surface) StopSpin(center reticle.Point) {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.spinning = false
	s.pivot = center
	s.period = 0
}

func (s *Surface) StartSpin(center reticle.Point, period time.Duration, done func()) {
	s.StopSpin(center)
	s.spinning = true
	s.period = period
	s.started = s.now()
	s.timer = time.AfterFunc(period, func() { s.post(done) })
}

// Spinning reports whether a turn is in progress.
func (s *Surface) Spinning() bool { return s.spinning }

// Rotation is the cross angle in degrees at this moment.
func (s *Surface) Rotation() float64 {
	if !s.spinning || s.period <= 0 {
		return 0
	}
	frac := float64(s.now().Sub(s.started)) / float64(s.period)
	return min(max(frac, 0), 1) * 360
}

// Close cancels a pending spin completion.
func (s *Surface) Close() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Render writes the SVG document for the current state.
func (s *Surface) Render(w io.Writer) error {
	data := struct {
		Size     reticle.Size
		G        reticle.Geometry
		Rotation float64
		Pivot    reticle.Point
		Spinning bool
		Period   time.Duration
	}{s.size, s.geometry, s.Rotation(), s.pivot, s.spinning, s.period}
	if err := doc.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render svg: %w", err)
	}
	return nil
}

// Bytes renders the document into memory.
func (s *Surface) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

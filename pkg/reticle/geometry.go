package reticle

// Point is a position on the surface in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a surface size in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the middle of the surface.
func (s Size) Center() Point {
	return Point{X: s.Width / 2, Y: s.Height / 2}
}

// Circle is a circle primitive.
type Circle struct {
	Center      Point   `json:"center"`
	Radius      float64 `json:"radius"`
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	Visible     bool    `json:"visible"`
}

// Rect is a bar primitive anchored at Origin and moved by Translate.
type Rect struct {
	Origin    Point   `json:"origin"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Translate Point   `json:"translate"`
	Fill      string  `json:"fill"`
	Visible   bool    `json:"visible"`
}

// TopLeft is the rectangle's corner after translation.
func (r Rect) TopLeft() Point {
	return Point{X: r.Origin.X + r.Translate.X, Y: r.Origin.Y + r.Translate.Y}
}

// Geometry is the full set of primitives for one render.
type Geometry struct {
	Center  Point   `json:"center"`
	Circle  Circle  `json:"circle"`
	Dot     Circle  `json:"dot"`
	Top     Rect    `json:"top"`
	Bottom  Rect    `json:"bottom"`
	Left    Rect    `json:"left"`
	Right   Rect    `json:"right"`
	Opacity float64 `json:"opacity"`
	Visible bool    `json:"visible"`
}

// Bars returns the cross bars in top, bottom, left, right order.
func (g Geometry) Bars() []Rect {
	return []Rect{g.Top, g.Bottom, g.Left, g.Right}
}

// Compute lays out every primitive around center. Hidden primitives still
// get their geometry so toggling visibility needs no recompute.
func Compute(center Point, cfg Config) Geometry {
	far := -cfg.Cross.Length - cfg.Cross.Spread
	half := -cfg.Cross.Thickness / 2

	bar := func(w, h float64, tx, ty float64) Rect {
		return Rect{
			Origin:    center,
			Width:     w,
			Height:    h,
			Translate: Point{X: tx, Y: ty},
			Fill:      cfg.Cross.Color,
			Visible:   cfg.Cross.Enabled,
		}
	}
	t, l, spread := cfg.Cross.Thickness, cfg.Cross.Length, cfg.Cross.Spread

	return Geometry{
		Center: center,
		Circle: Circle{
			Center:      center,
			Radius:      cfg.Circle.Radius,
			Fill:        "none",
			Stroke:      cfg.Circle.Color,
			StrokeWidth: cfg.Circle.Thickness,
			Visible:     cfg.Circle.Enabled,
		},
		Dot: Circle{
			Center:      center,
			Radius:      cfg.Dot.Radius,
			Fill:        cfg.Dot.Color,
			Stroke:      cfg.Dot.Color,
			StrokeWidth: 1,
			Visible:     cfg.Dot.Enabled,
		},
		Top:     bar(t, l, half, far),
		Bottom:  bar(t, l, half, spread),
		Left:    bar(l, t, far, half),
		Right:   bar(l, t, spread, half),
		Opacity: cfg.Overlay.Opacity,
		Visible: cfg.Overlay.Enabled,
	}
}

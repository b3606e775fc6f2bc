package calendar

const (
	defaultButtonLayer    = 100
	defaultButtonFontSize = 14
	defaultLabelLayer     = 50
	defaultLabelFontSize  = 14
	defaultLabelPadding   = 4
)

// ButtonConfig configures a Button. Zero colors come from the theme.
type ButtonConfig struct {
	ID       string
	Bounds   Rect
	Text     string
	Layer    int
	RegionID string

	Background Color
	Hover      Color
	Active     Color
	TextColor  Color
	Border     Color
	FontSize   float64
	Radius     float64

	OnClick func()
}

// Button is a clickable rounded rectangle with centered text. Its active
// state is set by the owner; the manager never toggles it.
type Button struct {
	id      string
	layer   int
	region  string
	bounds  Rect
	text    string
	onClick func()

	background, hover, active, textColor, border Color
	fontSize, radius                             float64

	hovered  bool
	isActive bool
}

// NewButton creates a button, filling unset fields from theme.
func NewButton(cfg ButtonConfig, theme *Theme) *Button {
	b := &Button{
		id:         cfg.ID,
		layer:      cfg.Layer,
		region:     cfg.RegionID,
		bounds:     cfg.Bounds,
		text:       cfg.Text,
		onClick:    cfg.OnClick,
		background: cfg.Background,
		hover:      cfg.Hover,
		active:     cfg.Active,
		textColor:  cfg.TextColor,
		border:     cfg.Border,
		fontSize:   cfg.FontSize,
		radius:     cfg.Radius,
	}
	if b.layer == 0 {
		b.layer = defaultButtonLayer
	}
	if b.background == (Color{}) {
		b.background = theme.Color("primary", fallbackPrimary)
	}
	if b.hover == (Color{}) {
		b.hover = theme.Color("primaryHover", Color{R: 21.0 / 255, G: 87.0 / 255, B: 176.0 / 255, A: 1})
	}
	if b.active == (Color{}) {
		b.active = theme.Color("primaryActive", Color{R: 13.0 / 255, G: 71.0 / 255, B: 161.0 / 255, A: 1})
	}
	if b.textColor == (Color{}) {
		b.textColor = theme.Color("textInverse", ColorWhite)
	}
	if b.border == (Color{}) {
		b.border = theme.Color("border", Color{R: 0xdd / 255.0, G: 0xdd / 255.0, B: 0xdd / 255.0, A: 1})
	}
	if b.fontSize <= 0 {
		b.fontSize = defaultButtonFontSize
	}
	if b.radius <= 0 {
		b.radius = theme.Radius("md", 6)
	}
	return b
}

func (b *Button) ID() string     { return b.id }
func (b *Button) Layer() int     { return b.layer }
func (b *Button) Region() string { return b.region }
func (b *Button) Bounds() Rect   { return b.bounds }
func (b *Button) Text() string   { return b.text }

// SetActive marks the button as the current selection.
func (b *Button) SetActive(active bool) { b.isActive = active }

// Active reports whether the button is marked active.
func (b *Button) Active() bool { return b.isActive }

// Hovered reports whether the pointer is over the button.
func (b *Button) Hovered() bool { return b.hovered }

// SetPosition moves the button's top-left corner.
func (b *Button) SetPosition(x, y float64) {
	b.bounds.X, b.bounds.Y = x, y
}

// fill returns the background for the current state. Active wins over hover.
func (b *Button) fill() Color {
	switch {
	case b.isActive:
		return b.active
	case b.hovered:
		return b.hover
	}
	return b.background
}

func (b *Button) Render(c Canvas) {
	c.FillRoundRect(b.bounds, b.radius, b.fill())
	border := b.border
	if b.isActive {
		border = b.active
	}
	c.StrokeRoundRect(b.bounds, b.radius, 1, border)

	tc := b.textColor
	if b.isActive {
		tc = ColorWhite
	}
	center := b.bounds.Center()
	c.DrawText(b.text, center.X, center.Y, TextStyle{
		Size:     b.fontSize,
		Color:    tc,
		Align:    TextAlignCenter,
		Baseline: TextBaselineMiddle,
		MaxWidth: b.bounds.Width,
	})
}

func (b *Button) HitTest(p Vec2) bool { return b.bounds.ContainsPoint(p) }

func (b *Button) OnClick(Vec2) {
	if b.onClick != nil {
		b.onClick()
	}
}

func (b *Button) OnHover(Vec2) { b.hovered = true }
func (b *Button) OnLeave()     { b.hovered = false }

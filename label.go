package calendar

// LabelConfig configures a TextLabel.
type LabelConfig struct {
	ID       string
	X, Y     float64
	Text     string
	Layer    int
	RegionID string

	Color      Color
	Background Color // transparent means no background
	FontSize   float64
	Align      TextAlign
	Baseline   TextBaseline
	Padding    float64

	// Interactive makes the label hit-testable so it absorbs pointer events.
	Interactive bool
	// Measurer sizes the label. Nil estimates 0.6 of the font size per rune.
	Measurer TextMeasurer
}

// TextLabel is a single line of text with optional background.
type TextLabel struct {
	cfg    LabelConfig
	bounds Rect
}

// NewTextLabel creates a label, filling unset fields from theme.
func NewTextLabel(cfg LabelConfig, theme *Theme) *TextLabel {
	if cfg.Layer == 0 {
		cfg.Layer = defaultLabelLayer
	}
	if cfg.Color == (Color{}) {
		cfg.Color = theme.Color("textPrimary", Color{R: 0x33 / 255.0, G: 0x33 / 255.0, B: 0x33 / 255.0, A: 1})
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = defaultLabelFontSize
	}
	if cfg.Padding <= 0 {
		cfg.Padding = defaultLabelPadding
	}
	l := &TextLabel{cfg: cfg}
	l.bounds = Rect{X: cfg.X, Y: cfg.Y}
	l.resize()
	return l
}

func (l *TextLabel) resize() {
	w := estimateTextWidth(l.cfg.Text, l.cfg.FontSize)
	if l.cfg.Measurer != nil {
		w = l.cfg.Measurer.MeasureText(l.cfg.Text, l.cfg.FontSize)
	}
	l.bounds.Width = w + 2*l.cfg.Padding
	l.bounds.Height = l.cfg.FontSize + 2*l.cfg.Padding
}

func (l *TextLabel) ID() string     { return l.cfg.ID }
func (l *TextLabel) Layer() int     { return l.cfg.Layer }
func (l *TextLabel) Region() string { return l.cfg.RegionID }
func (l *TextLabel) Bounds() Rect   { return l.bounds }
func (l *TextLabel) Text() string   { return l.cfg.Text }

// SetText replaces the text and resizes the bounds.
func (l *TextLabel) SetText(s string) {
	l.cfg.Text = s
	l.resize()
}

// SetPosition moves the label's top-left corner.
func (l *TextLabel) SetPosition(x, y float64) {
	l.bounds.X, l.bounds.Y = x, y
}

func (l *TextLabel) Render(c Canvas) {
	b := l.bounds
	if l.cfg.Background.A > 0 {
		c.FillRect(b, l.cfg.Background)
	}

	x := b.X + l.cfg.Padding
	switch l.cfg.Align {
	case TextAlignCenter:
		x = b.X + b.Width/2
	case TextAlignRight:
		x = b.X + b.Width - l.cfg.Padding
	}
	y := b.Y + l.cfg.Padding
	switch l.cfg.Baseline {
	case TextBaselineMiddle:
		y = b.Y + b.Height/2
	case TextBaselineBottom:
		y = b.Y + b.Height - l.cfg.Padding
	}
	c.DrawText(l.cfg.Text, x, y, TextStyle{
		Size:     l.cfg.FontSize,
		Color:    l.cfg.Color,
		Align:    l.cfg.Align,
		Baseline: l.cfg.Baseline,
	})
}

// HitTest reports whether p is inside an interactive label.
func (l *TextLabel) HitTest(p Vec2) bool {
	return l.cfg.Interactive && l.bounds.ContainsPoint(p)
}

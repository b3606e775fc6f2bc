package calendar

// Fallbacks used when neither the config nor the theme names a value.
var (
	fallbackEventColor = Color{R: 0, G: 122.0 / 255, B: 1, A: 1} // #007AFF
	fallbackPrimary    = Color{R: 26.0 / 255, G: 115.0 / 255, B: 232.0 / 255, A: 1}
)

const fallbackRadius = 4

// Theme resolves named colors and dimensions from a Config. It replaces
// process-wide lookups: every component that needs theme values receives a
// *Theme explicitly. A nil *Theme answers every lookup with the fallback.
type Theme struct {
	colors   map[string]Color
	fontSize map[string]float64
	spacing  map[string]float64
	radius   map[string]float64
	users    map[string]UserConfig
	styles   StyleConfig
}

// NewTheme derives a theme from cfg. Unparsable colors are skipped.
func NewTheme(cfg *Config) *Theme {
	t := &Theme{
		colors:   make(map[string]Color),
		fontSize: make(map[string]float64),
		spacing:  make(map[string]float64),
		radius:   make(map[string]float64),
		users:    make(map[string]UserConfig),
	}
	if cfg == nil {
		return t
	}
	for k, v := range cfg.Theme.Colors {
		if c, err := ParseColor(v); err == nil {
			t.colors[k] = c
		}
	}
	for k, v := range cfg.Theme.Typography.FontSize {
		t.fontSize[k] = v
	}
	for k, v := range cfg.Theme.Dimensions.Spacing {
		t.spacing[k] = v
	}
	for k, v := range cfg.Theme.Dimensions.BorderRadius {
		t.radius[k] = v
	}
	for _, u := range cfg.Users {
		t.users[u.ID] = u
	}
	t.styles = cfg.Styles
	return t
}

// Color returns the named theme color or fallback.
func (t *Theme) Color(key string, fallback Color) Color {
	if t == nil {
		return fallback
	}
	if c, ok := t.colors[key]; ok {
		return c
	}
	return fallback
}

// FontSize returns the named font size or fallback.
func (t *Theme) FontSize(key string, fallback float64) float64 {
	return lookupPositive(t, func(t *Theme) map[string]float64 { return t.fontSize }, key, fallback)
}

// Spacing returns the named spacing or fallback.
func (t *Theme) Spacing(key string, fallback float64) float64 {
	return lookupPositive(t, func(t *Theme) map[string]float64 { return t.spacing }, key, fallback)
}

// Radius returns the named border radius or fallback.
func (t *Theme) Radius(key string, fallback float64) float64 {
	return lookupPositive(t, func(t *Theme) map[string]float64 { return t.radius }, key, fallback)
}

func lookupPositive(t *Theme, m func(*Theme) map[string]float64, key string, fallback float64) float64 {
	if t == nil {
		return fallback
	}
	if v, ok := m(t)[key]; ok && v > 0 {
		return v
	}
	return fallback
}

// User returns the configured user with the given id.
func (t *Theme) User(id string) (UserConfig, bool) {
	if t == nil {
		return UserConfig{}, false
	}
	u, ok := t.users[id]
	return u, ok
}

// UserName returns the display name for a user id, or the id itself.
func (t *Theme) UserName(id string) string {
	if u, ok := t.User(id); ok && u.Name != "" {
		return u.Name
	}
	return id
}

// EventColor resolves the fill of an event: its own metadata color, then its
// owner's color, then the theme primary, then #007AFF.
func (t *Theme) EventColor(ev Event) Color {
	if c, err := ParseColor(ev.Meta.Color); ev.Meta.Color != "" && err == nil {
		return c
	}
	if u, ok := t.User(ev.Owner); ok {
		if c, err := ParseColor(u.Color); err == nil {
			return c
		}
	}
	return t.Color("primary", fallbackEventColor)
}

// Styles returns the global styles merged under the view overrides.
func (t *Theme) Styles(view *View) StyleConfig {
	var s StyleConfig
	if t != nil {
		s = t.styles
	}
	if view != nil && view.Styles != nil {
		s = mergeStyles(s, *view.Styles)
	}
	return s
}

// mergeStyles overlays the non-zero fields of over onto base.
func mergeStyles(base, over StyleConfig) StyleConfig {
	if over.GridColor != "" {
		base.GridColor = over.GridColor
	}
	if over.GridWidth > 0 {
		base.GridWidth = over.GridWidth
	}
	if over.LabelColor != "" {
		base.LabelColor = over.LabelColor
	}
	if over.LabelFontSize > 0 {
		base.LabelFontSize = over.LabelFontSize
	}
	if over.EventRadius > 0 {
		base.EventRadius = over.EventRadius
	}
	if over.EventShadow != "" {
		base.EventShadow = over.EventShadow
	}
	if over.Background != "" {
		base.Background = over.Background
	}
	return base
}

package calendar

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Direction is the axis along which layout regions are stacked.
type Direction string

const (
	DirectionVertical   Direction = "vertical"
	DirectionHorizontal Direction = "horizontal"
)

// RegionType selects how a region's main-axis extent is allocated.
type RegionType string

const (
	RegionFixed RegionType = "fixed"
	RegionFlex  RegionType = "flex"
)

// SizeMode controls how element metrics drawn inside a region respond to
// canvas resizes.
type SizeMode string

const (
	SizeOriginal SizeMode = "original"
	SizeScale    SizeMode = "scale"
)

// OverlapStrategy names how overlapping events should be resolved. The
// value is carried through to View.Overlap but no strategy is applied by
// the layout engine yet.
type OverlapStrategy string

const (
	OverlapStack    OverlapStrategy = "stack"
	OverlapHide     OverlapStrategy = "hide"
	OverlapCompress OverlapStrategy = "compress"
)

// Config is the resolved calendar configuration. It is loaded once and passed
// explicitly to every constructor that needs it.
type Config struct {
	Views       map[string]ViewConfig `koanf:"views" yaml:"views"`
	DefaultView string                `koanf:"defaultView" yaml:"defaultView"`
	Users       []UserConfig          `koanf:"users" yaml:"users,omitempty"`
	TimeRange   *TimeRangeConfig      `koanf:"timeRange" yaml:"timeRange,omitempty"`
	Styles      StyleConfig           `koanf:"styles" yaml:"styles"`
	Theme       ThemeConfig           `koanf:"theme" yaml:"theme,omitempty"`
	UI          UIConfig              `koanf:"ui" yaml:"ui"`
	Layout      LayoutConfig          `koanf:"layout" yaml:"layout"`

	// Timezone is the IANA zone used to read hours and weekdays from event
	// instants. Empty means the process local zone.
	Timezone string `koanf:"timezone" yaml:"timezone,omitempty"`
}

// ViewConfig describes one switchable calendar view.
type ViewConfig struct {
	Name        string           `koanf:"name" yaml:"name"`
	Description string           `koanf:"description" yaml:"description,omitempty"`
	XAxis       AxisConfig       `koanf:"xAxis" yaml:"xAxis"`
	YAxis       AxisConfig       `koanf:"yAxis" yaml:"yAxis"`
	Layout      ViewLayoutConfig `koanf:"layout" yaml:"layout"`
	Styles      *StyleConfig     `koanf:"styles" yaml:"styles,omitempty"`
}

// AxisConfig is the declarative form of an axis. It is converted to a typed
// Axis by ParseAxis.
type AxisConfig struct {
	Type         string    `koanf:"type" yaml:"type"`
	Domain       []any     `koanf:"domain" yaml:"domain,flow,omitempty"`
	Range        []float64 `koanf:"range" yaml:"range,flow"`
	Label        string    `koanf:"label" yaml:"label,omitempty"`
	Grid         bool      `koanf:"grid" yaml:"grid,omitempty"`
	GridInterval float64   `koanf:"gridInterval" yaml:"gridInterval,omitempty"`
	// Format is an fmt pattern applied to tick values, e.g. "%v:00".
	Format string `koanf:"format" yaml:"format,omitempty"`
}

// ViewLayoutConfig is the event layout policy of a view.
type ViewLayoutConfig struct {
	Type            string          `koanf:"type" yaml:"type,omitempty"`
	MinEventHeight  float64         `koanf:"minEventHeight" yaml:"minEventHeight"`
	MaxLayers       int             `koanf:"maxLayers" yaml:"maxLayers"`
	OverlapStrategy OverlapStrategy `koanf:"overlapStrategy" yaml:"overlapStrategy"`
}

// StyleConfig holds drawing styles. Zero fields inherit from the next level.
type StyleConfig struct {
	GridColor     string  `koanf:"gridColor" yaml:"gridColor,omitempty"`
	GridWidth     float64 `koanf:"gridWidth" yaml:"gridWidth,omitempty"`
	LabelColor    string  `koanf:"labelColor" yaml:"labelColor,omitempty"`
	LabelFontSize float64 `koanf:"labelFontSize" yaml:"labelFontSize,omitempty"`
	EventRadius   float64 `koanf:"eventRadius" yaml:"eventRadius,omitempty"`
	EventShadow   string  `koanf:"eventShadow" yaml:"eventShadow,omitempty"`
	Background    string  `koanf:"background" yaml:"background,omitempty"`
}

// UserConfig describes a user shown on a users axis.
type UserConfig struct {
	ID    string `koanf:"id" yaml:"id"`
	Name  string `koanf:"name" yaml:"name"`
	Color string `koanf:"color" yaml:"color"`
}

// TimeRangeConfig narrows the visible hours of the day.
type TimeRangeConfig struct {
	StartHour    int  `koanf:"startHour" yaml:"startHour"`
	EndHour      int  `koanf:"endHour" yaml:"endHour"`
	WorkingHours bool `koanf:"workingHours" yaml:"workingHours,omitempty"`
}

// ThemeConfig holds named colors and dimensions looked up through Theme.
type ThemeConfig struct {
	Colors     map[string]string `koanf:"colors" yaml:"colors,omitempty"`
	Typography TypographyConfig  `koanf:"typography" yaml:"typography,omitempty"`
	Dimensions DimensionsConfig  `koanf:"dimensions" yaml:"dimensions,omitempty"`
}

// TypographyConfig holds named font sizes.
type TypographyConfig struct {
	FontFamily string             `koanf:"fontFamily" yaml:"fontFamily,omitempty"`
	FontSize   map[string]float64 `koanf:"fontSize" yaml:"fontSize,omitempty"`
}

// DimensionsConfig holds named spacings and corner radii.
type DimensionsConfig struct {
	Spacing      map[string]float64 `koanf:"spacing" yaml:"spacing,omitempty"`
	BorderRadius map[string]float64 `koanf:"borderRadius" yaml:"borderRadius,omitempty"`
}

// UIConfig configures the widgets built by App.
type UIConfig struct {
	Title   TitleConfig   `koanf:"title" yaml:"title"`
	Buttons ButtonsConfig `koanf:"buttons" yaml:"buttons"`
}

// TitleConfig configures the header title label.
type TitleConfig struct {
	Text     string  `koanf:"text" yaml:"text"`
	FontSize float64 `koanf:"fontSize" yaml:"fontSize"`
	Color    string  `koanf:"color" yaml:"color,omitempty"`
	OffsetX  float64 `koanf:"offsetX" yaml:"offsetX"`
	OffsetY  float64 `koanf:"offsetY" yaml:"offsetY,omitempty"`
}

// ButtonsConfig configures the view switch buttons.
type ButtonsConfig struct {
	Width    float64            `koanf:"width" yaml:"width"`
	Height   float64            `koanf:"height" yaml:"height"`
	Gap      float64            `koanf:"gap" yaml:"gap"`
	FontSize float64            `koanf:"fontSize" yaml:"fontSize"`
	Views    []ViewButtonConfig `koanf:"views" yaml:"views,omitempty"`
}

// ViewButtonConfig maps a button label to a view key.
type ViewButtonConfig struct {
	ID    string `koanf:"id" yaml:"id"`
	Label string `koanf:"label" yaml:"label"`
}

// LayoutConfig configures region allocation.
type LayoutConfig struct {
	Direction Direction      `koanf:"direction" yaml:"direction"`
	Gap       float64        `koanf:"gap" yaml:"gap,omitempty"`
	Regions   []RegionConfig `koanf:"regions" yaml:"regions"`
}

// RegionConfig declares one region.
type RegionConfig struct {
	ID          string     `koanf:"id" yaml:"id"`
	Type        RegionType `koanf:"type" yaml:"type"`
	SizeMode    SizeMode   `koanf:"sizeMode" yaml:"sizeMode"`
	FixedWidth  float64    `koanf:"fixedWidth" yaml:"fixedWidth,omitempty"`
	FixedHeight float64    `koanf:"fixedHeight" yaml:"fixedHeight,omitempty"`
	FlexGrow    float64    `koanf:"flexGrow" yaml:"flexGrow,omitempty"`
	Padding     Insets     `koanf:"padding" yaml:"padding,omitempty"`
}

// Well-known region ids used by App.
const (
	RegionHeader   = "header"
	RegionCalendar = "calendar"
	RegionFooter   = "footer"
)

const (
	defaultMinEventHeight = 20
	defaultMaxLayers      = 3
	defaultTitle          = "Canvas Calendar"
)

// DefaultConfig returns a complete in-memory configuration with the five
// standard views, four sample users and a header/calendar/footer layout.
func DefaultConfig() *Config {
	hours := AxisConfig{
		Type:         string(AxisTimeHours),
		Domain:       []any{0, 24},
		Range:        []float64{0.04, 0.92},
		Label:        "Time",
		Grid:         true,
		GridInterval: 1,
		Format:       "%v:00",
	}
	week := AxisConfig{
		Type:   string(AxisDaysOfWeek),
		Domain: []any{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		Range:  []float64{0.06, 1},
		Label:  "Day",
		Grid:   true,
	}
	users := AxisConfig{
		Type:   string(AxisUsers),
		Domain: []any{"user1", "user2", "user3", "user4"},
		Range:  []float64{0.06, 1},
		Label:  "Member",
		Grid:   true,
	}
	policy := ViewLayoutConfig{
		Type:            "vertical-stack",
		MinEventHeight:  defaultMinEventHeight,
		MaxLayers:       defaultMaxLayers,
		OverlapStrategy: OverlapStack,
	}

	cfg := &Config{
		DefaultView: "personal-day",
		Views: map[string]ViewConfig{
			"personal-day": {
				Name:   "Personal Day",
				XAxis:  AxisConfig{Type: string(AxisSingleDay), Domain: []any{0, 1}, Range: []float64{0.06, 1}, Label: "Today"},
				YAxis:  hours,
				Layout: policy,
			},
			"personal-week": {
				Name:   "Personal Week",
				XAxis:  week,
				YAxis:  hours,
				Layout: policy,
			},
			"personal-month": {
				Name:  "Personal Month",
				XAxis: week,
				YAxis: AxisConfig{
					Type:   string(AxisWeeksOfMonth),
					Domain: []any{1, 7},
					Range:  []float64{0.02, 0.92},
					Label:  "Week",
					Grid:   true,
				},
				Layout: ViewLayoutConfig{Type: "calendar-grid", MinEventHeight: 12, MaxLayers: 4, OverlapStrategy: OverlapCompress},
			},
			"group-day": {
				Name:   "Group Day",
				XAxis:  users,
				YAxis:  hours,
				Layout: policy,
			},
			"group-week": {
				Name:  "Group Week",
				XAxis: week,
				YAxis: AxisConfig{
					Type:   string(AxisUsers),
					Domain: []any{"user1", "user2", "user3", "user4"},
					Range:  []float64{0.02, 0.92},
					Label:  "Member",
					Grid:   true,
				},
				Layout: ViewLayoutConfig{Type: "grid", MinEventHeight: 16, MaxLayers: 2, OverlapStrategy: OverlapHide},
			},
		},
		Users: []UserConfig{
			{ID: "user1", Name: "Alice", Color: "#007AFF"},
			{ID: "user2", Name: "Bob", Color: "#34C759"},
			{ID: "user3", Name: "Carol", Color: "#FF9500"},
			{ID: "user4", Name: "Dave", Color: "#AF52DE"},
		},
		Styles: StyleConfig{
			GridColor:     "#e0e0e0",
			GridWidth:     1,
			LabelColor:    "#666666",
			LabelFontSize: 12,
			EventRadius:   4,
			EventShadow:   "0 2px 6px rgba(0,0,0,0.2)",
			Background:    "#ffffff",
		},
		Theme: ThemeConfig{
			Colors: map[string]string{
				"primary":       "#1a73e8",
				"primaryHover":  "#1557b0",
				"primaryActive": "#0d47a1",
				"background":    "#f5f5f5",
				"textPrimary":   "#333333",
				"textSecondary": "#666666",
				"textInverse":   "#ffffff",
			},
			Dimensions: DimensionsConfig{
				BorderRadius: map[string]float64{"sm": 4, "md": 6, "lg": 10},
				Spacing:      map[string]float64{"sm": 4, "md": 8, "lg": 16},
			},
		},
		UI: UIConfig{
			Title:   TitleConfig{Text: defaultTitle, FontSize: 20, OffsetX: 10},
			Buttons: ButtonsConfig{Width: 90, Height: 32, Gap: 8, FontSize: 13},
		},
		Layout: LayoutConfig{
			Direction: DirectionVertical,
			Regions: []RegionConfig{
				{ID: RegionHeader, Type: RegionFixed, SizeMode: SizeOriginal, FixedHeight: 60, Padding: Insets{Left: 10, Right: 10}},
				{ID: RegionCalendar, Type: RegionFlex, SizeMode: SizeScale, FlexGrow: 1, Padding: Insets{Top: 4, Right: 10, Bottom: 4, Left: 10}},
				{ID: RegionFooter, Type: RegionFixed, SizeMode: SizeOriginal, FixedHeight: 28, Padding: Insets{Left: 10, Right: 10}},
			},
		},
	}
	cfg.Normalize()
	return cfg
}

// Normalize fills missing or zero values with defaults so that partially
// written configs still behave.
func (c *Config) Normalize() {
	if c.Views == nil {
		c.Views = map[string]ViewConfig{}
	}
	if c.DefaultView == "" {
		if keys := c.ViewKeys(); len(keys) > 0 {
			c.DefaultView = keys[0]
		}
	}
	for key, v := range c.Views {
		if v.Name == "" {
			v.Name = key
		}
		normalizeAxis(&v.XAxis)
		normalizeAxis(&v.YAxis)
		if v.Layout.MinEventHeight <= 0 {
			v.Layout.MinEventHeight = defaultMinEventHeight
		}
		if v.Layout.MaxLayers <= 0 {
			v.Layout.MaxLayers = defaultMaxLayers
		}
		if v.Layout.OverlapStrategy == "" {
			v.Layout.OverlapStrategy = OverlapStack
		}
		c.Views[key] = v
	}

	s := &c.Styles
	if s.GridColor == "" {
		s.GridColor = "#e0e0e0"
	}
	if s.GridWidth <= 0 {
		s.GridWidth = 1
	}
	if s.LabelColor == "" {
		s.LabelColor = "#666666"
	}
	if s.LabelFontSize <= 0 {
		s.LabelFontSize = 12
	}
	if s.EventRadius <= 0 {
		s.EventRadius = 4
	}
	if s.EventShadow == "" {
		s.EventShadow = "0 2px 6px rgba(0,0,0,0.2)"
	}
	if s.Background == "" {
		s.Background = "#ffffff"
	}

	if c.UI.Title.Text == "" {
		c.UI.Title.Text = defaultTitle
	}
	if c.UI.Title.FontSize <= 0 {
		c.UI.Title.FontSize = 20
	}
	if c.UI.Title.OffsetX == 0 {
		c.UI.Title.OffsetX = 10
	}
	b := &c.UI.Buttons
	if b.Width <= 0 {
		b.Width = 90
	}
	if b.Height <= 0 {
		b.Height = 32
	}
	if b.Gap <= 0 {
		b.Gap = 8
	}
	if b.FontSize <= 0 {
		b.FontSize = 13
	}
	if len(b.Views) == 0 {
		for _, key := range c.ViewKeys() {
			b.Views = append(b.Views, ViewButtonConfig{ID: key, Label: c.Views[key].Name})
		}
	}

	if c.Layout.Direction == "" {
		c.Layout.Direction = DirectionVertical
	}
	for i := range c.Layout.Regions {
		r := &c.Layout.Regions[i]
		if r.Type == "" {
			r.Type = RegionFlex
		}
		if r.SizeMode == "" {
			r.SizeMode = SizeOriginal
		}
		if r.Type == RegionFlex && r.FlexGrow <= 0 {
			r.FlexGrow = 1
		}
	}
}

func normalizeAxis(a *AxisConfig) {
	if len(a.Range) == 0 {
		a.Range = []float64{0, 1}
	}
	switch AxisKind(a.Type) {
	case AxisSingleDay, AxisEmpty:
		if len(a.Domain) == 0 {
			a.Domain = []any{0, 1}
		}
	}
}

// Location returns the configured time zone, or time.Local when none is set
// or it cannot be loaded.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// ViewKeys returns the configured view keys in sorted order.
func (c *Config) ViewKeys() []string {
	keys := make([]string, 0, len(c.Views))
	for k := range c.Views {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks structural invariants. All problems are reported together;
// each one wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if len(c.Views) == 0 {
		bad("no views configured")
	}
	if _, ok := c.Views[c.DefaultView]; !ok {
		bad("default view %q is not defined", c.DefaultView)
	}
	for _, key := range c.ViewKeys() {
		v := c.Views[key]
		for name, ax := range map[string]AxisConfig{"xAxis": v.XAxis, "yAxis": v.YAxis} {
			if err := validateAxis(ax); err != nil {
				bad("view %q %s: %v", key, name, err)
			}
		}
		switch v.Layout.OverlapStrategy {
		case OverlapStack, OverlapHide, OverlapCompress:
		default:
			bad("view %q: unknown overlap strategy %q", key, v.Layout.OverlapStrategy)
		}
		if v.Layout.MinEventHeight < 0 {
			bad("view %q: negative minEventHeight", key)
		}
	}

	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			bad("timezone %q: %v", c.Timezone, err)
		}
	}

	switch c.Layout.Direction {
	case DirectionVertical, DirectionHorizontal:
	default:
		bad("layout: unknown direction %q", c.Layout.Direction)
	}
	if c.Layout.Gap < 0 {
		bad("layout: negative gap")
	}
	seen := make(map[string]bool, len(c.Layout.Regions))
	for _, r := range c.Layout.Regions {
		if r.ID == "" {
			bad("layout: region without id")
			continue
		}
		if seen[r.ID] {
			bad("layout: duplicate region %q", r.ID)
		}
		seen[r.ID] = true
		switch r.Type {
		case RegionFixed, RegionFlex:
		default:
			bad("layout: region %q has unknown type %q", r.ID, r.Type)
		}
		switch r.SizeMode {
		case SizeOriginal, SizeScale:
		default:
			bad("layout: region %q has unknown size mode %q", r.ID, r.SizeMode)
		}
	}
	return errors.Join(errs...)
}

func validateAxis(a AxisConfig) error {
	if len(a.Range) != 2 {
		return fmt.Errorf("range must have two ratios, got %d", len(a.Range))
	}
	for _, r := range a.Range {
		if r < 0 || r > 1 {
			return fmt.Errorf("range ratio %v outside [0,1]", r)
		}
	}
	if a.Range[0] == a.Range[1] {
		return fmt.Errorf("range %v is degenerate", a.Range)
	}
	if len(a.Domain) == 0 {
		return errors.New("domain is empty")
	}
	switch AxisKind(a.Type) {
	case AxisTimeHours, AxisWeeksOfMonth, AxisLinear:
		if len(a.Domain) != 2 {
			return fmt.Errorf("continuous domain needs two values, got %d", len(a.Domain))
		}
		for _, d := range a.Domain {
			if _, ok := toFloat(d); !ok {
				return fmt.Errorf("domain value %v is not numeric", d)
			}
		}
	}
	return nil
}

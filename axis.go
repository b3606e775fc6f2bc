package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// AxisKind names how domain values on an axis map to pixels.
type AxisKind string

const (
	AxisTimeHours    AxisKind = "time-hours"
	AxisDaysOfWeek   AxisKind = "days-of-week"
	AxisWeeksOfMonth AxisKind = "weeks-of-month"
	AxisUsers        AxisKind = "users"
	AxisSingleDay    AxisKind = "single-day"
	AxisEmpty        AxisKind = "empty"
	AxisLinear       AxisKind = "linear"
)

// Axis is one of the concrete axis types declared in this file. The set is
// closed: only this package can add new kinds.
type Axis interface {
	Kind() AxisKind
	// Common returns the settings shared by every axis kind.
	Common() AxisCommon
	isAxis()
}

// AxisCommon holds the settings every axis kind carries.
type AxisCommon struct {
	// Range is the output interval as ratios of the render extent.
	Range        [2]float64
	Label        string
	Grid         bool
	GridInterval float64
	// Format is an fmt pattern for tick labels. Formatter, when set, wins.
	Format    string
	Formatter func(v any) string
}

// Common returns c.
func (c AxisCommon) Common() AxisCommon { return c }

// FormatTick renders a tick value for display.
func (c AxisCommon) FormatTick(v any) string {
	if c.Formatter != nil {
		return c.Formatter(v)
	}
	if c.Format != "" {
		return fmt.Sprintf(c.Format, v)
	}
	return fmt.Sprint(v)
}

// TimeHoursAxis maps fractional hours of the day.
type TimeHoursAxis struct {
	AxisCommon
	Domain [2]float64
}

// WeeksOfMonthAxis maps the 1-based week row of a date within its month.
type WeeksOfMonthAxis struct {
	AxisCommon
	Domain [2]float64
}

// LinearAxis is a plain numeric axis. Events have no natural position on it
// and are drawn as placeholders.
type LinearAxis struct {
	AxisCommon
	Domain [2]float64
}

// DaysOfWeekAxis bands three-letter weekday keys ("Mon", "Tue", ...).
type DaysOfWeekAxis struct {
	AxisCommon
	Days []string
}

// UsersAxis bands owner ids.
type UsersAxis struct {
	AxisCommon
	Users []string
}

// SingleDayAxis occupies the whole span regardless of event time.
type SingleDayAxis struct {
	AxisCommon
}

// EmptyAxis places every event in a centered slot independent of its data.
type EmptyAxis struct {
	AxisCommon
}

// UnknownAxis carries a kind this package does not recognize. It maps as
// linear [0, 1].
type UnknownAxis struct {
	AxisCommon
	Type string
}

func (*TimeHoursAxis) Kind() AxisKind    { return AxisTimeHours }
func (*WeeksOfMonthAxis) Kind() AxisKind { return AxisWeeksOfMonth }
func (*LinearAxis) Kind() AxisKind       { return AxisLinear }
func (*DaysOfWeekAxis) Kind() AxisKind   { return AxisDaysOfWeek }
func (*UsersAxis) Kind() AxisKind        { return AxisUsers }
func (*SingleDayAxis) Kind() AxisKind    { return AxisSingleDay }
func (*EmptyAxis) Kind() AxisKind        { return AxisEmpty }
func (a *UnknownAxis) Kind() AxisKind    { return AxisKind(a.Type) }

func (*TimeHoursAxis) isAxis()    {}
func (*WeeksOfMonthAxis) isAxis() {}
func (*LinearAxis) isAxis()       {}
func (*DaysOfWeekAxis) isAxis()   {}
func (*UsersAxis) isAxis()        {}
func (*SingleDayAxis) isAxis()    {}
func (*EmptyAxis) isAxis()        {}
func (*UnknownAxis) isAxis()      {}

// ParseAxis converts the declarative form into a typed axis. It never fails:
// malformed domains fall back to the kind's default domain and unknown kinds
// become an *UnknownAxis.
func ParseAxis(cfg AxisConfig) Axis {
	common := AxisCommon{
		Range:        [2]float64{0, 1},
		Label:        cfg.Label,
		Grid:         cfg.Grid,
		GridInterval: cfg.GridInterval,
		Format:       cfg.Format,
	}
	if len(cfg.Range) == 2 {
		common.Range = [2]float64{cfg.Range[0], cfg.Range[1]}
	}

	switch AxisKind(cfg.Type) {
	case AxisTimeHours:
		return &TimeHoursAxis{AxisCommon: common, Domain: numericDomain(cfg.Domain, [2]float64{0, 24})}
	case AxisWeeksOfMonth:
		return &WeeksOfMonthAxis{AxisCommon: common, Domain: numericDomain(cfg.Domain, [2]float64{1, 7})}
	case AxisLinear:
		return &LinearAxis{AxisCommon: common, Domain: numericDomain(cfg.Domain, [2]float64{0, 1})}
	case AxisDaysOfWeek:
		days := keyDomain(cfg.Domain)
		if len(days) == 0 {
			days = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
		}
		return &DaysOfWeekAxis{AxisCommon: common, Days: days}
	case AxisUsers:
		return &UsersAxis{AxisCommon: common, Users: keyDomain(cfg.Domain)}
	case AxisSingleDay:
		return &SingleDayAxis{AxisCommon: common}
	case AxisEmpty:
		return &EmptyAxis{AxisCommon: common}
	}
	return &UnknownAxis{AxisCommon: common, Type: cfg.Type}
}

func numericDomain(raw []any, fallback [2]float64) [2]float64 {
	if len(raw) != 2 {
		return fallback
	}
	lo, ok1 := toFloat(raw[0])
	hi, ok2 := toFloat(raw[1])
	if !ok1 || !ok2 {
		return fallback
	}
	return [2]float64{lo, hi}
}

func keyDomain(raw []any) []string {
	keys := make([]string, 0, len(raw))
	for _, v := range raw {
		keys = append(keys, fmt.Sprint(v))
	}
	return keys
}

// toFloat accepts the numeric shapes produced by the YAML, JSON and
// environment config sources.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

package calendar

import "math"

// bandPadding is the share of each band step left empty, split evenly
// between both sides of the band.
const bandPadding = 0.1

// maxTicks bounds Ticks output for tiny intervals.
const maxTicks = 1000

// Scale maps axis values to pixels. The concrete type is *LinearScale or
// *BandScale depending on the axis kind.
type Scale interface {
	// Span returns the pixel interval the scale maps onto.
	Span() (start, end float64)
}

// NewScale builds the pixel mapping for axis over a pixel extent starting at
// offset. Output covers [offset+range[0]*extent, offset+range[1]*extent].
// Scales are cheap and are rebuilt on every layout pass.
func NewScale(axis Axis, extent, offset float64) Scale {
	r := [2]float64{0, 1}
	if axis != nil {
		r = axis.Common().Range
	}
	start := offset + r[0]*extent
	end := offset + r[1]*extent

	switch a := axis.(type) {
	case *TimeHoursAxis:
		return newLinearScale(a.Domain, start, end)
	case *WeeksOfMonthAxis:
		return newLinearScale(a.Domain, start, end)
	case *LinearAxis:
		return newLinearScale(a.Domain, start, end)
	case *DaysOfWeekAxis:
		return newBandScale(a.Days, start, end)
	case *UsersAxis:
		return newBandScale(a.Users, start, end)
	case *SingleDayAxis, *EmptyAxis, *UnknownAxis:
		return newLinearScale([2]float64{0, 1}, start, end)
	}
	return newLinearScale([2]float64{0, 1}, start, end)
}

// LinearScale interpolates between a numeric domain and a pixel span.
type LinearScale struct {
	d0, d1 float64
	r0, r1 float64
}

func newLinearScale(domain [2]float64, start, end float64) *LinearScale {
	return &LinearScale{d0: domain[0], d1: domain[1], r0: start, r1: end}
}

// Span returns the pixel interval.
func (s *LinearScale) Span() (float64, float64) { return s.r0, s.r1 }

// Domain returns the numeric domain.
func (s *LinearScale) Domain() (float64, float64) { return s.d0, s.d1 }

// Map converts a domain value to a pixel. Values outside the domain
// extrapolate. A zero-width domain maps everything to the span start.
func (s *LinearScale) Map(v float64) float64 {
	if s.d1 == s.d0 {
		return s.r0
	}
	return s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}

// Invert converts a pixel back to a domain value.
func (s *LinearScale) Invert(px float64) float64 {
	if s.r1 == s.r0 {
		return s.d0
	}
	return s.d0 + (px-s.r0)/(s.r1-s.r0)*(s.d1-s.d0)
}

// Ticks returns domain values from the domain start to its end in steps of
// interval, both ends included. A non-positive interval means 1.
func (s *LinearScale) Ticks(interval float64) []float64 {
	if interval <= 0 {
		interval = 1
	}
	lo, hi := s.d0, s.d1
	if lo > hi {
		lo, hi = hi, lo
	}
	var ticks []float64
	const eps = 1e-9
	for i := 0; i < maxTicks; i++ {
		v := lo + float64(i)*interval
		if v > hi+eps {
			break
		}
		ticks = append(ticks, v)
	}
	return ticks
}

// BandScale partitions a pixel span into equal bands, one per key.
type BandScale struct {
	keys      []string
	index     map[string]int
	start     float64
	end       float64
	step      float64
	bandwidth float64
}

func newBandScale(keys []string, start, end float64) *BandScale {
	s := &BandScale{
		keys:  keys,
		index: make(map[string]int, len(keys)),
		start: start,
		end:   end,
	}
	for i, k := range keys {
		if _, dup := s.index[k]; !dup {
			s.index[k] = i
		}
	}
	if n := len(keys); n > 0 {
		s.step = (end - start) / float64(n)
		s.bandwidth = s.step * (1 - bandPadding)
	}
	return s
}

// Span returns the pixel interval.
func (s *BandScale) Span() (float64, float64) { return s.start, s.end }

// Keys returns the band keys in order.
func (s *BandScale) Keys() []string { return s.keys }

// Map returns the start pixel of key's band. Unknown keys return the span
// start and false.
func (s *BandScale) Map(key string) (float64, bool) {
	i, ok := s.index[key]
	if !ok {
		return s.start, false
	}
	return s.start + float64(i)*s.step + s.Padding()/2, true
}

// Bandwidth returns the drawable width of every band.
func (s *BandScale) Bandwidth() float64 { return s.bandwidth }

// Step returns the distance between consecutive band starts.
func (s *BandScale) Step() float64 { return s.step }

// Padding returns the empty space belonging to each band.
func (s *BandScale) Padding() float64 { return s.step - s.bandwidth }

// Lookup returns the key whose step contains px.
func (s *BandScale) Lookup(px float64) (string, bool) {
	if s.step == 0 || len(s.keys) == 0 {
		return "", false
	}
	i := int(math.Floor((px - s.start) / s.step))
	if i < 0 || i >= len(s.keys) {
		return "", false
	}
	return s.keys[i], true
}

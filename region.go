package calendar

// DefaultBaseWidth is the canvas width at which scale-mode regions draw
// elements at their configured size.
const DefaultBaseWidth = 1920

// Region is a named sub-rectangle of the canvas.
type Region struct {
	ID       string
	Type     RegionType
	SizeMode SizeMode

	// Allocated is the slot assigned along the layout direction, before
	// padding. Bounds is Allocated shrunk by Padding.
	Allocated Rect
	Bounds    Rect
	Padding   Insets
}

// RegionLayout partitions a canvas into fixed and flexible regions stacked
// along one direction.
type RegionLayout struct {
	cfg     LayoutConfig
	regions []Region
	index   map[string]int

	width, height float64
	baseWidth     float64
	baseHeight    float64
	scale         float64
}

// NewRegionLayout returns a layout for cfg. Call Calculate before reading
// region bounds.
func NewRegionLayout(cfg LayoutConfig) *RegionLayout {
	return &RegionLayout{
		cfg:       cfg,
		index:     make(map[string]int),
		baseWidth: DefaultBaseWidth,
		scale:     1,
	}
}

// Calculate recomputes every region for a canvas of the given size.
//
// Fixed regions receive their configured extent. The extent left after fixed
// regions and gaps is shared among flex regions by weight; the last flex
// region takes whatever is left so allocated extents plus gaps add up to the
// total. If fixed regions overflow the canvas, flex regions get zero.
func (l *RegionLayout) Calculate(width, height float64) {
	l.width, l.height = width, height
	l.scale = 1
	if l.baseWidth > 0 {
		l.scale = width / l.baseWidth
	}

	vertical := l.cfg.Direction != DirectionHorizontal
	total := width
	if vertical {
		total = height
	}

	n := len(l.cfg.Regions)
	gap := l.cfg.Gap
	if gap < 0 {
		gap = 0
	}

	// Pass 1: fixed extents, gaps and flex weights.
	var fixed, weights float64
	lastFlex := -1
	for i, rc := range l.cfg.Regions {
		if rc.Type == RegionFixed {
			fixed += fixedExtent(rc, vertical)
			continue
		}
		weights += flexWeight(rc)
		lastFlex = i
	}
	if n > 1 {
		fixed += gap * float64(n-1)
	}
	remaining := total - fixed
	if remaining < 0 {
		remaining = 0
	}

	// Pass 2: place regions at the running cursor.
	l.regions = l.regions[:0]
	clear(l.index)
	var cursor, flexUsed float64
	for i, rc := range l.cfg.Regions {
		var extent float64
		switch {
		case rc.Type == RegionFixed:
			extent = fixedExtent(rc, vertical)
		case i == lastFlex:
			extent = remaining - flexUsed
		default:
			extent = remaining * flexWeight(rc) / weights
			flexUsed += extent
		}

		slot := Rect{X: cursor, Width: extent, Height: height}
		if vertical {
			slot = Rect{Y: cursor, Width: width, Height: extent}
		}
		l.index[rc.ID] = len(l.regions)
		l.regions = append(l.regions, Region{
			ID:        rc.ID,
			Type:      rc.Type,
			SizeMode:  rc.SizeMode,
			Allocated: slot,
			Bounds:    slot.Inset(rc.Padding),
			Padding:   rc.Padding,
		})
		cursor += extent + gap
	}
}

func fixedExtent(rc RegionConfig, vertical bool) float64 {
	if vertical {
		return rc.FixedHeight
	}
	return rc.FixedWidth
}

func flexWeight(rc RegionConfig) float64 {
	if rc.FlexGrow <= 0 {
		return 1
	}
	return rc.FlexGrow
}

// Region returns the region with the given id.
func (l *RegionLayout) Region(id string) (Region, bool) {
	i, ok := l.index[id]
	if !ok {
		return Region{}, false
	}
	return l.regions[i], true
}

// Regions returns all regions in declared order.
func (l *RegionLayout) Regions() []Region {
	out := make([]Region, len(l.regions))
	copy(out, l.regions)
	return out
}

// GlobalToRegion converts canvas coordinates to the region's local frame.
func (l *RegionLayout) GlobalToRegion(id string, x, y float64) (Vec2, bool) {
	r, ok := l.Region(id)
	if !ok {
		return Vec2{}, false
	}
	return Vec2{X: x - r.Bounds.X, Y: y - r.Bounds.Y}, true
}

// RegionToGlobal converts region-local coordinates to canvas coordinates.
func (l *RegionLayout) RegionToGlobal(id string, x, y float64) (Vec2, bool) {
	r, ok := l.Region(id)
	if !ok {
		return Vec2{}, false
	}
	return Vec2{X: x + r.Bounds.X, Y: y + r.Bounds.Y}, true
}

// ContainsPoint reports whether (x, y) lies in the region's bounds, edges
// included. Unknown regions contain nothing.
func (l *RegionLayout) ContainsPoint(id string, x, y float64) bool {
	r, ok := l.Region(id)
	return ok && r.Bounds.Contains(x, y)
}

// ScaleSize returns the size an element of the given original size should
// have in region id. Unknown regions pass the size through.
func (l *RegionLayout) ScaleSize(id string, w, h float64) Size {
	if r, ok := l.Region(id); ok && r.SizeMode == SizeScale {
		return Size{Width: w * l.scale, Height: h * l.scale}
	}
	return Size{Width: w, Height: h}
}

// ScaleFontSize is ScaleSize for a font size.
func (l *RegionLayout) ScaleFontSize(id string, size float64) float64 {
	if r, ok := l.Region(id); ok && r.SizeMode == SizeScale {
		return size * l.scale
	}
	return size
}

// Scale returns canvas width divided by the base width.
func (l *RegionLayout) Scale() float64 { return l.scale }

// Size returns the canvas size of the last Calculate call.
func (l *RegionLayout) Size() Size { return Size{Width: l.width, Height: l.height} }

// SetBaseSize changes the reference size used by scale-mode regions and
// recalculates. Only the width participates in scaling.
func (l *RegionLayout) SetBaseSize(width, height float64) {
	l.baseWidth, l.baseHeight = width, height
	l.Calculate(l.width, l.height)
}

// UpdateConfig swaps the layout configuration and recalculates.
func (l *RegionLayout) UpdateConfig(cfg LayoutConfig) {
	l.cfg = cfg
	l.Calculate(l.width, l.height)
}

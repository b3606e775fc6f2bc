package calendar

// View is a parsed ViewConfig: typed axes plus the event layout policy.
type View struct {
	Key         string
	Name        string
	Description string
	X, Y        Axis

	MinEventHeight float64
	MaxLayers      int
	// Overlap is the configured overlap strategy. Layout does not apply it;
	// events sharing a cell are drawn on top of each other.
	Overlap OverlapStrategy

	// Styles holds the per-view overrides, or nil.
	Styles *StyleConfig
}

// NewView parses vc into a View.
func NewView(key string, vc ViewConfig) *View {
	v := &View{
		Key:            key,
		Name:           vc.Name,
		Description:    vc.Description,
		X:              ParseAxis(vc.XAxis),
		Y:              ParseAxis(vc.YAxis),
		MinEventHeight: vc.Layout.MinEventHeight,
		MaxLayers:      vc.Layout.MaxLayers,
		Overlap:        vc.Layout.OverlapStrategy,
	}
	if vc.Styles != nil {
		s := *vc.Styles
		v.Styles = &s
	}
	if v.Name == "" {
		v.Name = key
	}
	return v
}

// Package calendar renders configurable calendar views onto a 2D canvas with
// [Ebitengine].
//
// A [Config] describes views as pairs of axes (hours of the day, days of the
// week, users, weeks of the month), a theme, header buttons and a region
// layout. It is usually read with [Load], which layers a YAML or JSON file
// and CALENDAR_* environment variables over [DefaultConfig].
//
// The pieces can be used on their own:
//
//   - [NewScale] maps axis domains to pixels.
//   - [EventLayout] turns events into rectangles for a view.
//   - [RegionLayout] splits the window into fixed and flex regions.
//   - [WidgetManager] hosts buttons and labels above the calendar.
//   - [Calendar] draws a view onto a [Canvas] and resolves hover and clicks.
//
// [App] ties them together as an [ebiten.Game]:
//
//	cfg, err := calendar.Load("views.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fonts, _ := calendar.DefaultFontSet()
//	app, err := calendar.NewApp(calendar.NewImageCanvas(fonts), cfg, calendar.AppOptions{
//		Events: events,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	log.Fatal(calendar.Run(app, calendar.RunConfig{Width: 1280, Height: 800}))
//
// # Input
//
// Clicks on a view button switch views. Clicking an event selects it,
// Delete or Backspace removes it, Escape clears the selection and Ctrl+D
// outlines the regions. Double-clicking empty space on a view with an
// hours axis creates a one hour event.
//
// Input can be scripted: [App.InjectClick] and friends queue synthetic
// pointer events consumed one per frame, and [LoadScript] reads a JSON list
// of steps that ends in PNG screenshots.
//
// [Ebitengine]: https://ebitengine.org
package calendar

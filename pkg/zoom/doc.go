// Package zoom implements the click-to-zoom interaction over a packed
// hierarchy.
//
// A [Controller] owns the interaction state: the focus item, the current
// viewport, the active transition and the display state of every label.
// Nothing is global, so several controllers can coexist (one per chart).
//
// Time is supplied by the caller. [Controller.Frame] is a pure function of the
// controller state and the given instant, which lets a browser drive it from
// requestAnimationFrame and a command-line renderer sample a single settled
// frame:
//
//	ctl := zoom.New(tree, layout, zoom.Options{})
//	ctl.Click(item.Index, now)
//	frame := ctl.Frame(now.Add(zoom.DefaultDuration))
//
// A click that arrives while a transition is running starts the next
// transition from the interpolated viewport and label opacities at that
// instant, so the view never jumps.
package zoom

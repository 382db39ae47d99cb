package pipeline

import (
	"time"

	"github.com/matzehuels/packview/pkg/errors"
	"github.com/matzehuels/packview/pkg/hierarchy"
	"github.com/matzehuels/packview/pkg/pack"
	"github.com/matzehuels/packview/pkg/zoom"
)

// Settle returns the frame shown once the zoom to focus has finished. An
// empty focus returns the initial root frame. Leaves cannot be focused.
func Settle(t *hierarchy.Tree, l *pack.Layout, focus string) (zoom.Frame, error) {
	ctl := zoom.New(t, l, zoom.Options{})
	var start time.Time
	if focus == "" {
		return ctl.Frame(start), nil
	}

	it, ok := t.Find(focus)
	if !ok {
		return zoom.Frame{}, errors.New(errors.ErrCodeNodeNotFound, "no node named %q", focus)
	}
	if it.IsLeaf() {
		return zoom.Frame{}, errors.New(errors.ErrCodeInvalidInput, "%q is a leaf and cannot be focused", focus)
	}
	ctl.Click(it.Index, start)
	return ctl.Frame(start.Add(zoom.DefaultDuration)), nil
}

package pipeline

import (
	"bytes"
	"context"
	"os"

	"github.com/matzehuels/packview/pkg/errors"
	"github.com/matzehuels/packview/pkg/hierarchy"
)

// Load reads the data named by opts and builds the hierarchy. It returns the
// raw bytes alongside the tree so callers can hash them.
func Load(ctx context.Context, opts Options) (*hierarchy.Tree, []byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	data := opts.Data
	if data == nil {
		var err error
		data, err = os.ReadFile(opts.DataPath)
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "data file %s not found", opts.DataPath)
		}
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", opts.DataPath)
		}
	}

	root, err := hierarchy.ReadJSON(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	t, err := hierarchy.New(root)
	if err != nil {
		return nil, nil, err
	}
	return t, data, nil
}

package gocbs

import (
	"os"

	"github.com/thebagchi/go-cbs/lib/cbs"
	_ "github.com/thebagchi/go-cbs/lib/cbs/mpeg2"
	_ "github.com/thebagchi/go-cbs/lib/cbs/vp9"
)

// Parse reads filename whole, then splits and decodes it as a fragment
// of the given codec. The returned Context is the one the fragment was
// decoded with, ready for a caller to SetTrace, inspect units, edit
// them, and write the fragment back out.
func Parse(codecID cbs.CodecID, logger cbs.Logger, filename string) (*cbs.Context, *cbs.Fragment, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, err
	}
	ctx, err := cbs.Init(codecID, logger)
	if err != nil {
		return nil, nil, err
	}
	frag := &cbs.Fragment{}
	if err := ctx.Read(frag, data); err != nil {
		return ctx, frag, err
	}
	return ctx, frag, nil
}

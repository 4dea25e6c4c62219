package vp9

import (
	"github.com/thebagchi/go-cbs/lib/bitcodec"
	"github.com/thebagchi/go-cbs/lib/cbs"
)

// tileColsLog2Bounds computes the legal [min,max] range for
// tile_cols_log2 from the frame's superblock-column count: min is the
// smallest k with 64<<k >= sb64Cols, max is the largest k with
// sb64Cols>>k >= 4 (0 when no k qualifies).
func tileColsLog2Bounds(sb64Cols uint16) (min, max int) {
	for maxTileWidthB64<<min < int(sb64Cols) {
		min++
	}
	for int(sb64Cols)>>(max+1) >= minTileWidthB64 {
		max++
	}
	return min, max
}

func tileInfo(ctx *cbs.Context, r *bitcodec.Reader, h *RawFrameHeader) error {
	minLog2, maxLog2 := tileColsLog2Bounds(priv(ctx).SB64Cols)

	tileColsLog2 := minLog2
	for tileColsLog2 < maxLog2 {
		increment, err := r.U(1, "increment_tile_cols_log2", 0, 1)
		if err != nil {
			return err
		}
		if increment != 1 {
			break
		}
		tileColsLog2++
	}
	h.TileColsLog2 = uint32(tileColsLog2)

	tileRowsLog2, err := r.U(1, "tile_rows_log2", 0, 1)
	if err != nil {
		return err
	}
	increment := uint32(0)
	if tileRowsLog2 == 1 {
		if increment, err = r.U(1, "increment_tile_rows_log2", 0, 1); err != nil {
			return err
		}
	}
	h.TileRowsLog2 = tileRowsLog2 + increment
	return nil
}

func writeTileInfo(ctx *cbs.Context, w *bitcodec.Writer, h *RawFrameHeader) error {
	minLog2, maxLog2 := tileColsLog2Bounds(priv(ctx).SB64Cols)

	tileColsLog2 := minLog2
	for tileColsLog2 < maxLog2 {
		increment := uint32(0)
		if tileColsLog2 < int(h.TileColsLog2) {
			increment = 1
		}
		if err := w.WriteU(1, "increment_tile_cols_log2", increment, 0, 1); err != nil {
			return err
		}
		if increment != 1 {
			break
		}
		tileColsLog2++
	}

	// tile_rows_log2 is written as a base bit plus an optional increment
	// bit; any value above 1 can only be reached via the increment, so
	// the base bit is 1 whenever the target is nonzero.
	base := uint32(0)
	if h.TileRowsLog2 > 0 {
		base = 1
	}
	if err := w.WriteU(1, "tile_rows_log2", base, 0, 1); err != nil {
		return err
	}
	if base == 1 {
		increment := uint32(0)
		if h.TileRowsLog2 > 1 {
			increment = 1
		}
		return w.WriteU(1, "increment_tile_rows_log2", increment, 0, 1)
	}
	return nil
}

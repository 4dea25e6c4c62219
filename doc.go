// Package gocbs is a small convenience façade over lib/cbs: given a raw
// bitstream file and a codec identifier, it builds a Context, splits
// and decodes the fragment, and hands back both so a caller can inspect
// or re-encode units without wiring the driver up by hand.
//
// The codec plug-ins (lib/cbs/mpeg2, lib/cbs/vp9) register themselves
// on import, so this package imports both for side effect; a caller
// linking only this package gets every codec CodecID this module ships,
// not just the one it asks Parse for.
package gocbs

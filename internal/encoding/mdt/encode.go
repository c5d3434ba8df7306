// Package mdt serializes pull plans into the addon's import string format
// and back: a canonical Lua table literal, raw-DEFLATE compressed, mapped
// onto a printable alphabet behind a one-character format header.
//
// The three layers are each exactly invertible, so Decode(Encode(p))
// reproduces p for every well-formed plan, including the empty one. That
// round trip is the package's contract; whether the downstream addon
// accepts the string is the addon's side of the wire format.
package mdt

import (
	"bytes"
	"compress/flate"
	"fmt"

	"github.com/veyra/wcl2mdt/internal/domain/model"
)

// header marks the current export format: DEFLATE-compressed table text in
// printable encoding. A future format bumps the header, not the alphabet.
const header = "!"

// Encode produces the importable export string for a plan. Serialization
// cannot fail on a well-formed plan; compression errors are fatal and yield
// no partial output. Encoding the same plan twice yields byte-identical
// strings: the serialized text is canonical and the compressor runs with
// fixed settings.
func Encode(p model.PullPlan) (string, error) {
	text := serialize(p)

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if _, err := w.Write([]byte(text)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}

	return header + encodeForPrint(buf.Bytes()), nil
}

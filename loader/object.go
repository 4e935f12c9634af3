// Package loader reads LC-3 object files: a header-less sequence of
// big-endian 16-bit words, word 0 being the load origin and the rest
// being the program image to place starting there.
package loader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrTruncated is returned when the object file ends mid-word (an odd
// number of bytes) or contains no origin word at all.
var ErrTruncated = errors.New("loader: truncated object file")

// Image is a loaded LC-3 program: the address execution (and loading)
// starts at, and the words to place there.
type Image struct {
	// Origin is the address the first word of Words is loaded at, and
	// the initial value of PC.
	Origin uint16

	// Words is the program image, in load order.
	Words []uint16
}

// Load reads r as an LC-3 object file: the first big-endian word is the
// origin, subsequent big-endian words are the program image. End of
// stream on a word boundary is success; end of stream mid-word is
// ErrTruncated.
func Load(r io.Reader) (*Image, error) {
	var origin uint16
	if err := binary.Read(r, binary.BigEndian, &origin); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrTruncated)
		}
		return nil, fmt.Errorf("%w: reading origin: %w", ErrTruncated, err)
	}

	var words []uint16
	for {
		var word uint16
		err := binary.Read(r, binary.BigEndian, &word)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTruncated, err)
		}
		words = append(words, word)
	}

	return &Image{Origin: origin, Words: words}, nil
}

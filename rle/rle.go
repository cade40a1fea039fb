// Package rle implements run-length encoding over a byte stream, with each
// run's count packed through the varsize encoding to keep short runs cheap.
package rle

import "github.com/JoyousOne/simple-file-compressor/internal/varsize"

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "rle: " + string(e) }

// ErrEmptyInput reports that Encode was called with no bytes to encode.
var ErrEmptyInput error = Error("empty input")

// Encode returns the run-length encoding of input: a sequence of
// (byte, varsize-count) pairs, one per maximal run of identical bytes.
func Encode(input []byte) ([]byte, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	type run struct {
		b     byte
		count int
	}
	runs := []run{{input[0], 1}}
	for i := 1; i < len(input); i++ {
		if input[i] == input[i-1] {
			runs[len(runs)-1].count++
		} else {
			runs = append(runs, run{input[i], 1})
		}
	}

	var out []byte
	for _, r := range runs {
		out = append(out, r.b)
		out = append(out, varsize.Encode(uint64(r.count))...)
	}
	return out, nil
}

// Decode reverses Encode, expanding each (byte, varsize-count) pair back
// into its run.
func Decode(input []byte) ([]byte, error) {
	var decoded []byte

	i := 0
	for i < len(input) {
		b := input[i]
		count, consumed, err := varsize.DecodeFirst(input[i+1:])
		if err != nil {
			return nil, err
		}
		for n := uint64(0); n < count; n++ {
			decoded = append(decoded, b)
		}
		i += consumed + 1
	}
	return decoded, nil
}

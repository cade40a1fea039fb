// Package lzw implements Lempel-Ziv-Welch coding with a dictionary seeded
// from the distinct bytes of the input, in first-appearance order, so the
// decoder can rebuild the same seed from a shipped alphabet list.
package lzw

import "github.com/JoyousOne/simple-file-compressor/internal/varsize"

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "lzw: " + string(e) }

// ErrInvalidIndex reports a decoded index strictly greater than the current
// dictionary size (the only valid cases are an existing entry, or the
// KwK case of exactly one past the last entry).
var ErrInvalidIndex error = Error("invalid lzw index")

// uniqueBytes returns the distinct bytes of input in first-appearance order.
func uniqueBytes(input []byte) []byte {
	var seen [256]bool
	var out []byte
	for _, b := range input {
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	return out
}

// Encode returns the single-byte alphabet (in first-appearance order) and
// the sequence of dictionary indices describing input.
func Encode(input []byte) (singleChars []byte, indices []int) {
	singleChars = uniqueBytes(input)

	dict := make(map[string]int, len(singleChars))
	var table [][]byte
	for _, b := range singleChars {
		dict[string([]byte{b})] = len(table)
		table = append(table, []byte{b})
	}

	if len(input) == 0 {
		return singleChars, nil
	}

	w := []byte{input[0]}
	for i := 1; i < len(input); i++ {
		c := input[i]
		wc := append(append([]byte{}, w...), c)
		if _, ok := dict[string(wc)]; ok {
			w = wc
			continue
		}
		indices = append(indices, dict[string(w)])
		dict[string(wc)] = len(table)
		table = append(table, wc)
		w = []byte{c}
	}
	indices = append(indices, dict[string(w)])
	return singleChars, indices
}

// Decode reverses Encode given the shipped single-byte alphabet and index
// stream.
func Decode(singleChars []byte, indices []int) ([]byte, error) {
	var table [][]byte
	for _, b := range singleChars {
		table = append(table, []byte{b})
	}

	var decoded []byte
	var prev []byte
	for _, k := range indices {
		var entry []byte
		switch {
		case k < len(table):
			entry = table[k]
		case k == len(table):
			if len(prev) == 0 {
				return nil, ErrInvalidIndex
			}
			entry = append(append([]byte{}, prev...), prev[0])
		default:
			return nil, ErrInvalidIndex
		}

		decoded = append(decoded, entry...)

		if len(prev) > 0 {
			table = append(table, append(append([]byte{}, prev...), entry[0]))
		}
		prev = entry
	}
	return decoded, nil
}

// EncodeFrame returns the full self-describing frame:
// varsize(|single_chars|) ‖ single_chars ‖ varsize_stream(indices).
func EncodeFrame(input []byte) []byte {
	singleChars, indices := Encode(input)

	var out []byte
	out = append(out, varsize.Encode(uint64(len(singleChars)))...)
	out = append(out, singleChars...)
	for _, idx := range indices {
		out = append(out, varsize.Encode(uint64(idx))...)
	}
	return out
}

// DecodeFrame reverses EncodeFrame.
func DecodeFrame(input []byte) ([]byte, error) {
	n, consumed, err := varsize.DecodeFirst(input)
	if err != nil {
		return nil, err
	}
	input = input[consumed:]
	if uint64(len(input)) < n {
		return nil, Error("truncated single-char alphabet")
	}
	singleChars := input[:n]
	input = input[n:]

	values, err := varsize.DecodeStream(input)
	if err != nil {
		return nil, err
	}
	indices := make([]int, len(values))
	for i, v := range values {
		indices[i] = int(v)
	}

	return Decode(singleChars, indices)
}

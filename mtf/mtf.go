// Package mtf implements the move-to-front transform: each byte is replaced
// by its position in a recency list, and that list is then promoted so the
// byte is first, clustering repeated bytes toward zero for a following
// entropy coder.
package mtf

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "mtf: " + string(e) }

// ErrInvalidAlphabet reports a decoded index at or beyond the size of the
// recency list (the closed alphabet of 255 symbols), meaning the shipped
// stream does not correspond to a valid move-to-front encoding.
var ErrInvalidAlphabet error = Error("mtf index >= alphabet size")

// alphabet is the initial recency list, symbols 0..254. Symbol 255 is
// never produced by this list, so an input or encoded stream containing it
// is rejected with ErrInvalidAlphabet rather than silently corrupted; this
// mirrors a documented quirk of the reference implementation, bounded so it
// fails rather than crashes or round-trips incorrectly.
func alphabet() []byte {
	a := make([]byte, 255)
	for i := range a {
		a[i] = byte(i)
	}
	return a
}

// Encode returns the move-to-front encoding of input. It returns
// ErrInvalidAlphabet if input contains byte 255, which the 0..254 recency
// list has no position for, rather than running off the end of the list.
func Encode(input []byte) ([]byte, error) {
	symbols := alphabet()
	encoded := make([]byte, 0, len(input))

	for _, c := range input {
		index := 0
		for index < len(symbols) && symbols[index] != c {
			index++
		}
		if index >= len(symbols) {
			return nil, ErrInvalidAlphabet
		}
		encoded = append(encoded, byte(index))

		if index == 0 {
			continue
		}
		for i := index; i >= 1; i-- {
			symbols[i] = symbols[i-1]
		}
		symbols[0] = c
	}
	return encoded, nil
}

// Decode reverses Encode. It returns ErrInvalidAlphabet if any index is
// outside the bounds of the recency list, rather than panicking.
func Decode(encoded []byte) ([]byte, error) {
	symbols := alphabet()
	decoded := make([]byte, 0, len(encoded))

	for _, index := range encoded {
		if int(index) >= len(symbols) {
			return nil, ErrInvalidAlphabet
		}
		symbol := symbols[index]
		decoded = append(decoded, symbol)

		if index == 0 {
			continue
		}
		for i := int(index); i >= 1; i-- {
			symbols[i] = symbols[i-1]
		}
		symbols[0] = symbol
	}
	return decoded, nil
}

// Package bwt implements the Burrows-Wheeler transform and its inverse.
// The forward transform is built from a suffix array computed in O(n) by
// the SA-IS algorithm (package sais), rather than the naive repeated
// rotation-sort; the inverse uses the standard LF-mapping reconstruction.
package bwt

import "github.com/JoyousOne/simple-file-compressor/bwt/internal/sais"

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "bwt: " + string(e) }

// ErrEmptyInput reports that Encode was called with no bytes to transform.
var ErrEmptyInput error = Error("empty input")

// Encode returns the row index of the original string within the sorted
// rotation matrix, and the transformed bytes (the matrix's last column).
func Encode(input []byte) (index int, transformed []byte, err error) {
	if len(input) == 0 {
		return 0, nil, ErrEmptyInput
	}

	n := len(input)
	doubled := make([]byte, 2*n)
	copy(doubled, input)
	copy(doubled[n:], input)

	t := make([]int, 2*n)
	for i, b := range doubled {
		t[i] = int(b)
	}
	sa := make([]int, 2*n)
	sais.ComputeSA(t, sa)

	transformed = make([]byte, n)
	j := 0
	for _, i := range sa {
		if i < n {
			if i == 0 {
				index = j
				i = n
			}
			transformed[j] = doubled[i-1]
			j++
		}
	}
	return index, transformed, nil
}

// Decode reverses Encode given the row index produced alongside transformed.
func Decode(index int, transformed []byte) ([]byte, error) {
	if len(transformed) == 0 {
		return nil, nil
	}
	if index < 0 || index >= len(transformed) {
		return nil, Error("row index out of range")
	}

	var counts [256]int
	for _, b := range transformed {
		counts[b]++
	}

	var sum int
	for i, c := range counts {
		sum += c
		counts[i] = sum - c
	}

	next := make([]int, len(transformed))
	for i, b := range transformed {
		next[counts[b]] = i
		counts[b]++
	}

	out := make([]byte, len(transformed))
	pos := next[index]
	for i := range out {
		out[i] = transformed[pos]
		pos = next[pos]
	}
	return out, nil
}

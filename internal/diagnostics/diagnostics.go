// Package diagnostics provides test- and tool-facing measurements that sit
// outside the core codecs: Shannon entropy of a byte distribution, the
// compression-ratio/space-saving figures a CLI reports, and reference
// encoders so a pipeline's output can be checked against established
// general-purpose codecs.
package diagnostics

import (
	"bytes"
	"math"

	"github.com/klauspost/compress/flate"
	"github.com/ulikunitz/xz"
)

// Entropy returns the zero-order Shannon entropy, in bits per symbol, of
// values's byte distribution.
func Entropy(values []byte) float64 {
	if len(values) == 0 {
		return 0
	}

	var freq [256]int
	for _, b := range values {
		freq[b]++
	}

	total := float64(len(values))
	var entropy float64
	for _, n := range freq {
		if n == 0 {
			continue
		}
		p := float64(n) / total
		entropy += p * math.Log2(p)
	}
	return -entropy
}

// Ratio reports the Wikipedia-style compression ratio and space saving
// (https://en.wikipedia.org/wiki/Data_compression_ratio) between an
// original size and its compressed size.
type Ratio struct {
	UncompressedSize int
	CompressedSize   int
}

// CompressionRatio returns UncompressedSize / CompressedSize, or 0 if
// UncompressedSize is 0 (there is nothing to express a ratio over).
func (r Ratio) CompressionRatio() float64 {
	if r.UncompressedSize == 0 {
		return 0
	}
	return float64(r.UncompressedSize) / float64(r.CompressedSize)
}

// SpaceSaving returns the fraction of size eliminated by compression, in
// the range [0, 1) for a size-reducing codec, or 0 if UncompressedSize is 0.
func (r Ratio) SpaceSaving() float64 {
	if r.UncompressedSize == 0 {
		return 0
	}
	return 1 - float64(r.CompressedSize)/float64(r.UncompressedSize)
}

// ReferenceCodec is a general-purpose byte-stream codec used only as a
// comparison point for the pipeline's own output size; it plays no part in
// the pipeline itself.
type ReferenceCodec struct {
	Name   string
	Encode func(data []byte) ([]byte, error)
}

// ReferenceCodecs lists the comparison codecs available for benchmarking
// pipeline output, each identified by its Name.
var ReferenceCodecs = []ReferenceCodec{
	{Name: "flate", Encode: encodeFlate},
	{Name: "xz", Encode: encodeXZ},
}

func encodeFlate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeXZ(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CompareAgainstReferences runs every ReferenceCodec over data and returns
// the resulting Ratio for each, keyed by codec name, alongside the byte
// stream's own entropy.
func CompareAgainstReferences(data []byte) (entropy float64, ratios map[string]Ratio, err error) {
	entropy = Entropy(data)
	ratios = make(map[string]Ratio, len(ReferenceCodecs))
	for _, c := range ReferenceCodecs {
		compressed, cerr := c.Encode(data)
		if cerr != nil {
			return entropy, nil, cerr
		}
		ratios[c.Name] = Ratio{UncompressedSize: len(data), CompressedSize: len(compressed)}
	}
	return entropy, ratios, nil
}

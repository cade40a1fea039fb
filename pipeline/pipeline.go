// Package pipeline composes the six codec packages into a user-chosen,
// ordered compression pipeline, threading bytes through each stage's
// self-describing frame and inverting the list on decompression.
package pipeline

import (
	"fmt"

	"github.com/JoyousOne/simple-file-compressor/arith"
	"github.com/JoyousOne/simple-file-compressor/bwt"
	"github.com/JoyousOne/simple-file-compressor/huffman"
	"github.com/JoyousOne/simple-file-compressor/internal/varsize"
	"github.com/JoyousOne/simple-file-compressor/lzw"
	"github.com/JoyousOne/simple-file-compressor/mtf"
	"github.com/JoyousOne/simple-file-compressor/rle"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "pipeline: " + string(e) }

// ErrUnknownStage reports a stage name outside the closed set.
var ErrUnknownStage error = Error("unknown pipeline stage")

// DefaultStages is applied when Compress/Decompress are given no stage
// list: LZW first, then Huffman on the LZW bytes.
var DefaultStages = []string{"lzw", "huff"}

// StageError wraps a failure produced by one stage, identifying both its
// name and its position in the pipeline so a caller can tell which half of
// a mismatched compress/decompress pair is at fault.
type StageError struct {
	Index int
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline: stage %d (%s): %v", e.Index, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// stage is the capability every codec package exposes to the driver.
type stage struct {
	encode func([]byte) ([]byte, error)
	decode func([]byte) ([]byte, error)
}

func lookupStage(name string) (stage, error) {
	switch name {
	case "huff":
		return stage{encode: huffman.EncodeFrame, decode: huffman.DecodeFrame}, nil
	case "lzw":
		return stage{
			encode: func(b []byte) ([]byte, error) { return lzw.EncodeFrame(b), nil },
			decode: lzw.DecodeFrame,
		}, nil
	case "bwt":
		return stage{encode: bwtEncodeFrame, decode: bwtDecodeFrame}, nil
	case "mtf":
		return stage{encode: mtf.Encode, decode: mtf.Decode}, nil
	case "arith":
		return stage{encode: arith.EncodeFrame, decode: arith.DecodeFrame}, nil
	case "rle":
		return stage{encode: rle.Encode, decode: rle.Decode}, nil
	default:
		return stage{}, ErrUnknownStage
	}
}

// validate checks every stage name up front so an UnknownStage failure
// happens before any codec runs.
func validate(stages []string) ([]stage, error) {
	resolved := make([]stage, len(stages))
	for i, name := range stages {
		s, err := lookupStage(name)
		if err != nil {
			return nil, err
		}
		resolved[i] = s
	}
	return resolved, nil
}

func stageNames(stages []string) []string {
	if len(stages) == 0 {
		return DefaultStages
	}
	return stages
}

// Compress applies encode_frame of each named stage in order, feeding each
// stage's output as the next stage's input. An empty stages list uses
// DefaultStages.
func Compress(stages []string, data []byte) ([]byte, error) {
	names := stageNames(stages)
	resolved, err := validate(names)
	if err != nil {
		return nil, err
	}

	out := data
	for i, s := range resolved {
		out, err = s.encode(out)
		if err != nil {
			return nil, &StageError{Index: i, Stage: names[i], Err: err}
		}
	}
	return out, nil
}

// Decompress applies decode_frame of each named stage in reverse order. An
// empty stages list uses DefaultStages.
func Decompress(stages []string, data []byte) ([]byte, error) {
	names := stageNames(stages)
	resolved, err := validate(names)
	if err != nil {
		return nil, err
	}

	out := data
	for i := len(resolved) - 1; i >= 0; i-- {
		var derr error
		out, derr = resolved[i].decode(out)
		if derr != nil {
			return nil, &StageError{Index: i, Stage: names[i], Err: derr}
		}
	}
	return out, nil
}

// bwtEncodeFrame adapts bwt's (index, transformed) pair to the shared
// encode_frame(bytes) -> bytes signature: varsize(index) ‖ transformed.
func bwtEncodeFrame(input []byte) ([]byte, error) {
	index, transformed, err := bwt.Encode(input)
	if err != nil {
		return nil, err
	}
	out := append(varsize.Encode(uint64(index)), transformed...)
	return out, nil
}

func bwtDecodeFrame(input []byte) ([]byte, error) {
	index, consumed, err := varsize.DecodeFirst(input)
	if err != nil {
		return nil, err
	}
	return bwt.Decode(int(index), input[consumed:])
}

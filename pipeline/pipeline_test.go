package pipeline

import (
	"bytes"
	"strings"
	"testing"
)

func TestCompressDecompressDefault(t *testing.T) {
	in := []byte("the quick brown fox jumps over the lazy dog")
	compressed, err := Compress(nil, in)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	decompressed, err := Decompress(nil, compressed)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(decompressed, in) {
		t.Errorf("round trip = %q, want %q", decompressed, in)
	}
}

func TestPipelineIdempotence(t *testing.T) {
	stageLists := [][]string{
		{"rle"},
		{"mtf"},
		{"bwt"},
		{"huff"},
		{"lzw"},
		{"arith"},
		{"lzw", "huff"},
		{"bwt", "mtf", "huff"},
		{"rle", "bwt", "mtf", "huff"},
		{"bwt", "mtf", "rle", "huff"},
	}
	input := []byte(strings.Repeat("AAABBCCDACCAA", 20))

	for _, stages := range stageLists {
		compressed, err := Compress(stages, input)
		if err != nil {
			t.Fatalf("Compress(%v): %v", stages, err)
		}
		decompressed, err := Decompress(stages, compressed)
		if err != nil {
			t.Fatalf("Decompress(%v): %v", stages, err)
		}
		if !bytes.Equal(decompressed, input) {
			t.Errorf("stages %v: round trip mismatch", stages)
		}
	}
}

func TestBWTImprovesHuffmanCompression(t *testing.T) {
	input := []byte(strings.Repeat("AAABBCCDACCAA", 100))

	huffOnly, err := Compress([]string{"huff"}, input)
	if err != nil {
		t.Fatalf("Compress huff-only: %v", err)
	}
	bwtMtfHuff, err := Compress([]string{"bwt", "mtf", "huff"}, input)
	if err != nil {
		t.Fatalf("Compress bwt,mtf,huff: %v", err)
	}

	if len(bwtMtfHuff) >= len(huffOnly) {
		t.Errorf("bwt,mtf,huff output (%d bytes) not smaller than huff-only (%d bytes)",
			len(bwtMtfHuff), len(huffOnly))
	}

	decompressed, err := Decompress([]string{"bwt", "mtf", "huff"}, bwtMtfHuff)
	if err != nil {
		t.Fatalf("Decompress bwt,mtf,huff: %v", err)
	}
	if !bytes.Equal(decompressed, input) {
		t.Errorf("bwt,mtf,huff round trip mismatch")
	}
}

func TestUnknownStage(t *testing.T) {
	_, err := Compress([]string{"lzw", "zzz"}, []byte("hello"))
	if err != ErrUnknownStage {
		t.Errorf("Compress with unknown stage error = %v, want ErrUnknownStage", err)
	}

	_, err = Decompress([]string{"zzz"}, []byte("hello"))
	if err != ErrUnknownStage {
		t.Errorf("Decompress with unknown stage error = %v, want ErrUnknownStage", err)
	}
}

func TestUnknownStageValidatesBeforeRunning(t *testing.T) {
	// The second stage is invalid; no codec should run at all, so the first
	// (valid) stage's side effects are irrelevant to the reported error.
	_, err := Compress([]string{"huff", "nope"}, []byte("hello world"))
	if err != ErrUnknownStage {
		t.Errorf("error = %v, want ErrUnknownStage", err)
	}
}

func TestStageErrorReportsIndexAndStage(t *testing.T) {
	_, err := Compress([]string{"huff"}, nil)
	stageErr, ok := err.(*StageError)
	if !ok {
		t.Fatalf("error type = %T, want *StageError", err)
	}
	if stageErr.Index != 0 || stageErr.Stage != "huff" {
		t.Errorf("StageError = %+v, want Index 0, Stage huff", stageErr)
	}
}

func TestMultiStageAllCodecs(t *testing.T) {
	input := []byte("mississippi river runs through mississippi")
	stages := []string{"bwt", "mtf", "rle", "arith", "lzw", "huff"}

	compressed, err := Compress(stages, input)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	decompressed, err := Decompress(stages, compressed)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(decompressed, input) {
		t.Errorf("round trip = %q, want %q", decompressed, input)
	}
}

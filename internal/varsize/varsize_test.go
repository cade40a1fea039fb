package varsize

import (
	"bytes"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		n    uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{512, []byte{0x84, 0x00}},
		{1024, []byte{0x88, 0x00}},
		{99999, []byte{0x86, 0x8D, 0x1F}},
	}
	for _, tc := range tests {
		got := Encode(tc.n)
		if !bytes.Equal(got, tc.want) {
			t.Errorf("Encode(%d) = % x, want % x", tc.n, got, tc.want)
		}
	}
}

func TestDecodeFirstWithTail(t *testing.T) {
	tail := []byte{0xAB, 0xCD}
	for _, n := range []uint64{0, 1, 127, 128, 512, 1024, 99999, 1 << 20} {
		enc := Encode(n)
		buf := append(append([]byte{}, enc...), tail...)

		got, consumed, err := DecodeFirst(buf)
		if err != nil {
			t.Fatalf("DecodeFirst(%d ++ tail) returned error: %v", n, err)
		}
		if got != n || consumed != len(enc) {
			t.Errorf("DecodeFirst(%d ++ tail) = (%d, %d), want (%d, %d)", n, got, consumed, n, len(enc))
		}
	}
}

func TestDecodeStream(t *testing.T) {
	values := []uint64{0, 0, 1, 4, 2, 2, 6}
	var buf []byte
	for _, v := range values {
		buf = append(buf, Encode(v)...)
	}

	got, err := DecodeStream(buf)
	if err != nil {
		t.Fatalf("DecodeStream returned error: %v", err)
	}
	if diff := cmp.Diff(values, got); diff != "" {
		t.Errorf("DecodeStream mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeFirstMalformed(t *testing.T) {
	_, _, err := DecodeFirst([]byte{0x84, 0x80})
	if err != ErrMalformed {
		t.Errorf("DecodeFirst truncated sequence = %v, want ErrMalformed", err)
	}
	_, _, err = DecodeFirst(nil)
	if err != ErrMalformed {
		t.Errorf("DecodeFirst(nil) = %v, want ErrMalformed", err)
	}
}

func TestDecodeFirstMaxUint64RoundTrips(t *testing.T) {
	enc := Encode(math.MaxUint64)
	got, consumed, err := DecodeFirst(enc)
	if err != nil {
		t.Fatalf("DecodeFirst(MaxUint64 encoding) returned error: %v", err)
	}
	if got != math.MaxUint64 || consumed != len(enc) {
		t.Errorf("DecodeFirst(MaxUint64 encoding) = (%d, %d), want (%d, %d)",
			got, consumed, uint64(math.MaxUint64), len(enc))
	}
}

func TestDecodeFirstOverflow(t *testing.T) {
	// 11 continuation bytes followed by a terminator describe a value wider
	// than 64 bits; this must fail rather than silently wrap around.
	buf := bytes.Repeat([]byte{0xFF}, 11)
	buf = append(buf, 0x01)

	_, _, err := DecodeFirst(buf)
	if err != ErrMalformed {
		t.Errorf("DecodeFirst with an over-wide continuation run = %v, want ErrMalformed", err)
	}
}

func TestEncodeMinimalLength(t *testing.T) {
	// No encoding should carry a leading all-continuation zero digit: the
	// first byte's low 7 bits must be nonzero unless the whole value is 0.
	for _, n := range []uint64{1, 127, 128, 16384, 1 << 30} {
		enc := Encode(n)
		if len(enc) > 1 && enc[0]&0x7f == 0 {
			t.Errorf("Encode(%d) = % x has a leading zero digit", n, enc)
		}
	}
}

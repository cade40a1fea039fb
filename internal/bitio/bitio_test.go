package bitio

import (
	"bytes"
	"testing"
)

func TestWriterFacedExample(t *testing.T) {
	// f: 0, a: 1100, c: 100, e: 111, d: 101 -- encoding "faced"
	bits := []byte{
		0,
		1, 1, 0, 0,
		1, 0, 0,
		1, 1, 1,
		1, 0, 1,
	}

	w := NewWriter()
	w.PushBits(bits)

	want := []byte{0b0110_0100, 0b1111_0100}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("Bytes() = %08b, want %08b", w.Bytes(), want)
	}
	if w.Len() != len(bits) {
		t.Errorf("Len() = %d, want %d", w.Len(), len(bits))
	}
}

func TestWriterLenMultipleOfEight(t *testing.T) {
	// A bitstream landing exactly on a byte boundary must still report its
	// true length: after the 8th bit, nextBit wraps to 7 without a new
	// byte having been appended yet, which must not read back as 0 bits.
	for _, n := range []int{8, 16, 24} {
		w := NewWriter()
		for i := 0; i < n; i++ {
			w.PushBit(byte(i % 2))
		}
		if w.Len() != n {
			t.Errorf("Len() after pushing %d bits = %d, want %d", n, w.Len(), n)
		}
		if len(w.Bytes()) != n/8 {
			t.Errorf("Bytes() length after pushing %d bits = %d, want %d", n, len(w.Bytes()), n/8)
		}
	}
}

func TestReaderRoundTrip(t *testing.T) {
	bits := []byte{1, 0, 1, 1, 0, 0, 0, 1, 1, 1}
	w := NewWriter()
	w.PushBits(bits)

	r := NewReader(w.Bytes())
	for i, want := range bits {
		got, err := r.ReadBit()
		if err != nil {
			t.Fatalf("ReadBit() at %d: %v", i, err)
		}
		if got != want {
			t.Errorf("bit %d = %d, want %d", i, got, want)
		}
	}
}

func TestReaderReadPastEnd(t *testing.T) {
	r := NewReader([]byte{0xff})
	if _, err := r.ReadBits(9); err == nil {
		t.Errorf("ReadBits(9) over one byte should have failed")
	}
}

func TestQueueDeferredBits(t *testing.T) {
	q := &Queue{}
	q.Defer(3)
	got := q.Emit(0)
	want := []byte{0, 1, 1, 1}
	if !bytes.Equal(got, want) {
		t.Errorf("Emit(0) after Defer(3) = %v, want %v", got, want)
	}

	q.Defer(2)
	got = q.Emit(1)
	want = []byte{1, 0, 0}
	if !bytes.Equal(got, want) {
		t.Errorf("Emit(1) after Defer(2) = %v, want %v", got, want)
	}
}

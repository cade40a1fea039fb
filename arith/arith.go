// Package arith implements the classic Witten-Neal-Cleary integer
// arithmetic coder over a static, whole-message symbol frequency table.
// Precision scales with input size (num_bits = total_count * alphabet
// size) using math/big so the range never underflows, at the cost of
// widening the arbitrary-precision arithmetic as input grows.
package arith

import (
	"math/big"

	"github.com/JoyousOne/simple-file-compressor/internal/bitio"
	"github.com/JoyousOne/simple-file-compressor/internal/fenwick"
	"github.com/JoyousOne/simple-file-compressor/internal/varsize"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "arith: " + string(e) }

var (
	// ErrEmptyInput reports that EncodeFrame was called with no bytes.
	ErrEmptyInput error = Error("empty input")
	// ErrInvalidRange reports that the decoder's cumulative-frequency
	// search found no symbol for a scaled value, meaning the shipped
	// frequency table is inconsistent with the encoded stream.
	ErrInvalidRange error = Error("invalid arithmetic range")
)

// bounds holds the four fixed points of the WNC renormalization scheme for
// a given bit-precision.
type bounds struct {
	top, firstQuarter, half, thirdQuarter *big.Int
}

func newBounds(numBits uint) *bounds {
	top := new(big.Int).Lsh(big.NewInt(1), numBits)
	top.Sub(top, big.NewInt(1))

	firstQuarter := new(big.Int).Rsh(top, 2)
	firstQuarter.Add(firstQuarter, big.NewInt(1))

	half := new(big.Int).Mul(firstQuarter, big.NewInt(2))
	thirdQuarter := new(big.Int).Mul(firstQuarter, big.NewInt(3))

	return &bounds{top: top, firstQuarter: firstQuarter, half: half, thirdQuarter: thirdQuarter}
}

func sortedFrequencies(input []byte) []fenwick.Count {
	var counts [256]int
	for _, b := range input {
		counts[b]++
	}
	var freq []fenwick.Count
	for b := 0; b < 256; b++ {
		if counts[b] > 0 {
			freq = append(freq, fenwick.Count{Symbol: byte(b), Freq: counts[b]})
		}
	}
	return freq
}

// Encode returns the sorted symbol frequency table and the bit-packed
// arithmetic encoding of input, along with the number of meaningful bits
// in the final byte of the packed stream.
func Encode(input []byte) (freq []fenwick.Count, finalBitOffset int, packed []byte, err error) {
	if len(input) == 0 {
		return nil, 0, nil, ErrEmptyInput
	}

	freq = sortedFrequencies(input)
	tree := fenwick.New(freq)
	total := tree.Total()
	numBits := uint(total) * uint(tree.Len())

	b := newBounds(numBits)
	low := big.NewInt(0)
	high := new(big.Int).Set(b.top)

	var bits []byte
	bq := &bitio.Queue{}

	totalBig := big.NewInt(total)

	for _, s := range input {
		rng := new(big.Int).Sub(high, low)
		rng.Add(rng, big.NewInt(1))

		symLow, symHigh, ferr := tree.Bounds(s)
		if ferr != nil {
			return nil, 0, nil, Error("symbol missing from its own frequency table")
		}

		high = addDivMulSub(low, rng, big.NewInt(symHigh), totalBig)
		low = addDivMul(low, rng, big.NewInt(symLow), totalBig)

		for {
			switch {
			case high.Cmp(b.half) < 0:
				bits = append(bits, bq.Emit(0)...)
			case low.Cmp(b.half) >= 0:
				bits = append(bits, bq.Emit(1)...)
				low.Sub(low, b.half)
				high.Sub(high, b.half)
			case low.Cmp(b.firstQuarter) >= 0 && high.Cmp(b.thirdQuarter) < 0:
				low.Sub(low, b.firstQuarter)
				high.Sub(high, b.firstQuarter)
				bq.Defer(1)
			default:
				goto renormalized
			}
			low.Mul(low, big.NewInt(2))
			high.Mul(high, big.NewInt(2))
			high.Add(high, big.NewInt(1))
		}
	renormalized:
	}

	bq.Defer(1)
	var finalBit byte
	if low.Cmp(b.firstQuarter) > 0 {
		finalBit = 1
	}
	bits = append(bits, bq.Emit(finalBit)...)

	w := bitio.NewWriter()
	w.PushBits(bits)
	packed = w.Bytes()

	finalBitOffset = len(bits) - 8*(len(packed)-1)
	return freq, finalBitOffset, packed, nil
}

// addDivMul computes low + (rng*mul)/div without mutating its arguments.
func addDivMul(low, rng, mul, div *big.Int) *big.Int {
	t := new(big.Int).Mul(rng, mul)
	t.Div(t, div)
	return t.Add(t, low)
}

// addDivMulSub computes low + (rng*mul)/div - 1 without mutating its arguments.
func addDivMulSub(low, rng, mul, div *big.Int) *big.Int {
	t := addDivMul(low, rng, mul, div)
	return t.Sub(t, big.NewInt(1))
}

// paddedBits reads bits out of a packed byte stream up to totalValidBits,
// returning 0 for every bit requested beyond that point instead of erroring
// — the decoder's renormalization loop runs past the end of genuinely
// encoded bits and must zero-fill rather than fail.
type paddedBits struct {
	r              *bitio.Reader
	totalValidBits int
	read           int
}

func newPaddedBits(packed []byte, totalValidBits int) *paddedBits {
	return &paddedBits{r: bitio.NewReader(packed), totalValidBits: totalValidBits}
}

func (p *paddedBits) Next() byte {
	if p.read >= p.totalValidBits {
		return 0
	}
	p.read++
	bit, err := p.r.ReadBit()
	if err != nil {
		return 0
	}
	return bit
}

// Decode reverses Encode given the shipped frequency table, the final
// byte's meaningful bit count, and the packed bit stream.
func Decode(freq []fenwick.Count, finalBitOffset int, packed []byte) ([]byte, error) {
	if len(freq) == 0 {
		return nil, nil
	}

	tree := fenwick.New(freq)
	total := tree.Total()
	numBits := uint(total) * uint(tree.Len())

	b := newBounds(numBits)
	low := big.NewInt(0)
	high := new(big.Int).Set(b.top)
	totalBig := big.NewInt(total)

	totalValidBits := 0
	if len(packed) > 0 {
		totalValidBits = (len(packed)-1)*8 + finalBitOffset
	}
	src := newPaddedBits(packed, totalValidBits)

	value := big.NewInt(0)
	for i := uint(0); i < numBits; i++ {
		value.Lsh(value, 1)
		value.Add(value, big.NewInt(int64(src.Next())))
	}

	var decoded []byte
	one := big.NewInt(1)
	two := big.NewInt(2)

	for int64(len(decoded)) < total {
		rng := new(big.Int).Sub(high, low)
		rng.Add(rng, one)

		num := new(big.Int).Sub(value, low)
		num.Add(num, one)
		num.Mul(num, totalBig)
		num.Sub(num, one)
		scaled := new(big.Int).Div(num, rng)

		sym, ok := tree.Find(scaled.Int64())
		if !ok {
			return nil, ErrInvalidRange
		}
		decoded = append(decoded, sym)

		symLow, symHigh, _ := tree.Bounds(sym)
		high = addDivMulSub(low, rng, big.NewInt(symHigh), totalBig)
		low = addDivMul(low, rng, big.NewInt(symLow), totalBig)

		for {
			switch {
			case high.Cmp(b.half) < 0:
			case low.Cmp(b.half) >= 0:
				value.Sub(value, b.half)
				low.Sub(low, b.half)
				high.Sub(high, b.half)
			case low.Cmp(b.firstQuarter) >= 0 && high.Cmp(b.thirdQuarter) < 0:
				value.Sub(value, b.firstQuarter)
				low.Sub(low, b.firstQuarter)
				high.Sub(high, b.firstQuarter)
			default:
				goto renormalized
			}
			low.Mul(low, two)
			high.Mul(high, two)
			high.Add(high, one)
			value.Mul(value, two)
			value.Add(value, big.NewInt(int64(src.Next())))
		}
	renormalized:
	}

	return decoded, nil
}

// EncodeFrame returns the full self-describing frame:
// [final_bit_offset: 1 byte] ‖ varsize(frequency_block_length) ‖
// frequency_block ‖ packed_bits.
func EncodeFrame(input []byte) ([]byte, error) {
	freq, finalBitOffset, packed, err := Encode(input)
	if err != nil {
		return nil, err
	}

	var freqBlock []byte
	for _, c := range freq {
		freqBlock = append(freqBlock, c.Symbol)
		freqBlock = append(freqBlock, varsize.Encode(uint64(c.Freq))...)
	}

	var out []byte
	out = append(out, byte(finalBitOffset))
	out = append(out, varsize.Encode(uint64(len(freqBlock)))...)
	out = append(out, freqBlock...)
	out = append(out, packed...)
	return out, nil
}

// DecodeFrame reverses EncodeFrame.
func DecodeFrame(input []byte) ([]byte, error) {
	if len(input) < 1 {
		return nil, Error("truncated arithmetic frame")
	}
	finalBitOffset := int(input[0])
	input = input[1:]

	blockLen, consumed, err := varsize.DecodeFirst(input)
	if err != nil {
		return nil, err
	}
	input = input[consumed:]
	if uint64(len(input)) < blockLen {
		return nil, Error("truncated frequency block")
	}
	freqBlock := input[:blockLen]
	packed := input[blockLen:]

	var freq []fenwick.Count
	for len(freqBlock) > 0 {
		if len(freqBlock) < 2 {
			return nil, Error("truncated frequency block entry")
		}
		sym := freqBlock[0]
		count, n, err := varsize.DecodeFirst(freqBlock[1:])
		if err != nil {
			return nil, err
		}
		freq = append(freq, fenwick.Count{Symbol: sym, Freq: int(count)})
		freqBlock = freqBlock[1+n:]
	}

	return Decode(freq, finalBitOffset, packed)
}

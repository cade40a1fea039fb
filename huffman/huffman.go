// Package huffman implements Huffman coding with an explicit binary tree
// built over a priority queue of symbol frequencies, serialized on the wire
// as a preorder walk rather than as canonical code lengths.
package huffman

import (
	"container/heap"

	"github.com/JoyousOne/simple-file-compressor/internal/bitio"
	"github.com/JoyousOne/simple-file-compressor/internal/varsize"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "huffman: " + string(e) }

var (
	// ErrEmptyInput reports that EncodeFrame was called with no bytes.
	ErrEmptyInput error = Error("empty input")
	// ErrMalformedTree reports that tree bytes ended before completing the
	// structure, or an escape pair was malformed.
	ErrMalformedTree error = Error("malformed tree encoding")
)

const (
	internalSentinel = 0x00
	escapeByte        = 0xFF
)

// node is one vertex of the explicit Huffman tree. A leaf carries a byte
// value and has no children; an internal node has exactly two children and
// no byte value.
type node struct {
	freq        int
	isLeaf      bool
	symbol      byte
	left, right *node
}

// priority queue, ordered by ascending frequency with internal nodes
// preferred over leaves on a tie (matching the tree-shape stabilization
// rule the frame format depends on).
type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}
	// prefer internal (non-leaf) over leaf
	return !h[i].isLeaf && h[j].isLeaf
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)   { *h = append(*h, x.(*node)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Tree is an immutable Huffman tree with a precomputed symbol -> codeword
// table for encoding.
type Tree struct {
	root     *node
	encoding map[byte][]byte
}

// BuildTree constructs a Huffman tree from per-symbol byte frequencies
// counted over input.
func BuildTree(input []byte) *Tree {
	var counts [256]int
	for _, b := range input {
		counts[b]++
	}

	var freq []struct {
		b byte
		n int
	}
	for b := 0; b < 256; b++ {
		if counts[b] > 0 {
			freq = append(freq, struct {
				b byte
				n int
			}{byte(b), counts[b]})
		}
	}
	return buildFromFrequencies(freq)
}

func buildFromFrequencies(freq []struct {
	b byte
	n int
}) *Tree {
	h := make(nodeHeap, 0, len(freq))
	for _, f := range freq {
		h = append(h, &node{freq: f.n, isLeaf: true, symbol: f.b})
	}
	heap.Init(&h)

	for h.Len() > 1 {
		left := heap.Pop(&h).(*node)
		right := heap.Pop(&h).(*node)
		heap.Push(&h, &node{freq: left.freq + right.freq, left: left, right: right})
	}

	var root *node
	if h.Len() == 1 {
		root = heap.Pop(&h).(*node)
	}

	t := &Tree{root: root, encoding: make(map[byte][]byte)}
	t.setEncoding()
	return t
}

func (t *Tree) setEncoding() {
	if t.root == nil {
		return
	}
	var walk func(n *node, prefix []byte)
	walk = func(n *node, prefix []byte) {
		if n.isLeaf {
			cw := make([]byte, len(prefix))
			copy(cw, prefix)
			t.encoding[n.symbol] = cw
			return
		}
		if n.left != nil {
			walk(n.left, append(prefix, 0))
		}
		if n.right != nil {
			walk(n.right, append(prefix, 1))
		}
	}
	walk(t.root, nil)
}

// Len reports the number of nodes (internal plus leaf) in the tree.
func (t *Tree) Len() int {
	var count func(n *node) int
	count = func(n *node) int {
		if n == nil {
			return 0
		}
		return 1 + count(n.left) + count(n.right)
	}
	return count(t.root)
}

// Serialize returns the preorder tree encoding described by the wire
// format: 0x00 for an internal node, the byte verbatim for a leaf, except a
// leaf carrying 0x00 which is escaped as 0xFF 0xFF.
func (t *Tree) Serialize() []byte {
	var out []byte
	var walk func(n *node)
	walk = func(n *node) {
		if n == nil {
			return
		}
		if n.isLeaf {
			if n.symbol == 0x00 {
				out = append(out, escapeByte, escapeByte)
			} else {
				out = append(out, n.symbol)
			}
		} else {
			out = append(out, internalSentinel)
		}
		walk(n.left)
		walk(n.right)
	}
	walk(t.root)
	return out
}

// Deserialize rebuilds a Tree from its preorder serialization.
func Deserialize(data []byte) (*Tree, error) {
	if len(data) == 0 {
		return nil, ErrMalformedTree
	}
	pos := 0
	var parse func() (*node, error)
	parse = func() (*node, error) {
		if pos >= len(data) {
			return nil, ErrMalformedTree
		}
		b := data[pos]

		// escaped null-byte leaf
		if b == escapeByte && pos+1 < len(data) && data[pos+1] == escapeByte {
			pos += 2
			return &node{isLeaf: true, symbol: 0x00}, nil
		}

		if b == internalSentinel {
			pos++
			left, err := parse()
			if err != nil {
				return nil, err
			}
			right, err := parse()
			if err != nil {
				return nil, err
			}
			return &node{left: left, right: right}, nil
		}

		pos++
		return &node{isLeaf: true, symbol: b}, nil
	}

	root, err := parse()
	if err != nil {
		return nil, err
	}
	if pos != len(data) {
		return nil, ErrMalformedTree
	}

	t := &Tree{root: root, encoding: make(map[byte][]byte)}
	t.setEncoding()
	return t, nil
}

// Encode packs input's codewords into a bit buffer and returns the packed
// bytes along with the total number of bits written.
//
// A degenerate single-leaf tree has an empty codeword for its one symbol,
// so the usual "total bits written" count would be zero regardless of
// input length; in that case numBits instead records the number of
// symbols, and Decode interprets it accordingly.
func (t *Tree) Encode(input []byte) (numBits int, packed []byte) {
	if t.root != nil && t.root.isLeaf {
		return len(input), nil
	}
	w := bitio.NewWriter()
	for _, b := range input {
		w.PushBits(t.encoding[b])
	}
	return w.Len(), w.Bytes()
}

// Decode walks the tree bit-by-bit over packed for exactly bitLength bits,
// emitting one byte at each leaf reached and restarting at the root.
//
// A single-symbol tree degenerates to one leaf with no internal nodes; in
// that case every codeword is empty, so each "step" immediately emits the
// leaf without consuming a bit.
func (t *Tree) Decode(packed []byte, bitLength int) ([]byte, error) {
	if t.root == nil {
		return nil, nil
	}
	if t.root.isLeaf {
		out := make([]byte, bitLength)
		for i := range out {
			out[i] = t.root.symbol
		}
		return out, nil
	}

	r := bitio.NewReader(packed)
	var decoded []byte
	n := t.root
	for i := 0; i < bitLength; i++ {
		bit, err := r.ReadBit()
		if err != nil {
			return nil, Error("packed bit stream shorter than recorded bit length")
		}
		if bit == 0 {
			n = n.left
		} else {
			n = n.right
		}
		if n == nil {
			return nil, Error("bit stream diverged from tree shape")
		}
		if n.isLeaf {
			decoded = append(decoded, n.symbol)
			n = t.root
		}
	}
	return decoded, nil
}

// EncodeFrame builds a tree from input's own byte frequencies and returns
// the full self-describing frame:
// varsize(tree_len) ‖ tree_bytes ‖ varsize(N) ‖ packed_bits.
func EncodeFrame(input []byte) ([]byte, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	tree := BuildTree(input)
	treeBytes := tree.Serialize()
	numBits, packed := tree.Encode(input)

	var out []byte
	out = append(out, varsize.Encode(uint64(len(treeBytes)))...)
	out = append(out, treeBytes...)
	out = append(out, varsize.Encode(uint64(numBits))...)
	out = append(out, packed...)
	return out, nil
}

// DecodeFrame reverses EncodeFrame.
func DecodeFrame(input []byte) ([]byte, error) {
	treeLen, consumed, err := varsize.DecodeFirst(input)
	if err != nil {
		return nil, ErrMalformedTree
	}
	input = input[consumed:]
	if uint64(len(input)) < treeLen {
		return nil, ErrMalformedTree
	}
	treeBytes := input[:treeLen]
	input = input[treeLen:]

	tree, err := Deserialize(treeBytes)
	if err != nil {
		return nil, err
	}

	numBits, consumed, err := varsize.DecodeFirst(input)
	if err != nil {
		return nil, ErrMalformedTree
	}
	packed := input[consumed:]

	return tree.Decode(packed, int(numBits))
}

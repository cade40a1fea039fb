package fenwick

import "testing"

func freqABCD() []Count {
	return []Count{
		{'A', 1},
		{'B', 2},
		{'C', 3},
		{'D', 4},
	}
}

func TestPrefixSum(t *testing.T) {
	tree := New(freqABCD())

	tests := []struct {
		index int
		want  int64
	}{
		{0, 1},
		{1, 3},
		{2, 6},
		{3, 10},
	}
	for _, tc := range tests {
		if got := tree.PrefixSum(tc.index); got != tc.want {
			t.Errorf("PrefixSum(%d) = %d, want %d", tc.index, got, tc.want)
		}
	}
}

func TestBounds(t *testing.T) {
	tree := New(freqABCD())

	tests := []struct {
		sym      byte
		low, high int64
	}{
		{'A', 0, 1},
		{'B', 1, 3},
		{'C', 3, 6},
		{'D', 6, 10},
	}
	for _, tc := range tests {
		low, high, err := tree.Bounds(tc.sym)
		if err != nil {
			t.Fatalf("Bounds(%c): %v", tc.sym, err)
		}
		if low != tc.low || high != tc.high {
			t.Errorf("Bounds(%c) = (%d, %d), want (%d, %d)", tc.sym, low, high, tc.low, tc.high)
		}
	}
}

func TestTotal(t *testing.T) {
	tree := New(freqABCD())
	if got := tree.Total(); got != 10 {
		t.Errorf("Total() = %d, want 10", got)
	}
}

func TestFind(t *testing.T) {
	tree := New(freqABCD())

	tests := []struct {
		value int64
		want  byte
	}{
		{0, 'A'},
		{1, 'B'},
		{2, 'B'},
		{3, 'C'},
		{4, 'C'},
		{5, 'C'},
		{6, 'D'},
		{7, 'D'},
		{8, 'D'},
		{9, 'D'},
	}
	for _, tc := range tests {
		got, ok := tree.Find(tc.value)
		if !ok || got != tc.want {
			t.Errorf("Find(%d) = (%c, %v), want (%c, true)", tc.value, got, ok, tc.want)
		}
	}
}

func TestBoundsUnknownSymbol(t *testing.T) {
	tree := New(freqABCD())
	if _, _, err := tree.Bounds('Z'); err == nil {
		t.Errorf("Bounds('Z') should have failed")
	}
}

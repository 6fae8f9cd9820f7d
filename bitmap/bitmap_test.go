package bitmap

import (
	"bytes"
	"testing"
)

func mustDense(t *testing.T, s string) Dense {
	d, err := FromString(s)
	if err != nil {
		t.Fatalf("bugged test setup: %v", err)
	}
	return d
}

func TestSelect(t *testing.T) {
	tcs := []struct {
		name string
		data Dense
		mask Dense
		eout Dense
	}{
		{
			name: "all",
			data: mustDense(t, "101"),
			mask: mustDense(t, "111"),
			eout: mustDense(t, "101"),
		}, {
			name: "some",
			data: mustDense(t, "10100011"),
			mask: mustDense(t, "11111100"),
			eout: mustDense(t, "101000"),
		}, {
			name: "none",
			data: mustDense(t, "10100011 111"),
			mask: mustDense(t, "00000000 000"),
			eout: mustDense(t, ""),
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			out := Select(tc.data, tc.mask)
			if out.len != tc.eout.len {
				t.Errorf("got bitmap of len %d, want %d", out.len, tc.eout.len)
			}
			if !bytes.Equal(out.bits, tc.eout.bits) {
				t.Errorf("Select(%v, %v) == %v, want %v", tc.data.bits, tc.mask.bits, out.bits, tc.eout.bits)
			}
		})
	}
}

func TestCountOnes(t *testing.T) {
	tcs := []struct {
		name string
		data Dense
		eout int
	}{
		{"short", mustDense(t, "101"), 2},
		{"empty", mustDense(t, ""), 0},
		{"multibyte one", mustDense(t, "1111 1111 11"), 10},
		{"multibyte two", mustDense(t, "1011 1011 10"), 7},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			out := CountOnes(tc.data)
			if out != tc.eout {
				t.Errorf("CountOnes(%v) == %v, want %v", tc.data.bits, out, tc.eout)
			}
		})
	}
}

func TestXOr(t *testing.T) {
	tcs := []struct {
		name string
		a, b Dense
		eout Dense
	}{
		{"same", mustDense(t, "1010"), mustDense(t, "1010"), mustDense(t, "0000")},
		{"disjoint", mustDense(t, "1010"), mustDense(t, "0101"), mustDense(t, "1111")},
		{"short long", mustDense(t, "11"), mustDense(t, "1010 1010 1"), mustDense(t, "0110 1010 1")},
		{"multibyte", mustDense(t, "1111 1111 1"), mustDense(t, "1010 1010 1"), mustDense(t, "0101 0101 0")},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			out := XOr(tc.a, tc.b)
			if out.len != tc.eout.len {
				t.Errorf("got bitmap of len %d, want %d", out.len, tc.eout.len)
			}
			if !bytes.Equal(out.bits, tc.eout.bits) {
				t.Errorf("XOr(%v, %v) == %v, want %v", tc.a.bits, tc.b.bits, out.bits, tc.eout.bits)
			}
		})
	}
}

func TestXNor(t *testing.T) {
	tcs := []struct {
		name string
		a, b Dense
		eout Dense
	}{
		{"same", mustDense(t, "1010"), mustDense(t, "1010"), mustDense(t, "1111")},
		{"disjoint", mustDense(t, "1010"), mustDense(t, "0101"), mustDense(t, "0000")},
		{"multibyte", mustDense(t, "1111 1111 1"), mustDense(t, "1010 1010 1"), mustDense(t, "1010 1010 1")},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			out := XNor(tc.a, tc.b)
			if out.len != tc.eout.len {
				t.Errorf("got bitmap of len %d, want %d", out.len, tc.eout.len)
			}
			for i := 0; i < out.len; i++ {
				if out.Get(i) != tc.eout.Get(i) {
					t.Errorf("XNor(%v, %v) bit %d == %v, want %v", tc.a.bits, tc.b.bits, i, out.Get(i), tc.eout.Get(i))
				}
			}
		})
	}
}

func TestAppendBitGet(t *testing.T) {
	var d Dense
	pattern := []bool{true, false, false, true, true, false, true, true, true, false}
	for _, b := range pattern {
		d.AppendBit(b)
	}
	if d.Size() != len(pattern) {
		t.Fatalf("got bitmap of len %d, want %d", d.Size(), len(pattern))
	}
	for i, want := range pattern {
		if got := d.Get(i); got != want {
			t.Errorf("Get(%d) == %v, want %v", i, got, want)
		}
	}
	if d.Get(len(pattern)) {
		t.Errorf("Get past the end returned true, want false")
	}
}

func TestNewDenseClearsTrailingBits(t *testing.T) {
	d := NewDense([]byte{0xFF, 0xFF}, 10)
	if got := CountOnes(d); got != 10 {
		t.Errorf("CountOnes == %d, want 10", got)
	}
	if d.Size() != 10 {
		t.Errorf("Size == %d, want 10", d.Size())
	}
}

func TestEqual(t *testing.T) {
	tcs := []struct {
		name string
		a, b Dense
		eout bool
	}{
		{"equal", mustDense(t, "1010 1"), mustDense(t, "1010 1"), true},
		{"different bits", mustDense(t, "1010 1"), mustDense(t, "1010 0"), false},
		{"different lengths", mustDense(t, "1010"), mustDense(t, "1010 0"), false},
		{"empty", mustDense(t, ""), mustDense(t, ""), true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if out := Equal(tc.a, tc.b); out != tc.eout {
				t.Errorf("Equal(%v, %v) == %v, want %v", tc.a.bits, tc.b.bits, out, tc.eout)
			}
		})
	}
}

func TestFromStringRejectsGarbage(t *testing.T) {
	if _, err := FromString("10x1"); err == nil {
		t.Error("FromString accepted a non-binary rune")
	}
}

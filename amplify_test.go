package qkd

import (
	"bytes"
	"regexp"
	"testing"
)

var hexKeyRe = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestAmplifyShape(t *testing.T) {
	key, err := amplify(mustBits(t, "1011 0010 1"), 256)
	if err != nil {
		t.Fatalf("amplify: %v", err)
	}
	if !hexKeyRe.MatchString(key) {
		t.Errorf("key %q is not 64 lowercase hex characters", key)
	}
}

// Deriving from the same bit sequence and target length must always yield
// the same key.
func TestAmplifyDeterministic(t *testing.T) {
	a, err := amplify(mustBits(t, "1100 1010 0101"), 64)
	if err != nil {
		t.Fatalf("amplify: %v", err)
	}
	b, err := amplify(mustBits(t, "1100 1010 0101"), 64)
	if err != nil {
		t.Fatalf("amplify: %v", err)
	}
	if a != b {
		t.Errorf("same input derived different keys: %q != %q", a, b)
	}
}

// Inputs shorter than the target are stretched by self-concatenation and
// longer ones are truncated, so these three spell the same 8-bit string.
func TestAmplifyStretchAndTruncate(t *testing.T) {
	short, err := amplify(mustBits(t, "10"), 8)
	if err != nil {
		t.Fatalf("amplify: %v", err)
	}
	exact, err := amplify(mustBits(t, "1010 1010"), 8)
	if err != nil {
		t.Fatalf("amplify: %v", err)
	}
	long, err := amplify(mustBits(t, "1010 1010 1111"), 8)
	if err != nil {
		t.Fatalf("amplify: %v", err)
	}
	if short != exact || exact != long {
		t.Errorf("stretch/truncate produced divergent keys: %q, %q, %q", short, exact, long)
	}
}

func TestAmplifyDistinguishesInputs(t *testing.T) {
	a, err := amplify(mustBits(t, "10"), 8)
	if err != nil {
		t.Fatalf("amplify: %v", err)
	}
	b, err := amplify(mustBits(t, "01"), 8)
	if err != nil {
		t.Fatalf("amplify: %v", err)
	}
	if a == b {
		t.Error("different bit strings derived the same key")
	}
}

func TestAmplifyRejectsDegenerateInputs(t *testing.T) {
	if _, err := amplify(mustBits(t, ""), 8); err == nil {
		t.Error("accepted an empty bit string")
	}
	if _, err := amplify(mustBits(t, "101"), 0); err == nil {
		t.Error("accepted a zero-length key")
	}
}

func TestPackBigEndian(t *testing.T) {
	tcs := []struct {
		name string
		bits string
		eout []byte
	}{
		{"full byte", "1000 0001", []byte{0x81}},
		{"low bit", "0000 0001", []byte{0x01}},
		{"single bit", "1", []byte{0x01}},
		{"ragged", "1111 0000 1111", []byte{0x0F, 0x0F}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			d := mustBits(t, tc.bits)
			if got := packBigEndian(d, d.Size()); !bytes.Equal(got, tc.eout) {
				t.Errorf("packBigEndian(%s) == %v, want %v", tc.bits, got, tc.eout)
			}
		})
	}
}

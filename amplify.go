package qkd

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/quantumchat/qkd/bitmap"
)

// amplify performs privacy amplification on the surviving sifted bits: the
// bit string is self-concatenated until it covers keyBits, truncated to
// exactly keyBits, packed into its big-endian byte representation and hashed
// with SHA-256. The returned key is the digest as 64 lowercase hex
// characters. Compressing through the hash is what turns any residual
// per-bit knowledge an eavesdropper may hold into no usable knowledge of the
// final key.
func amplify(bits bitmap.Dense, keyBits int) (string, error) {
	if keyBits <= 0 {
		return "", fmt.Errorf("invalid key length: %d bits", keyBits)
	}
	if bits.Size() == 0 {
		return "", errors.New("amplifying an empty bit string")
	}
	var stretched bitmap.Dense
	for stretched.Size() < keyBits {
		for i := 0; i < bits.Size(); i++ {
			stretched.AppendBit(bits.Get(i))
		}
	}
	sum := sha256.Sum256(packBigEndian(stretched, keyBits))
	return hex.EncodeToString(sum[:]), nil
}

// packBigEndian packs the first nBits of d into the big-endian byte
// representation of the integer they spell, most significant bit first. When
// nBits is not a multiple of eight the value is right-aligned, i.e. the
// leading byte is zero-padded at the top.
func packBigEndian(d bitmap.Dense, nBits int) []byte {
	nBytes := bitmap.BytesFor(nBits)
	packed := make([]byte, nBytes)
	for i := 0; i < nBits; i++ {
		if !d.Get(i) {
			continue
		}
		pos := nBits - 1 - i
		packed[nBytes-1-pos/8] |= 1 << (pos % 8)
	}
	return packed
}

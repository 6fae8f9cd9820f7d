package bitmap

// XOr returns the bitwise XOR of two bitmaps. If one of the two is shorter
// than the other, trailing zeros are implicitly added to make the sizes
// match.
func XOr(a, b Dense) Dense {
	short, long := a, b
	if b.len < a.len {
		short, long = b, a
	}
	r := Dense{
		bits: make([]byte, 0, BytesFor(long.len)),
		len:  long.len,
	}
	for i := range short.bits {
		r.bits = append(r.bits, short.bits[i]^long.bits[i])
	}
	for i := len(short.bits); i < len(long.bits); i++ {
		r.bits = append(r.bits, long.bits[i]) // 0^v == v
	}
	return r
}

// XNor returns the bitwise XNOR of two bitmaps. If one of the two is shorter
// than the other, trailing zeros are implicitly added to make the sizes
// match.
func XNor(a, b Dense) Dense {
	short, long := a, b
	if b.len < a.len {
		short, long = b, a
	}
	r := Dense{
		bits: make([]byte, 0, BytesFor(long.len)),
		len:  long.len,
	}
	for i := range short.bits {
		r.bits = append(r.bits, ^(short.bits[i] ^ long.bits[i]))
	}
	for i := len(short.bits); i < len(long.bits); i++ {
		r.bits = append(r.bits, ^long.bits[i]) // ~(0^v) == ~v
	}
	return r
}

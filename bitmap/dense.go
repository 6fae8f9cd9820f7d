package bitmap

// A Dense is a bitmap where every bit is explicitly represented.
type Dense struct {
	bits []byte
	len  int
}

// NewDense returns a new dense bitmap whose contents are a view of data, and
// whose length is bitLen. If bitLen is longer than data, then trailing zeros
// are added. If bitLen is negative, then it is inferred from data. Bits of
// data beyond bitLen are cleared.
func NewDense(data []byte, bitLen int) Dense {
	if bitLen < 0 {
		bitLen = len(data) * byteSize
	}
	r := Dense{
		bits: data,
		len:  bitLen,
	}
	if n := r.SizeBytes(); len(r.bits) > n {
		r.bits = r.bits[:n]
	}
	for len(r.bits) < r.SizeBytes() {
		r.bits = append(r.bits, 0)
	}
	if off := bitLen % byteSize; off != 0 {
		r.bits[len(r.bits)-1] &= 0xFF >> (byteSize - off)
	}
	return r
}

// Get returns the i-th bit in this bitmap. Bits beyond the bitmap's length
// read as zero.
func (d Dense) Get(i int) bool {
	if i >= d.len {
		return false
	}
	j, pos := i/byteSize, i%byteSize
	block := d.bits[j]
	return 0 < block&(1<<pos)
}

// Size returns the number of bits in this bitmap.
func (d Dense) Size() int {
	return d.len
}

// SizeBytes returns the number of bytes necessary to represent this bitmap.
func (d Dense) SizeBytes() int {
	return BytesFor(d.len)
}

// Data returns a view of the bytes underlying this bitmap. Modifying the
// returned slice modifies this bitmap.
func (d Dense) Data() []byte {
	return d.bits
}

// AppendBit adds a single bit to the end of d.
func (d *Dense) AppendBit(bit bool) {
	i, pos := d.len/byteSize, d.len%byteSize
	d.len += 1
	if pos == 0 {
		d.bits = append(d.bits, 0)
	}
	if bit {
		d.bits[i] |= 1 << pos
	} else {
		d.bits[i] &= ^(1 << pos)
	}
}

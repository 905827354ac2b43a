package segment

import "github.com/halvarsson/qrencode/internal/bits"

// BitBuffer is an appendable sequence of bits (0s and 1s), used to build up
// a segment's payload and, at a higher level, the whole data codeword stream.
type BitBuffer []bool

// AppendBits appends the low len bits of val to the buffer, MSB first.
//
// Panics if len > 31 or val has any set bit at position len or above.
func (b *BitBuffer) AppendBits(val uint32, length uint8) {
	if length > 31 || (val>>length) != 0 {
		panic("value out of range for requested bit length")
	}
	if length == 0 {
		return
	}
	tmp := make([]bool, length)
	for i := int32(length - 1); i >= 0; i-- {
		tmp[int32(length-1)-i] = bits.Bit(val, i)
	}
	*b = append(*b, tmp...)
}

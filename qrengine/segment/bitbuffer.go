package segment

import "github.com/qrsteg/qrsteg/qrengine/internal/bitx"

/*---- Bit buffer functionality ----*/

// BitBuffer is an appendable sequence of bits (0s and 1s).
//
// Mainly used by Segment.
type BitBuffer []bool

// AppendBits appends the given number of low-order bits of val to this buffer.
// Requires len <= 31 and val < 2^len.
func (b *BitBuffer) AppendBits(val uint32, len uint8) {
	if len > 31 || (val>>len) != 0 {
		panic("Value out of range")
	}

	if len == 0 {
		return
	}
	tmp := make([]bool, len)
	for i := int32(len - 1); i > -1; i-- { // Append bit by bit
		v := bitx.GetBit(val, i)
		tmp[int32(len-1)-i] = v
	}

	res := append([]bool(*b), tmp...)
	*b = BitBuffer(res)
}

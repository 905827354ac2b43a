// Package mask implements the eight QR Code data masking patterns used to
// avoid runs and structures that would confuse a scanner.
package mask

// Mask identifies one of the eight standard masking patterns, 0 through 7.
type Mask uint8

// New creates a Mask from the given number.
//
// Panics if m is outside [0, 7].
func New(m uint8) Mask {
	if m > 7 {
		panic("mask value out of range")
	}
	return Mask(m)
}

// Value returns the mask number, in the range [0, 7].
func (m Mask) Value() uint8 {
	return uint8(m)
}

// Invert reports whether the module at (x, y) should be flipped under this
// mask pattern. The eight predicates are taken verbatim from ISO/IEC 18004
// Table 10; note that the textual form of patterns 5-7 in some references is
// ambiguous between `&` and `+` precedence — these are the unambiguous,
// standard-conforming forms.
func (m Mask) Invert(x, y int32) bool {
	switch m.Value() {
	case 0:
		return (x+y)%2 == 0
	case 1:
		return y%2 == 0
	case 2:
		return x%3 == 0
	case 3:
		return (x+y)%3 == 0
	case 4:
		return (x/3+y/2)%2 == 0
	case 5:
		return (x*y)%2+(x*y)%3 == 0
	case 6:
		return ((x*y)%2+(x*y)%3)%2 == 0
	case 7:
		return ((x+y)%2+(x*y)%3)%2 == 0
	default:
		panic("unreachable mask value")
	}
}

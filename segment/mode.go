package segment

import "github.com/halvarsson/qrencode/version"

// Mode describes how a segment's data bits are to be interpreted.
type Mode uint32

const (
	ModeNumeric Mode = iota
	ModeAlphanumeric
	ModeByte
	ModeKanji
	ModeECI
)

// Bits returns the 4-bit mode indicator value for this mode.
func (m Mode) Bits() uint32 {
	switch m {
	case ModeNumeric:
		return 0x1
	case ModeAlphanumeric:
		return 0x2
	case ModeByte:
		return 0x4
	case ModeKanji:
		return 0x8
	case ModeECI:
		return 0x7
	default:
		panic("unknown segment mode")
	}
}

// CharCountBits returns the bit width of the character count field for a
// segment in this mode at the given QR Code version, in the range [0, 16].
func (m Mode) CharCountBits(v version.Version) uint8 {
	var widths [3]uint8
	switch m {
	case ModeNumeric:
		widths = [3]uint8{10, 12, 14}
	case ModeAlphanumeric:
		widths = [3]uint8{9, 11, 13}
	case ModeByte:
		widths = [3]uint8{8, 16, 16}
	case ModeKanji:
		widths = [3]uint8{8, 10, 12}
	case ModeECI:
		widths = [3]uint8{0, 0, 0}
	default:
		panic("unknown segment mode")
	}
	// Versions 1-9, 10-26, 27-40 use successively wider count fields.
	idx := (v.Value() + 7) / 17
	return widths[idx]
}

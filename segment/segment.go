// Package segment builds the mode-tagged data segments that make up a QR
// Code's payload: numeric, alphanumeric, and byte mode, plus the mode
// classifiers used to pick among them.
package segment

import "github.com/halvarsson/qrencode/version"

// alphanumericCharset is the 45-character alphabet usable in alphanumeric
// mode, in the order that defines each character's numeric value.
var alphanumericCharset = [45]rune{
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
	'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M',
	'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z',
	' ', '$', '%', '*', '+', '-', '.', '/', ':',
}

var alphanumericValue map[rune]int

func init() {
	alphanumericValue = make(map[rune]int, len(alphanumericCharset))
	for i, c := range alphanumericCharset {
		alphanumericValue[c] = i
	}
}

// Segment is one mode-tagged chunk of a QR Code's payload: a classification
// (mode), how many source characters/bytes it covers, and its encoded
// payload bits (header-free; the mode indicator and character count are
// added later by the assembler).
type Segment struct {
	mode     Mode
	numChars uint
	data     BitBuffer
}

// Mode returns the segment's mode.
func (s Segment) Mode() Mode { return s.mode }

// NumChars returns the segment's character (or byte) count, as it will be
// written into the character count field.
func (s Segment) NumChars() uint { return s.numChars }

// Data returns the segment's encoded payload bits.
func (s Segment) Data() BitBuffer { return s.data }

// New builds a segment from already-encoded fields. Most callers should
// prefer MakeNumeric, MakeAlphanumeric, or MakeBytes instead.
func New(mode Mode, numChars uint, data BitBuffer) Segment {
	return Segment{mode: mode, numChars: numChars, data: data}
}

// MakeBytes returns a segment representing data encoded in byte mode: each
// input byte becomes 8 payload bits, unchanged.
func MakeBytes(data []byte) Segment {
	bb := make(BitBuffer, 0, len(data)*8)
	for _, b := range data {
		bb.AppendBits(uint32(b), 8)
	}
	return Segment{mode: ModeByte, numChars: uint(len(data)), data: bb}
}

// MakeNumeric returns a segment encoding text in numeric mode: runs of three
// digits pack into 10 bits, with a shorter tail group packing into 7 or 4
// bits.
//
// Panics if text contains a non-digit rune.
func MakeNumeric(text []rune) Segment {
	bb := make(BitBuffer, 0, len(text)*3+(len(text)+2)/3)
	var acc uint32
	var count uint8
	for _, c := range text {
		if c < '0' || c > '9' {
			panic("numeric segment contains a non-digit rune")
		}
		acc = acc*10 + uint32(c-'0')
		count++
		if count == 3 {
			bb.AppendBits(acc, 10)
			acc, count = 0, 0
		}
	}
	if count > 0 {
		bb.AppendBits(acc, count*3+1)
	}
	return Segment{mode: ModeNumeric, numChars: uint(len(text)), data: bb}
}

// MakeAlphanumeric returns a segment encoding text in alphanumeric mode:
// pairs of characters pack into 11 bits as 45*v1+v2, with a lone trailing
// character packing into 6 bits.
//
// Panics if text contains a rune outside the 45-character alphanumeric
// alphabet.
func MakeAlphanumeric(text []rune) Segment {
	bb := make(BitBuffer, 0, len(text)*5+(len(text)+1)/2)
	var acc uint32
	var count uint32
	for _, c := range text {
		idx, ok := alphanumericValue[c]
		if !ok {
			panic("alphanumeric segment contains an unencodable rune")
		}
		acc = acc*45 + uint32(idx)
		count++
		if count == 2 {
			bb.AppendBits(acc, 11)
			acc, count = 0, 0
		}
	}
	if count > 0 {
		bb.AppendBits(acc, 6)
	}
	return Segment{mode: ModeAlphanumeric, numChars: uint(len(text)), data: bb}
}

// MakeECI returns a segment representing an Extended Channel Interpretation
// designator with the given assignment value. Retained for API completeness
// (mirroring the upstream segment surface); the high-level encoder never
// emits one, per the ECI non-goal.
func MakeECI(assignVal uint32) Segment {
	bb := make(BitBuffer, 0, 24)
	switch {
	case assignVal < (1 << 7):
		bb.AppendBits(assignVal, 8)
	case assignVal < (1 << 14):
		bb.AppendBits(2, 2)
		bb.AppendBits(assignVal, 14)
	case assignVal < 1_000_000:
		bb.AppendBits(6, 3)
		bb.AppendBits(assignVal, 21)
	default:
		panic("ECI assignment value out of range")
	}
	return Segment{mode: ModeECI, numChars: 0, data: bb}
}

// MakeSegments classifies text (numeric, alphanumeric, or byte — see
// IsNumeric/IsAlphanumeric) and returns it as a single segment, per the
// one-segment-per-input policy of the high-level encoder.
func MakeSegments(text []rune) []Segment {
	if len(text) == 0 {
		return []Segment{}
	}
	var seg Segment
	switch {
	case IsNumeric(text):
		seg = MakeNumeric(text)
	case IsAlphanumeric(text):
		seg = MakeAlphanumeric(text)
	default:
		seg = MakeBytes([]byte(string(text)))
	}
	return []Segment{seg}
}

// IsNumeric reports whether every rune of text is an ASCII digit.
func IsNumeric(text []rune) bool {
	for _, c := range text {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// IsAlphanumeric reports whether every rune of text lies in the 45-character
// alphanumeric alphabet.
func IsAlphanumeric(text []rune) bool {
	for _, c := range text {
		if _, ok := alphanumericValue[c]; !ok {
			return false
		}
	}
	return true
}

// TotalBits returns the number of bits needed to encode segs (mode
// indicators, character counts, and payloads) at the given version, or
// ok=false if some segment's character count does not fit its count field.
func TotalBits(segs []Segment, v version.Version) (total uint, ok bool) {
	for _, seg := range segs {
		ccBits := seg.mode.CharCountBits(v)
		limit := uint(1) << ccBits
		if seg.numChars >= limit {
			return 0, false
		}
		total += 4 + uint(ccBits) + uint(len(seg.data))
	}
	return total, true
}

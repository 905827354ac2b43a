package qrcode

import (
	"github.com/halvarsson/qrencode/internal/bits"
	"github.com/halvarsson/qrencode/mask"
)

// drawFunctionPatterns paints timing, finder, and alignment patterns, then
// reserves (with dummy content) the format and version information areas.
// Must run before any data codewords are drawn.
func (s *Symbol) drawFunctionPatterns() {
	size := s.size
	for i := int32(0); i < size; i++ {
		s.setFunctionModule(6, i, i%2 == 0)
		s.setFunctionModule(i, 6, i%2 == 0)
	}

	s.drawFinderPattern(3, 3)
	s.drawFinderPattern(size-4, 3)
	s.drawFinderPattern(3, size-4)

	alignPos := s.alignmentPatternPositions()
	n := len(alignPos)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			// Skip the three corners shared with finder patterns.
			if i == 0 && j == 0 || i == 0 && j == n-1 || i == n-1 && j == 0 {
				continue
			}
			s.drawAlignmentPattern(alignPos[i], alignPos[j])
		}
	}

	s.drawFormatBits(mask.New(0)) // dummy; overwritten once the real mask is chosen
	s.drawVersion()
}

// drawFormatBits draws (twice, per the standard's redundancy) the 15-bit
// format information derived from this symbol's ECL and the given mask.
func (s *Symbol) drawFormatBits(m mask.Mask) {
	data := uint32(s.ecl.FormatBits())<<3 | uint32(m.Value())
	rem := data
	for i := 0; i < 10; i++ {
		rem = (rem << 1) ^ ((rem >> 9) * 0x537)
	}
	formatBits := (data<<10 | rem) ^ 0x5412
	if formatBits>>15 != 0 {
		panic("format bits exceed 15 bits")
	}

	// First copy, wrapped around the top-left finder.
	for i := int32(0); i < 6; i++ {
		s.setFunctionModule(8, i, bits.Bit(formatBits, i))
	}
	s.setFunctionModule(8, 7, bits.Bit(formatBits, 6))
	s.setFunctionModule(8, 8, bits.Bit(formatBits, 7))
	s.setFunctionModule(7, 8, bits.Bit(formatBits, 8))
	for i := int32(9); i < 15; i++ {
		s.setFunctionModule(14-i, 8, bits.Bit(formatBits, i))
	}

	// Second copy, beside the top-right and bottom-left finders.
	size := s.size
	for i := int32(0); i < 8; i++ {
		s.setFunctionModule(size-1-i, 8, bits.Bit(formatBits, i))
	}
	for i := int32(8); i < 15; i++ {
		s.setFunctionModule(8, size-15+i, bits.Bit(formatBits, i))
	}
	s.setFunctionModule(8, size-8, true) // the dark module is always dark
}

// drawVersion draws the two copies of the 18-bit version information field,
// used only when version >= 7.
func (s *Symbol) drawVersion() {
	if s.version < 7 {
		return
	}
	data := uint32(s.version.Value())
	rem := data
	for i := 0; i < 12; i++ {
		rem = (rem << 1) ^ ((rem >> 11) * 0x1F25)
	}
	versionBits := data<<12 | rem
	if versionBits>>18 != 0 {
		panic("version bits exceed 18 bits")
	}

	for i := int32(0); i < 18; i++ {
		bit := bits.Bit(versionBits, i)
		a := s.size - 11 + i%3
		b := i / 3
		s.setFunctionModule(a, b, bit)
		s.setFunctionModule(b, a, bit)
	}
}

// drawFinderPattern paints a 9x9 finder pattern (7x7 core plus its one-module
// quiet separator) centered at (x, y). Out-of-bounds modules are skipped.
func (s *Symbol) drawFinderPattern(x, y int32) {
	for dy := int32(-4); dy <= 4; dy++ {
		for dx := int32(-4); dx <= 4; dx++ {
			xx, yy := x+dx, y+dy
			if xx < 0 || xx >= s.size || yy < 0 || yy >= s.size {
				continue
			}
			dist := bits.MaxInt32(bits.AbsInt32(dx), bits.AbsInt32(dy))
			s.setFunctionModule(xx, yy, dist != 2 && dist != 4)
		}
	}
}

// drawAlignmentPattern paints a 5x5 alignment pattern centered at (x, y).
// All modules must be in bounds.
func (s *Symbol) drawAlignmentPattern(x, y int32) {
	for dy := int32(-2); dy <= 2; dy++ {
		for dx := int32(-2); dx <= 2; dx++ {
			dist := bits.MaxInt32(bits.AbsInt32(dx), bits.AbsInt32(dy))
			s.setFunctionModule(x+dx, y+dy, dist != 1)
		}
	}
}

// setFunctionModule sets a module's color and marks it as a function module
// (excluded from masking and from data placement).
func (s *Symbol) setFunctionModule(x, y int32, dark bool) {
	s.setModule(x, y, dark)
	s.isFunction[uint(y*s.size+x)] = true
}

// alignmentPatternPositions returns the ascending list of alignment pattern
// center coordinates (shared between the x and y axes) for this symbol's
// version. Empty for version 1, which has no alignment patterns.
func (s *Symbol) alignmentPatternPositions() []int32 {
	ver := int32(s.version.Value())
	if ver == 1 {
		return nil
	}
	numAlign := ver/7 + 2
	var step int32
	if ver == 32 {
		step = 26
	} else {
		step = (ver*4+numAlign*2+1)/(numAlign*2-2) * 2
	}
	result := make([]int32, numAlign)
	for i := int32(0); i < numAlign-1; i++ {
		result[i] = s.size - 7 - i*step
	}
	result[numAlign-1] = 6

	reversed := make([]int32, numAlign)
	for i, v := range result {
		reversed[numAlign-1-int32(i)] = v
	}
	return reversed
}

// drawCodewords lays the given codeword stream (data then ECC, already
// interleaved) onto every non-function module in the standard's zig-zag scan
// order. Function modules must already be marked.
func (s *Symbol) drawCodewords(data []uint8) {
	if uint(len(data)) != getNumRawDataModules(s.version)/8 {
		panic("codeword count does not match the raw data module count")
	}

	var i uint
	right := s.size - 1
	for right >= 1 {
		if right == 6 {
			right = 5 // the timing column has no data modules
		}
		for vert := int32(0); vert < s.size; vert++ {
			for j := int32(0); j < 2; j++ {
				x := right - j
				upward := (right+1)&2 == 0
				var y int32
				if upward {
					y = s.size - 1 - vert
				} else {
					y = vert
				}
				if !s.isFunction[uint(y*s.size+x)] && i < uint(len(data))*8 {
					s.setModule(x, y, bits.Bit(uint32(data[i>>3]), int32(7-(i&7))))
					i++
				}
				// Any leftover remainder bits (0-7) stay light, as set by
				// the zero-initialized module grid.
			}
		}
		right -= 2
	}
	if i != uint(len(data))*8 {
		panic("did not consume the full codeword stream while drawing")
	}
}

// applyMask XORs every non-function module with m's predicate. Calling this
// twice with the same mask is a no-op (XOR is its own inverse), which is how
// the mask-selection trial loop undoes a losing candidate.
func (s *Symbol) applyMask(m mask.Mask) {
	for y := int32(0); y < s.size; y++ {
		for x := int32(0); x < s.size; x++ {
			if s.isFunction[uint(y*s.size+x)] {
				continue
			}
			if m.Invert(x, y) {
				s.setModule(x, y, !s.module(x, y))
			}
		}
	}
}

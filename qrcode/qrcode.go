// Package qrcode implements the ISO/IEC 18004 QR Code Model 2 symbol
// encoder: segment framing, Reed-Solomon error correction, codeword
// interleaving, function-pattern and data placement, and mask selection.
//
// The package only ever produces a Symbol (a square grid of dark/light
// modules); rendering that grid to an image, a terminal, or any other
// surface is left to callers (see internal/render for one such consumer).
package qrcode

import (
	"errors"
	"fmt"
	"math"

	"github.com/halvarsson/qrencode/ecl"
	"github.com/halvarsson/qrencode/interleave"
	"github.com/halvarsson/qrencode/mask"
	"github.com/halvarsson/qrencode/reedsolomon"
	"github.com/halvarsson/qrencode/segment"
	"github.com/halvarsson/qrencode/version"
)

// maxSegments bounds the mid-level segment API; the high-level entry points
// always build exactly one segment and never approach this limit.
const maxSegments = 8

var (
	// ErrDataTooLong is returned when the data cannot fit in any symbol the
	// caller allowed: every version up to 40 at the requested ECL for the
	// automatic entry points, or the exact (version, ECL) pair for EncodeFixed.
	ErrDataTooLong = errors.New("qrcode: data too long to fit")

	// ErrTooManySegments is returned by the mid-level segment API when more
	// than 8 segments are supplied.
	ErrTooManySegments = errors.New("qrcode: too many segments")
)

// Symbol is an immutable square grid of dark and light modules: one QR Code.
type Symbol struct {
	version version.Version
	size    int32
	ecl     ecl.Level
	mask    mask.Mask

	modules    []bool
	isFunction []bool // discarded once construction finishes
}

// Version returns the symbol's version number, in [1, 40].
func (s *Symbol) Version() version.Version { return s.version }

// Size returns the symbol's side length in modules, in [21, 177].
func (s *Symbol) Size() int32 { return s.size }

// ErrorCorrectionLevel returns the error correction level actually used,
// which may be higher than requested (see the ECL-boost rule in Encode).
func (s *Symbol) ErrorCorrectionLevel() ecl.Level { return s.ecl }

// Mask returns the data mask pattern used, in [0, 7].
func (s *Symbol) Mask() mask.Mask { return s.mask }

// GetModule reports whether the module at (x, y) is dark. Coordinates
// outside the symbol read as light (false).
func (s *Symbol) GetModule(x, y int32) bool {
	return x >= 0 && x < s.size && y >= 0 && y < s.size && s.module(x, y)
}

func (s *Symbol) module(x, y int32) bool {
	return s.modules[uint(y*s.size+x)]
}

func (s *Symbol) setModule(x, y int32, dark bool) {
	s.modules[uint(y*s.size+x)] = dark
}

/*---- High-level entry points ----*/

// EncodeText returns a Symbol representing text at the given error
// correction level, automatically choosing the smallest version that fits
// and boosting the ECL as high as that version allows.
func EncodeText(text string, level ecl.Level) (*Symbol, error) {
	segs := segment.MakeSegments([]rune(text))
	return EncodeSegments(segs, level)
}

// Encode returns a Symbol representing data at the given error correction
// level, as a single numeric, alphanumeric, or byte mode segment (whichever
// the bytes allow, in that order of preference), automatically choosing the
// smallest version that fits and boosting the ECL as high as that version
// allows.
func Encode(data []byte, level ecl.Level) (*Symbol, error) {
	text := []rune(string(data))
	var seg segment.Segment
	switch {
	case segment.IsNumeric(text):
		seg = segment.MakeNumeric(text)
	case segment.IsAlphanumeric(text):
		seg = segment.MakeAlphanumeric(text)
	default:
		seg = segment.MakeBytes(data)
	}
	return EncodeSegments([]segment.Segment{seg}, level)
}

// EncodeFixed returns a Symbol representing data (byte mode) at exactly the
// given version and error correction level, failing with ErrDataTooLong if
// it does not fit. Unlike Encode, this never searches for a larger version
// or boosts the ECL.
func EncodeFixed(data []byte, v version.Version, level ecl.Level) (*Symbol, error) {
	seg := segment.MakeBytes(data)
	return EncodeSegmentsAdvanced([]segment.Segment{seg}, level, v, v, nil, false)
}

/*---- Mid-level entry points ----*/

// EncodeSegments returns a Symbol representing segs at the given error
// correction level, searching the full version range [1, 40] and boosting
// the ECL as high as the chosen version allows.
func EncodeSegments(segs []segment.Segment, level ecl.Level) (*Symbol, error) {
	return EncodeSegmentsAdvanced(segs, level, version.Min, version.Max, nil, true)
}

// EncodeSegmentsAdvanced returns a Symbol representing segs, searching
// versions in [minVersion, maxVersion]. If boostECL is true, the ECL may be
// raised (never lowered) beyond level without increasing the version. If m
// is non-nil, that mask is forced instead of choosing the lowest-penalty
// mask automatically.
func EncodeSegmentsAdvanced(
	segs []segment.Segment,
	level ecl.Level,
	minVersion, maxVersion version.Version,
	m *mask.Mask,
	boostECL bool,
) (*Symbol, error) {
	if minVersion > maxVersion {
		panic("minVersion > maxVersion")
	}
	if len(segs) > maxSegments {
		return nil, fmt.Errorf("%w: %d segments exceeds the limit of %d", ErrTooManySegments, len(segs), maxSegments)
	}

	v := minVersion
	var dataUsedBits uint
	for {
		dataCapacityBits := getNumDataCodewords(v, level) * 8
		used, ok := segment.TotalBits(segs, v)
		if ok && used <= dataCapacityBits {
			dataUsedBits = used
			break
		}
		if v.Value() >= maxVersion.Value() {
			if !ok {
				return nil, fmt.Errorf("%w: a segment's character count does not fit its count field", ErrDataTooLong)
			}
			return nil, fmt.Errorf("%w: data length = %d bits, max capacity = %d bits", ErrDataTooLong, used, dataCapacityBits)
		}
		v = v.Next()
	}

	// Raise the ECL as far as it goes without increasing the version. The
	// loop intentionally does not break on the first failing candidate: it
	// walks Medium, Quartile, High in ascending order and keeps assigning,
	// so it lands on the highest level that still fits. See SPEC_FULL.md §9.
	for _, candidate := range []ecl.Level{ecl.Medium, ecl.Quartile, ecl.High} {
		if boostECL && dataUsedBits <= getNumDataCodewords(v, candidate)*8 {
			level = candidate
		}
	}

	bb := segment.BitBuffer{}
	for _, seg := range segs {
		bb.AppendBits(seg.Mode().Bits(), 4)
		bb.AppendBits(uint32(seg.NumChars()), seg.Mode().CharCountBits(v))
		bb = append(bb, seg.Data()...)
	}
	if uint(len(bb)) != dataUsedBits {
		panic("assembled bit length does not match the computed framed length")
	}

	dataCapacityBits := getNumDataCodewords(v, level) * 8
	if uint(len(bb)) > dataCapacityBits {
		panic("assembled bit length exceeds capacity")
	}

	// Terminator: up to 4 zero bits.
	numZeroBits := uint(4)
	if remaining := dataCapacityBits - uint(len(bb)); remaining < numZeroBits {
		numZeroBits = remaining
	}
	bb.AppendBits(0, uint8(numZeroBits))

	// Byte-align.
	if pad := (8 - len(bb)%8) % 8; pad > 0 {
		bb.AppendBits(0, uint8(pad))
	}
	if len(bb)%8 != 0 {
		panic("bit buffer is not byte-aligned after padding")
	}

	// Pad bytes: alternate 0xEC, 0x11 until full.
	padBytes := [2]uint32{0xEC, 0x11}
	for i := 0; len(bb) < int(dataCapacityBits); i++ {
		bb.AppendBits(padBytes[i%2], 8)
	}

	dataCodewords := make([]uint8, len(bb)/8)
	for i, bit := range bb {
		if bit {
			dataCodewords[i>>3] |= 1 << uint(7-(i&7))
		}
	}

	return encodeCodewords(v, level, dataCodewords, m), nil
}

/*---- Low-level constructor ----*/

// encodeCodewords builds a Symbol from already-framed data codewords
// (including segment headers, terminator, and padding, but not yet ECC).
func encodeCodewords(v version.Version, level ecl.Level, dataCodewords []uint8, m *mask.Mask) *Symbol {
	size := v.Size()
	sym := &Symbol{
		version:    v,
		size:       size,
		ecl:        level,
		mask:       mask.New(0), // placeholder, overwritten below
		modules:    make([]bool, uint(size)*uint(size)),
		isFunction: make([]bool, uint(size)*uint(size)),
	}

	sym.drawFunctionPatterns()
	allCodewords := sym.addEccAndInterleave(dataCodewords)
	sym.drawCodewords(allCodewords)

	if m == nil {
		best := mask.New(0)
		minPenalty := int32(math.MaxInt32)
		for i := uint8(0); i < 8; i++ {
			candidate := mask.New(i)
			sym.applyMask(candidate)
			sym.drawFormatBits(candidate)
			penalty := sym.getPenaltyScore()
			if penalty < minPenalty {
				best = candidate
				minPenalty = penalty
			}
			sym.applyMask(candidate) // undo: XOR twice is a no-op
		}
		m = &best
	}
	sym.mask = *m
	sym.applyMask(*m)
	sym.drawFormatBits(*m)

	sym.isFunction = nil
	return sym
}

/*---- Capacity helpers (table-driven, never recomputed by hand) ----*/

// getNumRawDataModules returns the number of bits (data + ECC, including
// remainder bits) a symbol of the given version can hold once all function
// modules are excluded.
func getNumRawDataModules(v version.Version) uint {
	ver := uint(v.Value())
	result := (16*ver+128)*ver + 64
	if ver >= 2 {
		numAlign := ver/7 + 2
		result -= (25*numAlign-10)*numAlign - 55
		if ver >= 7 {
			result -= 36
		}
	}
	if result < 208 || result > 29648 {
		panic("raw data module count out of the ISO/IEC 18004 range")
	}
	return result
}

// getNumDataCodewords returns the number of 8-bit data codewords (excluding
// ECC and any trailing remainder bits) for the given version and ECL.
func getNumDataCodewords(v version.Version, level ecl.Level) uint {
	return getNumRawDataModules(v)/8 - tableGet(eccCodewordsPerBlock, v, level)*tableGet(numErrorCorrectionBlocks, v, level)
}

// addEccAndInterleave splits data into its error-correction blocks, computes
// each block's ECC codewords, and interleaves the result per §4.7.
func (s *Symbol) addEccAndInterleave(data []uint8) []uint8 {
	v, level := s.version, s.ecl
	if uint(len(data)) != getNumDataCodewords(v, level) {
		panic("data codeword count does not match capacity")
	}

	numBlocks := tableGet(numErrorCorrectionBlocks, v, level)
	blockECCLen := tableGet(eccCodewordsPerBlock, v, level)
	rawCodewords := getNumRawDataModules(v) / 8
	numShortBlocks := numBlocks - (rawCodewords % numBlocks)
	shortBlockLen := rawCodewords / numBlocks

	divisor := reedsolomon.ComputeDivisor(blockECCLen)
	blocks := make([]interleave.Block, 0, numBlocks)

	var k uint
	for i := uint(0); i < numBlocks; i++ {
		datLen := shortBlockLen - blockECCLen
		if i >= numShortBlocks {
			datLen++
		}
		dat := make([]uint8, datLen)
		copy(dat, data[k:k+datLen])
		k += datLen

		ecc := reedsolomon.ComputeRemainder(dat, divisor)
		blocks = append(blocks, interleave.Block{Data: dat, ECC: ecc})
	}

	return interleave.Codewords(blocks)
}

package qrcode

import (
	"strings"
	"testing"

	"github.com/halvarsson/qrencode/ecl"
	"github.com/halvarsson/qrencode/segment"
	"github.com/halvarsson/qrencode/version"
)

func TestSizeFormula(t *testing.T) {
	for v := uint8(1); v <= 40; v++ {
		ver := version.New(v)
		want := int32(4*v) + 17
		if got := ver.Size(); got != want {
			t.Errorf("version %d size = %d, want %d", v, got, want)
		}
	}
}

func TestEncodeNumericLow(t *testing.T) {
	sym, err := EncodeText("01234567", ecl.Low)
	if err != nil {
		t.Fatalf("EncodeText error: %v", err)
	}
	if sym.Version().Value() != 1 {
		t.Errorf("version = %d, want 1", sym.Version().Value())
	}
	if sym.ErrorCorrectionLevel() != ecl.High {
		t.Errorf("ecl = %v, want High (boosted)", sym.ErrorCorrectionLevel())
	}
	if sym.Size() != 21 {
		t.Errorf("size = %d, want 21", sym.Size())
	}
}

func TestEncodeAlphanumericBoost(t *testing.T) {
	sym, err := EncodeText("HELLO WORLD", ecl.Low)
	if err != nil {
		t.Fatalf("EncodeText error: %v", err)
	}
	if sym.Version().Value() != 1 || sym.Size() != 21 {
		t.Errorf("version/size = %d/%d, want 1/21", sym.Version().Value(), sym.Size())
	}
	if sym.ErrorCorrectionLevel() != ecl.Quartile {
		t.Errorf("ecl = %v, want Quartile", sym.ErrorCorrectionLevel())
	}
}

func TestEncodeByteHelloWorld(t *testing.T) {
	sym, err := EncodeText("Hello, world!", ecl.Low)
	if err != nil {
		t.Fatalf("EncodeText error: %v", err)
	}
	if sym.Version().Value() != 1 || sym.Size() != 21 {
		t.Errorf("version/size = %d/%d, want 1/21", sym.Version().Value(), sym.Size())
	}
	if l := sym.ErrorCorrectionLevel(); l != ecl.Medium && l != ecl.Low {
		t.Errorf("ecl = %v, want Medium or Low", l)
	}
}

func TestEncodeSingleCharAlphanumeric(t *testing.T) {
	sym, err := EncodeText("A", ecl.Low)
	if err != nil {
		t.Fatalf("EncodeText error: %v", err)
	}
	if sym.Version().Value() != 1 || sym.Size() != 21 {
		t.Errorf("version/size = %d/%d, want 1/21", sym.Version().Value(), sym.Size())
	}
	if sym.ErrorCorrectionLevel() != ecl.High {
		t.Errorf("ecl = %v, want High", sym.ErrorCorrectionLevel())
	}
}

func TestEncodeMaxByteCapacityVersion40(t *testing.T) {
	data := make([]byte, 2953)
	for i := range data {
		data[i] = 'a'
	}
	sym, err := Encode(data, ecl.Low)
	if err != nil {
		t.Fatalf("Encode error for 2953 bytes: %v", err)
	}
	if sym.Version().Value() != 40 {
		t.Errorf("version = %d, want 40", sym.Version().Value())
	}
	if sym.Size() != 177 {
		t.Errorf("size = %d, want 177", sym.Size())
	}
	if sym.ErrorCorrectionLevel() != ecl.Low {
		t.Errorf("ecl = %v, want Low", sym.ErrorCorrectionLevel())
	}
}

func TestEncodeOverflowFails(t *testing.T) {
	data := make([]byte, 2954)
	_, err := Encode(data, ecl.Low)
	if err == nil {
		t.Fatalf("expected an error for 2954 bytes at low ECL")
	}
}

func TestEncodeFixedRejectsUndersizedTarget(t *testing.T) {
	data := make([]byte, 2953)
	_, err := EncodeFixed(data, version.New(1), ecl.Low)
	if err == nil {
		t.Fatalf("expected an error encoding 2953 bytes into version 1")
	}
}

func TestEncodeFixedNoBoost(t *testing.T) {
	// Version 40 Low has ample room for a short string; EncodeFixed must not
	// boost the ECL the way the auto entry points do.
	sym, err := EncodeFixed([]byte("hi"), version.New(40), ecl.Low)
	if err != nil {
		t.Fatalf("EncodeFixed error: %v", err)
	}
	if sym.ErrorCorrectionLevel() != ecl.Low {
		t.Errorf("ecl = %v, want Low (no boosting on EncodeFixed)", sym.ErrorCorrectionLevel())
	}
}

func TestGetModuleOutOfBoundsIsLight(t *testing.T) {
	sym, err := EncodeText("test", ecl.Low)
	if err != nil {
		t.Fatalf("EncodeText error: %v", err)
	}
	if sym.GetModule(-1, -1) {
		t.Errorf("out-of-bounds module should read light")
	}
	if sym.GetModule(sym.Size(), sym.Size()) {
		t.Errorf("out-of-bounds module should read light")
	}
}

func TestFinderPatternsAreDark(t *testing.T) {
	sym, err := EncodeText("finder pattern test", ecl.Low)
	if err != nil {
		t.Fatalf("EncodeText error: %v", err)
	}
	// Top-left finder's center ring should be dark.
	if !sym.GetModule(3, 3) {
		t.Errorf("finder pattern center (3,3) should be dark")
	}
	// The separator ring (distance 2) should be light.
	if sym.GetModule(3, 1) {
		t.Errorf("finder pattern separator (3,1) should be light")
	}
}

func TestDarkModuleAlwaysDark(t *testing.T) {
	sym, err := EncodeText("dark module check", ecl.Low)
	if err != nil {
		t.Fatalf("EncodeText error: %v", err)
	}
	if !sym.GetModule(8, sym.Size()-8) {
		t.Errorf("dark module at (8, size-8) should always be dark")
	}
}

func TestTooManySegmentsRejected(t *testing.T) {
	segs := make([]segment.Segment, 9)
	for i := range segs {
		segs[i] = segment.MakeBytes([]byte{byte(i)})
	}
	_, err := EncodeSegments(segs, ecl.Low)
	if err == nil {
		t.Fatalf("expected an error for 9 segments")
	}
}

func TestVersionBitsWrittenAtV7(t *testing.T) {
	// A long alphanumeric string pushes the version to 7 or above at low ECL.
	text := strings.Repeat("A", 200)
	sym, err := EncodeText(text, ecl.Low)
	if err != nil {
		t.Fatalf("EncodeText error: %v", err)
	}
	if sym.Version().Value() < 7 {
		t.Skip("input did not reach version 7; nothing to check")
	}
	if sym.Version().Value() != 7 {
		t.Fatalf("version = %d, want 7", sym.Version().Value())
	}
	// Version 7's 18-bit version information is 0x07C94; bit i sits at
	// (size-11+i%3, i/3) and at its transpose.
	const versionBits = 0x07C94
	size := sym.Size()
	for i := int32(0); i < 18; i++ {
		want := (versionBits>>uint(i))&1 != 0
		a, b := size-11+i%3, i/3
		if sym.GetModule(a, b) != want || sym.GetModule(b, a) != want {
			t.Errorf("version bit %d at (%d,%d)/(%d,%d): want dark=%v", i, a, b, b, a, want)
		}
	}
}

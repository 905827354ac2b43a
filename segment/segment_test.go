package segment

import (
	"testing"

	"github.com/halvarsson/qrencode/version"
)

func TestIsNumeric(t *testing.T) {
	if !IsNumeric([]rune("0123456789")) {
		t.Errorf("digits should be numeric")
	}
	if IsNumeric([]rune("12a")) {
		t.Errorf("letters should not be numeric")
	}
}

func TestIsAlphanumeric(t *testing.T) {
	if !IsAlphanumeric([]rune("HELLO WORLD")) {
		t.Errorf("uppercase + space should be alphanumeric")
	}
	if IsAlphanumeric([]rune("hello")) {
		t.Errorf("lowercase should not be alphanumeric")
	}
}

func TestNumericPayloadBitLength(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{0, 0}, {1, 4}, {2, 7}, {3, 10}, {4, 14}, {5, 17}, {6, 20}, {7, 24},
	}
	for _, c := range cases {
		text := make([]rune, c.n)
		for i := range text {
			text[i] = '0' + rune(i%10)
		}
		seg := MakeNumeric(text)
		if got := len(seg.Data()); got != c.want {
			t.Errorf("numeric(%d chars) payload = %d bits, want %d", c.n, got, c.want)
		}
	}
}

func TestAlphanumericPayloadBitLength(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{0, 0}, {1, 6}, {2, 11}, {3, 17}, {4, 22}, {5, 28},
	}
	for _, c := range cases {
		text := make([]rune, c.n)
		for i := range text {
			text[i] = 'A' + rune(i%26)
		}
		seg := MakeAlphanumeric(text)
		if got := len(seg.Data()); got != c.want {
			t.Errorf("alphanumeric(%d chars) payload = %d bits, want %d", c.n, got, c.want)
		}
	}
}

func TestBytePayloadBitLength(t *testing.T) {
	for n := 0; n <= 5; n++ {
		seg := MakeBytes(make([]byte, n))
		if got, want := len(seg.Data()), n*8; got != want {
			t.Errorf("byte(%d bytes) payload = %d bits, want %d", n, got, want)
		}
	}
}

func TestHelloWorldAlphanumericBits(t *testing.T) {
	seg := MakeAlphanumeric([]rune("HELLO WORLD"))
	if len(seg.Data()) != 61 {
		t.Fatalf("HELLO WORLD payload length = %d bits, want 61", len(seg.Data()))
	}
	var sb []byte
	for _, bit := range seg.Data() {
		if bit {
			sb = append(sb, '1')
		} else {
			sb = append(sb, '0')
		}
	}
	got := string(sb)
	want := "0110000101101111000110100010111001011011100010011010100001101"
	if got != want {
		t.Errorf("HELLO WORLD payload bits =\n%s\nwant\n%s", got, want)
	}
}

func TestMakeSegmentsPicksMode(t *testing.T) {
	if MakeSegments([]rune("01234567"))[0].Mode() != ModeNumeric {
		t.Errorf("digits should classify as numeric")
	}
	if MakeSegments([]rune("HELLO WORLD"))[0].Mode() != ModeAlphanumeric {
		t.Errorf("uppercase text should classify as alphanumeric")
	}
	if MakeSegments([]rune("Hello, world!"))[0].Mode() != ModeByte {
		t.Errorf("mixed-case text should classify as byte")
	}
	if len(MakeSegments([]rune(""))) != 0 {
		t.Errorf("empty text should produce zero segments")
	}
}

func TestTotalBits(t *testing.T) {
	segs := MakeSegments([]rune("01234567"))
	total, ok := TotalBits(segs, version.New(1))
	if !ok {
		t.Fatalf("TotalBits reported not ok")
	}
	// mode(4) + count(10 for numeric at v1-9) + payload(8 digits -> 2 groups of 3 + 1 group of 2 = 27 bits)
	if want := uint(4 + 10 + 27); total != want {
		t.Errorf("TotalBits = %d, want %d", total, want)
	}
}

func TestTotalBitsOverflowsCountField(t *testing.T) {
	// Version 1 byte mode has an 8-bit count field (max 255 chars).
	seg := MakeBytes(make([]byte, 256))
	_, ok := TotalBits([]Segment{seg}, version.New(1))
	if ok {
		t.Errorf("expected TotalBits to report not ok for an oversized byte segment")
	}
}

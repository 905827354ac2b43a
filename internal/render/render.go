// Package render turns a qrcode.Symbol into pixels: a plain grayscale
// module raster, a scaled PNG, or an SVG document. This is deliberately outside the qrcode
// package — the encoder core only ever produces a module matrix, and
// everything here is built on its public Symbol API, the same way an
// external renderer would consume it.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"github.com/halvarsson/qrencode/qrcode"
)

// Raster is a row-major grayscale bitmap of a symbol, one byte per module:
// 0 for black, 255 for white.
type Raster struct {
	Size int
	Pix  []byte
}

// Grayscale renders sym into a Raster, adding quietZone modules of white
// border on every side.
func Grayscale(sym *qrcode.Symbol, quietZone int) *Raster {
	if quietZone < 0 {
		quietZone = 0
	}
	inner := int(sym.Size())
	size := inner + 2*quietZone
	pix := make([]byte, size*size)
	for i := range pix {
		pix[i] = 255
	}
	for y := 0; y < inner; y++ {
		for x := 0; x < inner; x++ {
			if sym.GetModule(int32(x), int32(y)) {
				row := y + quietZone
				col := x + quietZone
				pix[row*size+col] = 0
			}
		}
	}
	return &Raster{Size: size, Pix: pix}
}

// WritePNG renders sym to w as a PNG, scaling each module to a scale x scale
// block of pixels and adding quietZone modules of white border.
func WritePNG(w io.Writer, sym *qrcode.Symbol, scale, quietZone int) error {
	if scale < 1 {
		scale = 1
	}
	raster := Grayscale(sym, quietZone)
	dim := raster.Size * scale

	palette := color.Palette{color.White, color.Black}
	img := image.NewPaletted(image.Rect(0, 0, dim, dim), palette)
	for row := 0; row < raster.Size; row++ {
		for col := 0; col < raster.Size; col++ {
			idx := uint8(0)
			if raster.Pix[row*raster.Size+col] == 0 {
				idx = 1
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetColorIndex(col*scale+dx, row*scale+dy, idx)
				}
			}
		}
	}
	return png.Encode(w, img)
}

// WriteSVG writes sym as a minimal SVG path document, scaled so each module
// is one SVG unit square, with quietZone modules of border.
func WriteSVG(w io.Writer, sym *qrcode.Symbol, quietZone int) error {
	if quietZone < 0 {
		quietZone = 0
	}
	size := sym.Size()
	dim := int(size) + 2*quietZone

	var sb strings.Builder
	sb.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&sb, "<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" viewBox=\"0 0 %d %d\" stroke=\"none\">\n", dim, dim)
	sb.WriteString("\t<rect width=\"100%\" height=\"100%\" fill=\"#FFFFFF\"/>\n")
	sb.WriteString("\t<path d=\"")

	first := true
	for y := int32(0); y < size; y++ {
		for x := int32(0); x < size; x++ {
			if !sym.GetModule(x, y) {
				continue
			}
			if !first {
				sb.WriteString(" ")
			}
			first = false
			fmt.Fprintf(&sb, "M%d,%dh1v1h-1z", int(x)+quietZone, int(y)+quietZone)
		}
	}
	sb.WriteString("\" fill=\"#000000\"/>\n")
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

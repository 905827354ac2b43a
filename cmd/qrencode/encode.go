package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/halvarsson/qrencode/ecl"
	"github.com/halvarsson/qrencode/internal/config"
	"github.com/halvarsson/qrencode/internal/render"
	"github.com/halvarsson/qrencode/qrcode"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [text]",
	Short: "Encode text into a QR Code symbol",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEncode,
}

var (
	flagIn     string
	flagOut    string
	flagECL    string
	flagScale  int
	flagBorder int
	flagConfig string
)

func init() {
	encodeCmd.Flags().StringVar(&flagIn, "in", "", "read input text from this file instead of the argument")
	encodeCmd.Flags().StringVar(&flagOut, "out", "", "write a PNG or SVG (by extension) to this path instead of printing an ASCII symbol")
	encodeCmd.Flags().StringVar(&flagECL, "ecl", "", "error correction level: l, m, q, h (overrides config)")
	encodeCmd.Flags().IntVar(&flagScale, "scale", 0, "PNG pixels per module (overrides config)")
	encodeCmd.Flags().IntVar(&flagBorder, "border", -1, "quiet zone width in modules (overrides config)")
	encodeCmd.Flags().StringVar(&flagConfig, "config", "", "YAML file of defaults (ecl, scale, border, output_dir)")
}

func runEncode(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		cfg = loaded
	}
	if flagECL != "" {
		cfg.ECL = flagECL
	}
	if flagScale > 0 {
		cfg.Scale = flagScale
	}
	if flagBorder >= 0 {
		cfg.Border = flagBorder
	}

	text, err := readInput(args)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	level, ok := ecl.Parse(cfg.ECL)
	if !ok {
		err := fmt.Errorf("encode: unrecognized error correction level %q", cfg.ECL)
		slog.Error("encode failed", "err", err)
		return err
	}

	sym, err := qrcode.EncodeText(text, level)
	if err != nil {
		slog.Error("encode failed", "err", err, "level", level)
		return fmt.Errorf("encode: %w", err)
	}
	slog.Info("encoded symbol", "version", sym.Version().Value(), "ecl", sym.ErrorCorrectionLevel(), "size", sym.Size())

	if flagOut != "" {
		f, err := os.Create(flagOut)
		if err != nil {
			return fmt.Errorf("encode: creating %s: %w", flagOut, err)
		}
		defer f.Close()
		if strings.HasSuffix(strings.ToLower(flagOut), ".svg") {
			if err := render.WriteSVG(f, sym, cfg.Border); err != nil {
				return fmt.Errorf("encode: writing SVG: %w", err)
			}
		} else if err := render.WritePNG(f, sym, cfg.Scale, cfg.Border); err != nil {
			return fmt.Errorf("encode: writing PNG: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), flagOut)
		return nil
	}

	printASCII(cmd.OutOrStdout(), sym, cfg.Border)
	return nil
}

func readInput(args []string) (string, error) {
	if flagIn != "" {
		data, err := os.ReadFile(flagIn)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", flagIn, err)
		}
		return string(data), nil
	}
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// printASCII draws each module as two characters so the symbol renders
// roughly square in a terminal.
func printASCII(w io.Writer, sym *qrcode.Symbol, border int) {
	raster := render.Grayscale(sym, border)
	for y := 0; y < raster.Size; y++ {
		row := make([]byte, 0, raster.Size*2)
		for x := 0; x < raster.Size; x++ {
			if raster.Pix[y*raster.Size+x] == 0 {
				row = append(row, "██"...)
			} else {
				row = append(row, "  "...)
			}
		}
		row = append(row, '\n')
		w.Write(row)
	}
}

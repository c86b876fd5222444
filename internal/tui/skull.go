package tui

import (
	"bytes"
	_ "embed"
	"errors"
	"image"
	"image/png"
	"math"
	"strings"

	"golang.org/x/image/draw"
)

//go:embed skull.png
var skullPNG []byte

// brightnessChars runs from darkest to brightest.
const brightnessChars = "$@B%8&WM#*oahkbdpqwmZO0QLCJUYXzcvunxrjft/\\|()1{}[]?-_+~<>i!lI;:,\"^`\\'."

var errArtTooSmall = errors.New("area too small for art")

// skullSize fits a 2:1 (columns:rows) picture into the available area.
func skullSize(maxCols, maxRows int) (cols, rows int) {
	if maxRows*2 > maxCols {
		return maxCols, maxCols / 2
	}
	return maxRows * 2, maxRows
}

// renderSkull scales the embedded picture to cols x rows and maps each pixel's
// luminance onto brightnessChars.
func renderSkull(cols, rows int) (string, error) {
	if cols <= 0 || rows <= 0 {
		return "", errArtTooSmall
	}
	src, err := png.Decode(bytes.NewReader(skullPNG))
	if err != nil {
		return "", err
	}
	dst := image.NewGray(image.Rect(0, 0, cols, rows))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	ramp := []rune(brightnessChars)
	lines := make([]string, rows)
	for y := 0; y < rows; y++ {
		var b strings.Builder
		for x := 0; x < cols; x++ {
			luma := float64(dst.GrayAt(x, y).Y) / math.MaxUint8
			b.WriteRune(ramp[int(math.Round(luma*float64(len(ramp)-1)))])
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n"), nil
}

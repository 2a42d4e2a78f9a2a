package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
)

// upperHalf draws the top pixel in the foreground and the bottom one in the background
const upperHalf = "▀"

// Thumbnail renders img into at most cols x rows terminal cells using half blocks and
// tview color tags. Aspect ratio is kept; each cell holds two vertical pixels.
func Thumbnail(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return ""
	}

	w, h := fitBox(b.Dx(), b.Dy(), cols, rows*2)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	var sb strings.Builder
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			top := hexColor(dst.RGBAAt(x, y))
			bottom := "-"
			if y+1 < h {
				bottom = hexColor(dst.RGBAAt(x, y+1))
			}
			fmt.Fprintf(&sb, "[%s:%s]%s", top, bottom, upperHalf)
		}
		sb.WriteString("[-:-]")
		if y+2 < h {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// fitBox scales w x h down (or up) to fit inside maxW x maxH, at least 1x1
func fitBox(w, h, maxW, maxH int) (int, int) {
	outW, outH := maxW, h*maxW/w
	if outH > maxH {
		outW, outH = w*maxH/h, maxH
	}
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}
	return outW, outH
}

func hexColor(c color.RGBA) string {
	if c.A == 0 {
		return "-"
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Placeholder is the text shown in a preview cell that has nothing to draw yet
func Placeholder(cols int, text string) string {
	return FitColumn(text, cols)
}

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
)

const halfBlock = "▀"

// RenderHalfBlocks draws img into at most cols x rows terminal cells. Each
// cell carries two pixels: the upper one as foreground of ▀ and the lower
// one as background. The aspect ratio is kept and small images are not
// scaled up.
func RenderHalfBlocks(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}

	fitted := imaging.Fit(img, cols, rows*2, imaging.Box)
	b := fitted.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return ""
	}

	lines := make([]string, 0, (b.Dy()+1)/2)
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var sb strings.Builder
		for x := b.Min.X; x < b.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hexColor(fitted.NRGBAAt(x, y)))
			if y+1 < b.Max.Y {
				style = style.Background(hexColor(fitted.NRGBAAt(x, y+1)))
			}
			sb.WriteString(style.Render(halfBlock))
		}
		lines = append(lines, sb.String())
	}

	return strings.Join(lines, "\n")
}

func hexColor(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

package ui

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func solid(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	return img
}

func TestRenderHalfBlocks_FitsWithinCells(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		cols, rows int
		wantCols   int
		wantLines  int
	}{
		{"wide image limited by cols", 40, 20, 20, 20, 20, 5},
		{"tall image limited by rows", 10, 100, 50, 10, 2, 10},
		{"small image not upscaled", 6, 4, 80, 24, 6, 2},
		{"odd pixel height", 3, 3, 80, 24, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderHalfBlocks(solid(tt.w, tt.h), tt.cols, tt.rows)
			lines := strings.Split(out, "\n")
			if len(lines) != tt.wantLines {
				t.Fatalf("lines = %d, want %d", len(lines), tt.wantLines)
			}
			for i, line := range lines {
				if got := lipgloss.Width(line); got != tt.wantCols {
					t.Fatalf("line %d width = %d, want %d", i, got, tt.wantCols)
				}
			}
		})
	}
}

func TestRenderHalfBlocks_EmptyInputs(t *testing.T) {
	if out := RenderHalfBlocks(nil, 10, 10); out != "" {
		t.Fatalf("nil image rendered %q", out)
	}
	if out := RenderHalfBlocks(solid(4, 4), 0, 10); out != "" {
		t.Fatalf("zero cols rendered %q", out)
	}
}

func TestHexColor(t *testing.T) {
	if got := hexColor(color.NRGBA{R: 0xff, G: 0x0a, B: 0x00, A: 0xff}); got != lipgloss.Color("#ff0a00") {
		t.Fatalf("hexColor = %q", got)
	}
}

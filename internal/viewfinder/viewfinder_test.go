package viewfinder

import (
	"image"
	"image/color"
	"image/draw"
	"regexp"
	"strings"
	"testing"
	"time"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string { return ansi.ReplaceAllString(s, "") }

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, fw, fh int
		cols, rows   int
	}{
		{80, 24, 640, 480, 64, 24},
		{40, 24, 640, 480, 40, 15},
		{100, 100, 1280, 720, 100, 28},
		{0, 10, 640, 480, 0, 0},
	}
	for _, tt := range tests {
		cols, rows := Fit(tt.w, tt.h, tt.fw, tt.fh)
		if cols != tt.cols || rows != tt.rows {
			t.Fatalf("Fit(%d, %d, %d, %d) = %d, %d, want %d, %d", tt.w, tt.h, tt.fw, tt.fh, cols, rows, tt.cols, tt.rows)
		}
	}
}

func TestRegionCells(t *testing.T) {
	got := RegionCells(64, 24, image.Rect(0, 0, 640, 480), 0.5)
	if want := image.Rect(16, 6, 48, 18); got != want {
		t.Fatalf("RegionCells = %v, want %v", got, want)
	}
}

func TestLumaChar(t *testing.T) {
	if LumaChar(0) != ' ' || LumaChar(255) != '@' {
		t.Fatalf("ramp ends = %q %q", LumaChar(0), LumaChar(255))
	}
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.White)
	img.Set(1, 0, color.Black)
	if Luma(img, image.Pt(0, 0)) != 255 || Luma(img, image.Pt(1, 0)) != 0 {
		t.Fatal("unexpected luminance")
	}
}

func TestRenderOutlinesRegion(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 640, 480))
	draw.Draw(frame, frame.Bounds(), image.White, image.Point{}, draw.Src)

	out := plain(Render(64, 24, frame, 0, 0, 0.5, nil))
	lines := strings.Split(out, "\n")
	if len(lines) != 24 {
		t.Fatalf("rows = %d, want 24", len(lines))
	}
	row := []rune(lines[6])
	if len(row) != 64 {
		t.Fatalf("cols = %d, want 64", len(row))
	}
	if row[16] != '┌' || row[47] != '┐' || row[20] != '─' {
		t.Fatalf("top edge = %q", lines[6])
	}
	if bottom := []rune(lines[17]); bottom[16] != '└' || bottom[47] != '┘' {
		t.Fatalf("bottom edge = %q", lines[17])
	}
	if mid := []rune(lines[10]); mid[16] != '│' || mid[30] != '@' || mid[0] != '@' {
		t.Fatalf("middle row = %q", lines[10])
	}
}

func TestRenderWithoutFrame(t *testing.T) {
	out := plain(Render(64, 24, nil, 640, 480, 0.5, nil))
	if !strings.Contains(out, "┌") || strings.Contains(out, "@") {
		t.Fatalf("empty viewfinder = %q", out)
	}
	if Render(2, 2, nil, 640, 480, 0.5, nil) != "" {
		t.Fatal("too small viewfinder must render nothing")
	}
}

func TestScanline(t *testing.T) {
	start := time.Unix(100, 0)
	s := &Scanline{StartTime: start}
	s.Update(start.Add(time.Second))
	if s.Pos != 0.5 {
		t.Fatalf("pos = %v, want 0.5", s.Pos)
	}
	if got := s.Row(0, 10); got != 5 {
		t.Fatalf("row = %d, want 5", got)
	}
	tests := []struct {
		row  int
		want float64
	}{
		{5, 1}, {4, 0.75}, {2, 0.25}, {6, 0}, {1, 0},
	}
	for _, tt := range tests {
		if got := s.Intensity(tt.row, 0, 10); got != tt.want {
			t.Fatalf("Intensity(%d) = %v, want %v", tt.row, got, tt.want)
		}
	}
	s.Update(start.Add(2 * time.Second))
	if s.Pos != 0 {
		t.Fatalf("pos after full sweep = %v", s.Pos)
	}
}

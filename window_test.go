package rasterlib

import "testing"

func TestBlockWindowsCoverage(t *testing.T) {
	const (
		w  = 100
		h  = 50
		bx = 32
		by = 32
	)
	wins := blockWindows(w, h, bx, by)
	if len(wins) != 4*2 {
		t.Fatalf("unexpected window count: %d", len(wins))
	}
	covered := make([]int, w*h)
	for _, win := range wins {
		if win.XOff < 0 || win.YOff < 0 || win.XOff+win.XSize > w || win.YOff+win.YSize > h {
			t.Fatalf("window out of bounds: %v", win)
		}
		if win.XSize <= 0 || win.YSize <= 0 {
			t.Fatalf("empty window: %v", win)
		}
		for y := win.YOff; y < win.YOff+win.YSize; y++ {
			for x := win.XOff; x < win.XOff+win.XSize; x++ {
				covered[y*w+x]++
			}
		}
	}
	for i, c := range covered {
		if c != 1 {
			t.Fatalf("cell %d covered %d times", i, c)
		}
	}
}

func TestBlockWindowsRowMajor(t *testing.T) {
	wins := blockWindows(1300, 700, 512, 512)
	if len(wins) != 3*2 {
		t.Fatalf("unexpected window count: %d", len(wins))
	}
	for i := 1; i < len(wins); i++ {
		prev, cur := wins[i-1], wins[i]
		if cur.YOff < prev.YOff || (cur.YOff == prev.YOff && cur.XOff <= prev.XOff) {
			t.Fatalf("windows not row major at %d: %v -> %v", i, prev, cur)
		}
	}
	last := wins[len(wins)-1]
	if last.XOff+last.XSize != 1300 || last.YOff+last.YSize != 700 {
		t.Fatalf("last window does not reach raster corner: %v", last)
	}
}

func TestBlockWindowsSmallRaster(t *testing.T) {
	wins := blockWindows(100, 100, 512, 512)
	if len(wins) != 1 {
		t.Fatalf("unexpected window count: %d", len(wins))
	}
	if wins[0] != (Window{0, 0, 100, 100}) {
		t.Fatalf("unexpected window: %v", wins[0])
	}
}

func TestBlockWindowsDegenerate(t *testing.T) {
	if wins := blockWindows(0, 100, 512, 512); len(wins) != 0 {
		t.Fatalf("expected no windows, got %d", len(wins))
	}
	if wins := blockWindows(100, 100, 0, 512); len(wins) != 0 {
		t.Fatalf("expected no windows, got %d", len(wins))
	}
}

package msdf

import "testing"

func renderSquare(t *testing.T, kind Kind) *FloatImage {
	t.Helper()
	s := squareShape(0, 0, 10, 10)
	if kind.UsesEdgeColors() {
		EdgeColoringInkTrap(s, DefaultAngleThreshold, 0)
	}
	img := NewFloatImage(14, 14, kind.Channels())
	Render(img, kind, s, Projection{Scale: 1, Translate: Point{2, 2}}, 4)
	return img
}

func sampleValue(img *FloatImage, kind Kind, x, y int) float64 {
	px := img.Pix[img.PixOffset(x, y):]
	if kind == KindMSDF || kind == KindMTSDF {
		return median(float64(px[0]), float64(px[1]), float64(px[2]))
	}
	return float64(px[0])
}

func TestRender_InsideOutside(t *testing.T) {
	kinds := []Kind{KindHardMask, KindSoftMask, KindSDF, KindPSDF, KindMSDF, KindMTSDF}
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			img := renderSquare(t, kind)
			if v := sampleValue(img, kind, 7, 7); v <= 0.5 {
				t.Errorf("center value = %v, want > 0.5", v)
			}
			if v := sampleValue(img, kind, 0, 0); v >= 0.5 {
				t.Errorf("corner value = %v, want < 0.5", v)
			}
			if v := sampleValue(img, kind, 13, 7); v >= 0.5 {
				t.Errorf("right margin value = %v, want < 0.5", v)
			}
		})
	}
}

func TestRender_SDFValues(t *testing.T) {
	img := renderSquare(t, KindSDF)
	// Pixel (7,7) samples (5.5, 4.5): 4.5 units from the nearest side.
	if v := float64(img.Pix[img.PixOffset(7, 7)]); !near(v, 0.5+4.5/4, 1e-6) {
		t.Errorf("SDF(7,7) = %v, want %v", v, 0.5+4.5/4)
	}
	// Pixel (7,2) samples (5.5, 9.5): half a unit inside the top side.
	if v := float64(img.Pix[img.PixOffset(7, 2)]); !near(v, 0.5+0.5/4, 1e-6) {
		t.Errorf("SDF(7,2) = %v, want %v", v, 0.5+0.5/4)
	}
}

func TestRender_MTSDFAlphaIsTrueDistance(t *testing.T) {
	sdf := renderSquare(t, KindSDF)
	mtsdf := renderSquare(t, KindMTSDF)
	for y := range sdf.Height {
		for x := range sdf.Width {
			want := sdf.Pix[sdf.PixOffset(x, y)]
			got := mtsdf.Pix[mtsdf.PixOffset(x, y)+3]
			if !near(float64(got), float64(want), 1e-6) {
				t.Fatalf("alpha(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRender_HardMaskIsBinary(t *testing.T) {
	img := renderSquare(t, KindHardMask)
	for i, v := range img.Pix {
		if v != 0 && v != 1 {
			t.Fatalf("pixel %d = %v, want 0 or 1", i, v)
		}
	}
}

func TestWinding_NonzeroRule(t *testing.T) {
	outer := squareShape(0, 0, 10, 10)

	// A clockwise inner square cuts a hole.
	b := NewBuilder()
	b.MoveTo(2, 2)
	b.LineTo(2, 8)
	b.LineTo(8, 8)
	b.LineTo(8, 2)
	holed := &Shape{Contours: append(outer.Clone().Contours, b.Shape().Contours...)}

	// A counter-clockwise inner square overlaps and stays filled.
	overlapped := &Shape{Contours: append(outer.Clone().Contours, squareShape(2, 2, 8, 8).Contours...)}

	tests := []struct {
		name  string
		shape *Shape
		p     Point
		want  bool
	}{
		{"outer body", outer, Point{5, 5}, true},
		{"outside", outer, Point{11, 5}, false},
		{"hole", holed, Point{5, 5}, false},
		{"ring", holed, Point{1, 5}, true},
		{"overlap", overlapped, Point{5, 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newWinding(tt.shape).contains(tt.p); got != tt.want {
				t.Errorf("contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestKind_Channels(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindHardMask, 1},
		{KindSoftMask, 1},
		{KindSDF, 1},
		{KindPSDF, 1},
		{KindMSDF, 3},
		{KindMTSDF, 4},
	}
	for _, tt := range tests {
		if got := tt.kind.Channels(); got != tt.want {
			t.Errorf("%v.Channels() = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

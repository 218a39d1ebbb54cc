package msdf

import "testing"

func TestEdge_LinearSignedDistance(t *testing.T) {
	e := NewLinearEdge(Point{0, 0}, Point{10, 0})

	tests := []struct {
		name      string
		p         Point
		wantDist  float64
		wantParam float64
	}{
		{"left side", Point{5, 2}, 2, 0.5},
		{"right side", Point{5, -3}, -3, 0.5},
		{"behind start", Point{-3, 4}, 5, -0.3},
		{"past end", Point{13, -4}, -5, 1.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sd, param := e.SignedDistance(tt.p)
			if !near(sd.Distance, tt.wantDist, 1e-9) {
				t.Errorf("Distance = %v, want %v", sd.Distance, tt.wantDist)
			}
			if !near(param, tt.wantParam, 1e-9) {
				t.Errorf("param = %v, want %v", param, tt.wantParam)
			}
		})
	}
}

func TestEdge_DistanceToPseudoDistance(t *testing.T) {
	e := NewLinearEdge(Point{0, 0}, Point{10, 0})
	p := Point{-3, 4}

	sd, param := e.SignedDistance(p)
	e.DistanceToPseudoDistance(&sd, p, param)

	if !near(sd.Distance, 4, 1e-9) {
		t.Errorf("pseudo distance = %v, want 4", sd.Distance)
	}
	if sd.Dot != 0 {
		t.Errorf("Dot = %v, want 0", sd.Dot)
	}
}

func TestEdge_QuadraticSignedDistance(t *testing.T) {
	e := NewQuadraticEdge(Point{0, 0}, Point{5, 10}, Point{10, 0})

	sd, param := e.SignedDistance(Point{5, 7})
	if !near(sd.Distance, 2, 1e-9) {
		t.Errorf("Distance = %v, want 2", sd.Distance)
	}
	if !near(param, 0.5, 1e-9) {
		t.Errorf("param = %v, want 0.5", param)
	}

	sd, _ = e.SignedDistance(Point{5, 3})
	if !near(sd.Distance, -2, 1e-9) {
		t.Errorf("Distance below apex = %v, want -2", sd.Distance)
	}
}

func TestEdge_CubicSignedDistance(t *testing.T) {
	e := NewCubicEdge(Point{0, 0}, Point{0, 10}, Point{10, 10}, Point{10, 0})

	sd, _ := e.SignedDistance(Point{5, 9.5})
	if !near(sd.Distance, 2, 1e-6) {
		t.Errorf("Distance = %v, want 2", sd.Distance)
	}
}

func TestEdge_Bounds(t *testing.T) {
	tests := []struct {
		name string
		edge Edge
		want Rect
	}{
		{"linear", NewLinearEdge(Point{3, 4}, Point{1, 8}), Rect{1, 4, 3, 8}},
		{"quadratic apex", NewQuadraticEdge(Point{0, 0}, Point{5, 10}, Point{10, 0}), Rect{0, 0, 10, 5}},
		{"cubic arch", NewCubicEdge(Point{0, 0}, Point{0, 10}, Point{10, 10}, Point{10, 0}), Rect{0, 0, 10, 7.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.edge.Bounds()
			if !near(got.MinX, tt.want.MinX, 1e-9) || !near(got.MinY, tt.want.MinY, 1e-9) ||
				!near(got.MaxX, tt.want.MaxX, 1e-9) || !near(got.MaxY, tt.want.MaxY, 1e-9) {
				t.Errorf("Bounds() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEdge_SplitInThirds(t *testing.T) {
	edges := []Edge{
		NewLinearEdge(Point{0, 0}, Point{9, 3}),
		NewQuadraticEdge(Point{0, 0}, Point{5, 10}, Point{10, 0}),
		NewCubicEdge(Point{0, 0}, Point{0, 10}, Point{10, 10}, Point{10, 0}),
	}

	for _, e := range edges {
		t.Run(e.Type.String(), func(t *testing.T) {
			e.Color = ColorMagenta
			parts := e.SplitInThirds()
			checkpoints := []float64{1.0 / 3, 2.0 / 3, 1}
			for i, part := range parts {
				if part.Type != e.Type || part.Color != e.Color {
					t.Errorf("part %d = %v/%v, want %v/%v", i, part.Type, part.Color, e.Type, e.Color)
				}
				want := e.PointAt(checkpoints[i])
				got := part.EndPoint()
				if !near(got.X, want.X, 1e-9) || !near(got.Y, want.Y, 1e-9) {
					t.Errorf("part %d ends at %v, want %v", i, got, want)
				}
			}
			if parts[0].StartPoint() != e.StartPoint() {
				t.Errorf("first part starts at %v, want %v", parts[0].StartPoint(), e.StartPoint())
			}
		})
	}
}

package msdf

import "testing"

var coloringFuncs = []struct {
	name string
	fn   ColoringFunc
}{
	{"simple", EdgeColoringSimple},
	{"inktrap", EdgeColoringInkTrap},
}

func TestColoring_SquareCornersDiffer(t *testing.T) {
	for _, cf := range coloringFuncs {
		t.Run(cf.name, func(t *testing.T) {
			for seed := range uint64(64) {
				s := squareShape(0, 0, 10, 10)
				cf.fn(s, DefaultAngleThreshold, seed)

				edges := s.Contours[0].Edges
				for i := range edges {
					c, next := edges[i].Color, edges[(i+1)%len(edges)].Color
					if bitCount(c) != 2 {
						t.Fatalf("seed %d: edge %d color %v, want two channels", seed, i, c)
					}
					if c == next {
						t.Fatalf("seed %d: edges %d and %d share color %v at a corner", seed, i, (i+1)%len(edges), c)
					}
				}
			}
		})
	}
}

func TestColoring_SmoothContourSingleColor(t *testing.T) {
	for _, cf := range coloringFuncs {
		t.Run(cf.name, func(t *testing.T) {
			s := circleShape(0, 0, 10)
			cf.fn(s, DefaultAngleThreshold, 7)

			edges := s.Contours[0].Edges
			for i := range edges {
				if edges[i].Color != edges[0].Color {
					t.Errorf("edge %d color %v, want %v", i, edges[i].Color, edges[0].Color)
				}
			}
			if bitCount(edges[0].Color) != 2 {
				t.Errorf("color %v, want two channels", edges[0].Color)
			}
		})
	}
}

func TestColoring_TeardropSplitsSingleEdge(t *testing.T) {
	b := NewBuilder()
	b.MoveTo(0, 0)
	b.CubeTo(10, 10, -10, 10, 0, 0)
	s := b.Shape()
	if s.EdgeCount() != 1 {
		t.Fatalf("EdgeCount() = %d, want 1", s.EdgeCount())
	}

	EdgeColoringSimple(s, DefaultAngleThreshold, 3)

	edges := s.Contours[0].Edges
	if len(edges) != 3 {
		t.Fatalf("edge count after coloring = %d, want 3", len(edges))
	}
	if edges[1].Color != ColorWhite {
		t.Errorf("middle third color = %v, want White", edges[1].Color)
	}
	if edges[0].Color == edges[2].Color {
		t.Errorf("thirds around the corner share color %v", edges[0].Color)
	}
}

func TestColoring_Deterministic(t *testing.T) {
	for _, cf := range coloringFuncs {
		t.Run(cf.name, func(t *testing.T) {
			a := squareShape(0, 0, 10, 10)
			a.Contours = append(a.Contours, circleShape(20, 20, 4).Contours...)
			b := a.Clone()

			cf.fn(a, DefaultAngleThreshold, 0xDEADBEEF)
			cf.fn(b, DefaultAngleThreshold, 0xDEADBEEF)

			for ci := range a.Contours {
				for ei := range a.Contours[ci].Edges {
					if a.Contours[ci].Edges[ei].Color != b.Contours[ci].Edges[ei].Color {
						t.Fatalf("contour %d edge %d differs between runs", ci, ei)
					}
				}
			}
		})
	}
}

func TestSymmetricalTrichotomy(t *testing.T) {
	got := make([]int, 5)
	for i := range got {
		got[i] = symmetricalTrichotomy(i, 5)
	}
	want := []int{-1, -1, 0, 1, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("symmetricalTrichotomy(_, 5) = %v, want %v", got, want)
		}
	}
}

func TestSwitchColor_BannedChannel(t *testing.T) {
	color := ColorCyan
	seed := uint64(0)
	switchColor(&color, &seed, ColorMagenta)
	if color != ColorYellow {
		t.Errorf("switchColor(Cyan, banned Magenta) = %v, want Yellow", color)
	}
}

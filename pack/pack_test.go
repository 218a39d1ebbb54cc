package pack

import (
	"math/rand/v2"
	"testing"
)

func TestPacker_PlacesInOrder(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		rects []Rectangle
		want  []Rectangle
	}{
		{
			name:  "single exact fit",
			w:     16, h: 16,
			rects: []Rectangle{{W: 16, H: 16}},
			want:  []Rectangle{{0, 0, 16, 16}},
		},
		{
			name:  "four quarters",
			w:     16, h: 16,
			rects: []Rectangle{{W: 8, H: 8}, {W: 8, H: 8}, {W: 8, H: 8}, {W: 8, H: 8}},
			want:  []Rectangle{{0, 0, 8, 8}, {0, 8, 8, 8}, {8, 0, 8, 8}, {8, 8, 8, 8}},
		},
		{
			name:  "repack after grow",
			w:     32, h: 32,
			rects: []Rectangle{{W: 8, H: 8}, {W: 8, H: 8}, {W: 8, H: 8}},
			want:  []Rectangle{{0, 0, 8, 8}, {0, 8, 8, 8}, {0, 16, 8, 8}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.w, tt.h)
			rects := append([]Rectangle(nil), tt.rects...)
			if remaining := p.Pack(rects); remaining != 0 {
				t.Fatalf("Pack() remaining = %d, want 0", remaining)
			}
			for i := range rects {
				if rects[i] != tt.want[i] {
					t.Errorf("rect %d = %+v, want %+v", i, rects[i], tt.want[i])
				}
			}
		})
	}
}

func TestPacker_RemainingIsSuffix(t *testing.T) {
	p := New(10, 10)
	// The 2x2 would fit after the 8x8, but packing stops at the 5x5.
	rects := []Rectangle{{W: 8, H: 8}, {W: 5, H: 5}, {W: 2, H: 2}}
	if got := p.Pack(rects); got != 2 {
		t.Fatalf("Pack() = %d, want 2", got)
	}
	if rects[0].X != 0 || rects[0].Y != 0 {
		t.Errorf("first rect at (%d,%d), want (0,0)", rects[0].X, rects[0].Y)
	}
}

func TestPacker_EmptyPackerFitsNothing(t *testing.T) {
	p := New(0, 0)
	rects := []Rectangle{{W: 1, H: 1}, {W: 2, H: 2}}
	if got := p.Pack(rects); got != 2 {
		t.Errorf("Pack() = %d, want 2", got)
	}
	if len(p.FreeSpaces()) != 0 {
		t.Errorf("FreeSpaces() = %v, want none", p.FreeSpaces())
	}
}

func TestPacker_ZeroAreaRect(t *testing.T) {
	p := New(4, 4)
	rects := []Rectangle{{W: 4, H: 4}, {W: 0, H: 3}}
	if got := p.Pack(rects); got != 0 {
		t.Fatalf("Pack() = %d, want 0", got)
	}
	if rects[1].X != 0 || rects[1].Y != 0 {
		t.Errorf("zero-area rect at (%d,%d), want (0,0)", rects[1].X, rects[1].Y)
	}
}

func TestPacker_Expand(t *testing.T) {
	p := New(17, 17)
	rects := []Rectangle{{W: 11, H: 11}, {W: 7, H: 7}}
	if got := p.Pack(rects); got != 1 {
		t.Fatalf("Pack() = %d, want 1", got)
	}

	p.Expand(33, 33)
	if w, h := p.Size(); w != 33 || h != 33 {
		t.Fatalf("Size() = %dx%d, want 33x33", w, h)
	}
	if got := p.Pack(rects[1:]); got != 0 {
		t.Fatalf("Pack() after Expand = %d, want 0", got)
	}
	if rects[0].X != 0 || rects[0].Y != 0 {
		t.Errorf("first rect moved to (%d,%d)", rects[0].X, rects[0].Y)
	}
	if rects[1].X != 17 || rects[1].Y != 0 {
		t.Errorf("second rect at (%d,%d), want (17,0)", rects[1].X, rects[1].Y)
	}
}

func TestPacker_ExpandSmallerIsNoop(t *testing.T) {
	p := New(8, 8)
	before := p.FreeSpaces()
	p.Expand(4, 4)
	if w, h := p.Size(); w != 8 || h != 8 {
		t.Errorf("Size() = %dx%d, want 8x8", w, h)
	}
	if len(p.FreeSpaces()) != len(before) {
		t.Errorf("FreeSpaces() changed: %v -> %v", before, p.FreeSpaces())
	}
}

func TestPacker_Clone(t *testing.T) {
	p := New(16, 16)
	c := p.Clone()
	c.Pack([]Rectangle{{W: 16, H: 16}})

	if len(p.FreeSpaces()) != 1 {
		t.Errorf("cloned-from FreeSpaces() = %v, want untouched", p.FreeSpaces())
	}
	if len(c.FreeSpaces()) != 0 {
		t.Errorf("clone FreeSpaces() = %v, want none", c.FreeSpaces())
	}
}

func TestPacker_NoOverlapInBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for round := range 20 {
		const side = 128
		p := New(side, side)
		rects := make([]Rectangle, 60)
		for i := range rects {
			rects[i] = Rectangle{W: 1 + rng.IntN(24), H: 1 + rng.IntN(24)}
		}

		placed := len(rects) - p.Pack(rects)
		for i := range placed {
			r := rects[i]
			if r.X < 0 || r.Y < 0 || r.X+r.W > side || r.Y+r.H > side {
				t.Fatalf("round %d: rect %d %+v out of bounds", round, i, r)
			}
			for j := range i {
				if r.Overlaps(rects[j]) {
					t.Fatalf("round %d: rect %d %+v overlaps rect %d %+v", round, i, r, j, rects[j])
				}
			}
		}
	}
}

package atlas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/msdfatlas/internal/parallel"
	"github.com/gogpu/msdfatlas/msdf"
)

func TestGlyphSeed(t *testing.T) {
	assert.Equal(t, uint64(0), GlyphSeed(0, 5))
	seed := uint64(3)
	assert.Equal(t, LCGMultiplier*(seed^1)+LCGIncrement, GlyphSeed(3, 1))
}

func TestColorBatch_Cheap(t *testing.T) {
	glyphs := []*fakeGlyph{{w: 1, h: 1}, {whitespace: true}, {w: 1, h: 1}}
	colorBatch(glyphs, Coloring{Func: msdf.EdgeColoringSimple, Seed: 3}, nil, 1)

	seed := uint64(3)
	s1 := seed * LCGMultiplier
	s3 := s1 * LCGMultiplier * LCGMultiplier
	assert.Equal(t, []uint64{s1}, glyphs[0].seeds)
	assert.Empty(t, glyphs[1].seeds)
	assert.Equal(t, []uint64{s3}, glyphs[2].seeds)
}

func TestColorBatch_ExpensiveIndependentOfThreads(t *testing.T) {
	pool := parallel.NewWorkerPool(4)
	defer pool.Close()

	run := func(threads int) []*fakeGlyph {
		glyphs := boxes(40, 1, 1)
		glyphs[7].whitespace = true
		c := Coloring{Func: msdf.EdgeColoringInkTrap, Seed: 42, Expensive: true}
		colorBatch(glyphs, c, pool, threads)
		return glyphs
	}

	one, four := run(1), run(4)
	for i := range one {
		if i == 7 {
			assert.Empty(t, one[i].seeds)
			assert.Empty(t, four[i].seeds)
			continue
		}
		require.Len(t, one[i].seeds, 1)
		assert.Equal(t, GlyphSeed(42, i), one[i].seeds[0])
		assert.Equal(t, one[i].seeds, four[i].seeds)
	}
}

func TestColorBatch_Disabled(t *testing.T) {
	glyphs := boxes(3, 1, 1)
	colorBatch(glyphs, Coloring{Seed: 9}, nil, 1)
	for _, g := range glyphs {
		assert.Empty(t, g.seeds)
	}
}

func TestAdd_ColorsOnlyNewGlyphs(t *testing.T) {
	a, _ := newAtlas(t, Options{
		Coloring: Coloring{Func: msdf.EdgeColoringSimple, Seed: 1, Expensive: true},
		Threads:  3,
	})
	first := boxes(2, 4, 4)
	_, err := a.Add(first, true)
	require.NoError(t, err)
	second := boxes(30, 4, 4)
	_, err = a.Add(second, true)
	require.NoError(t, err)

	for _, g := range first {
		assert.Len(t, g.seeds, 1)
	}
	for i, g := range second {
		assert.Equal(t, []uint64{GlyphSeed(1, i)}, g.seeds)
	}
}

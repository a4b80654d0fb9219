package tensor

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packed(t *testing.T, dims ...int) Geometry {
	t.Helper()
	g, err := PackedGeometry(Shape(dims))
	require.NoError(t, err)
	return g
}

func TestPackedGeometry(t *testing.T) {
	g := packed(t, 2, 3, 4)
	require.Equal(t, Shape{2, 3, 4}, g.Shape)
	require.Equal(t, []int{12, 4, 1}, g.Strides)
	require.Equal(t, 0, g.Offset)

	_, err := PackedGeometry(Shape{2, 0})
	require.ErrorIs(t, err, ErrInvalidShape)
}

func TestIndexString(t *testing.T) {
	assert.Equal(t, "3", Point(3).String())
	assert.Equal(t, "1...4", Interval(1, 4).String())
	assert.Equal(t, ":", All.String())
	assert.Equal(t, ":", Index{}.String(), "zero value selects everything")
	assert.Equal(t, "[1, 0...2, :]", formatSpecs([]Index{Point(1), Interval(0, 2), All}))
}

func TestComputeSliceGeometry(t *testing.T) {
	base := packed(t, 5, 5, 5)
	tests := []struct {
		name    string
		specs   []Index
		shape   Shape
		strides []int
		offset  int
	}{
		{"all", []Index{All, All, All}, Shape{5, 5, 5}, []int{25, 5, 1}, 0},
		{"leading interval", []Index{Interval(1, 4), All, All}, Shape{4, 5, 5}, []int{25, 5, 1}, 25},
		{"points keep size 1", []Index{Point(1), Point(4), All}, Shape{1, 1, 5}, []int{25, 5, 1}, 45},
		{"mixed", []Index{Interval(3, 3), Interval(2, 3), Interval(2, 3)}, Shape{1, 2, 2}, []int{25, 5, 1}, 87},
		{"inner interval", []Index{All, Interval(3, 4), All}, Shape{5, 2, 5}, []int{25, 5, 1}, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ComputeSliceGeometry(base, tt.specs)
			require.NoError(t, err)
			require.Equal(t, tt.shape, g.Shape)
			require.Equal(t, tt.strides, g.Strides)
			require.Equal(t, tt.offset, g.Offset)
		})
	}
}

func TestComputeSliceGeometry_Composes(t *testing.T) {
	base := packed(t, 4, 6, 8)
	first, err := ComputeSliceGeometry(base, []Index{Interval(1, 3), All, Interval(2, 7)})
	require.NoError(t, err)
	second, err := ComputeSliceGeometry(first, []Index{Point(2), Interval(1, 4), Interval(3, 5)})
	require.NoError(t, err)

	require.Equal(t, Shape{1, 4, 3}, second.Shape)
	// Origin of the second view is base[3, 1, 5].
	want, err := base.FlatIndex(3, 1, 5)
	require.NoError(t, err)
	require.Equal(t, want, second.Offset)
}

func TestComputeSliceGeometry_Errors(t *testing.T) {
	base := packed(t, 5, 5, 5)
	tests := []struct {
		name  string
		specs []Index
	}{
		{"too few", []Index{All, All}},
		{"too many", []Index{All, All, All, All}},
		{"point past end", []Index{Point(5), All, All}},
		{"negative point", []Index{All, Point(-1), All}},
		{"interval past end", []Index{All, All, Interval(3, 5)}},
		{"negative interval", []Index{Interval(-1, 2), All, All}},
		{"reversed interval", []Index{Interval(3, 2), All, All}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeSliceGeometry(base, tt.specs)
			require.ErrorIs(t, err, ErrIndexOutOfBounds)
		})
	}
}

func TestFlatIndex(t *testing.T) {
	g := packed(t, 5, 5, 5)
	flat, err := g.FlatIndex(0, 1, 1)
	require.NoError(t, err)
	require.Equal(t, 6, flat)

	flat, err = g.FlatIndex(4, 4, 4)
	require.NoError(t, err)
	require.Equal(t, 124, flat)

	_, err = g.FlatIndex(0, 5, 0)
	require.ErrorIs(t, err, ErrIndexOutOfBounds)
	_, err = g.FlatIndex(0, 0)
	require.ErrorIs(t, err, ErrIndexOutOfBounds)
	_, err = g.FlatIndex(0, 0, -1)
	require.ErrorIs(t, err, ErrIndexOutOfBounds)

	scalar := packed(t)
	flat, err = scalar.FlatIndex()
	require.NoError(t, err)
	require.Equal(t, 0, flat)
}

func TestIsContiguous(t *testing.T) {
	base := packed(t, 5, 5, 5)
	tests := []struct {
		specs      []Index
		contiguous bool
	}{
		{[]Index{All, All, All}, true},
		{[]Index{Interval(1, 4), All, All}, true},
		{[]Index{Interval(4, 4), Interval(2, 2), Interval(1, 2)}, true},
		{[]Index{Interval(1, 1), Interval(4, 4), All}, true},
		{[]Index{Interval(1, 1), All, All}, true},
		{[]Index{Interval(1, 1), Interval(2, 3), All}, true},
		{[]Index{Point(2), Point(3), Point(4)}, true},
		{[]Index{Point(2), All, Point(4)}, false},
		{[]Index{Interval(1, 2), Interval(3, 4), Interval(1, 1)}, false},
		{[]Index{All, Interval(3, 4), All}, false},
		{[]Index{Interval(1, 1), All, Interval(1, 1)}, false},
		{[]Index{All, Interval(1, 1), Interval(1, 1)}, false},
		{[]Index{Interval(0, 1), All, Interval(0, 3)}, false},
	}

	for _, tt := range tests {
		g, err := ComputeSliceGeometry(base, tt.specs)
		require.NoError(t, err)
		assert.Equal(t, tt.contiguous, g.IsContiguous(), "slice %s -> shape %v", formatSpecs(tt.specs), g.Shape)
	}

	require.True(t, packed(t).IsContiguous(), "scalar")
}

func TestFootprint(t *testing.T) {
	base := packed(t, 4, 3)
	lo, hi := base.Footprint()
	require.Equal(t, 0, lo)
	require.Equal(t, 11, hi)

	g, err := ComputeSliceGeometry(base, []Index{Interval(1, 3), Interval(0, 1)})
	require.NoError(t, err)
	lo, hi = g.Footprint()
	require.Equal(t, 3, lo)
	require.Equal(t, 10, hi)
}

func TestSqueezeGeometry(t *testing.T) {
	g, err := ComputeSliceGeometry(packed(t, 2, 2, 2, 2), []Index{Point(1), All, Point(0), All})
	require.NoError(t, err)
	sq := g.Squeeze()
	require.Equal(t, Shape{2, 2}, sq.Shape)
	require.Equal(t, []int{4, 1}, sq.Strides)
	require.Equal(t, 8, sq.Offset)
}

func TestIterate(t *testing.T) {
	g, err := ComputeSliceGeometry(packed(t, 3, 4), []Index{Interval(1, 2), Interval(1, 2)})
	require.NoError(t, err)

	var collect [][]int
	var offsets []int
	g.iterate(make([]int, g.Rank()), func(flat int, indices []int) bool {
		collect = append(collect, slices.Clone(indices))
		offsets = append(offsets, flat)
		return true
	})
	require.Equal(t, [][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, collect)
	require.Equal(t, []int{5, 6, 9, 10}, offsets)

	// Trivial axes are never stepped.
	g, err = ComputeSliceGeometry(packed(t, 3, 2, 4), []Index{All, Point(1), Point(3)})
	require.NoError(t, err)
	offsets = offsets[:0]
	g.forEachOffset(func(flat int) bool {
		offsets = append(offsets, flat)
		return true
	})
	require.Equal(t, []int{7, 15, 23}, offsets)

	// Early stop.
	count := 0
	packed(t, 5, 5).forEachOffset(func(int) bool {
		count++
		return count < 3
	})
	require.Equal(t, 3, count)
}

func TestCursor(t *testing.T) {
	g, err := ComputeSliceGeometry(packed(t, 2, 3, 4), []Index{All, Interval(1, 2), Interval(1, 3)})
	require.NoError(t, err)

	var want []int
	g.forEachOffset(func(flat int) bool {
		want = append(want, flat)
		return true
	})

	// A cursor started anywhere visits the same positions as a full walk from there on.
	for start := range want {
		c := newCursor(g, start)
		for i := start; i < len(want); i++ {
			require.Equal(t, want[i], c.flat, "start=%d, i=%d", start, i)
			c.next()
		}
	}
}

func TestParseSpecs(t *testing.T) {
	specs, err := ParseSpecs("[1...4, :, 2]")
	require.NoError(t, err)
	require.Equal(t, []Index{Interval(1, 4), All, Point(2)}, specs)
	require.Equal(t, "[1...4, :, 2]", formatSpecs(specs))

	specs, err = ParseSpecs("0,0...1")
	require.NoError(t, err)
	require.Equal(t, []Index{Point(0), Interval(0, 1)}, specs)

	specs, err = ParseSpecs("")
	require.NoError(t, err)
	require.Empty(t, specs)

	for _, bad := range []string{"a", "1...", "...2", "1,,2", "1..2"} {
		_, err = ParseSpecs(bad)
		require.Error(t, err, "input %q", bad)
	}
}

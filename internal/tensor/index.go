package tensor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type indexKind uint8

const (
	allKind indexKind = iota
	pointKind
	intervalKind
)

// Index selects part of one dimension when slicing.
//
// It is one of three variants:
//   - Point(i): the single position i. The dimension is kept with size 1.
//   - Interval(lo, hi): the closed range lo...hi, both ends inclusive.
//   - All: the whole dimension.
//
// The zero value is All.
type Index struct {
	kind   indexKind
	lo, hi int
}

// All selects a whole dimension.
var All = Index{kind: allKind}

// Point selects a single position along a dimension.
func Point(i int) Index {
	return Index{kind: pointKind, lo: i, hi: i}
}

// Interval selects the closed range [lo, hi] along a dimension.
func Interval(lo, hi int) Index {
	return Index{kind: intervalKind, lo: lo, hi: hi}
}

// Points converts plain positions into Point indices.
func Points(indices ...int) []Index {
	specs := make([]Index, len(indices))
	for i, idx := range indices {
		specs[i] = Point(idx)
	}
	return specs
}

// IsAll reports whether the index selects the whole dimension.
func (ix Index) IsAll() bool { return ix.kind == allKind }

// IsPoint reports whether the index is a single position.
func (ix Index) IsPoint() bool { return ix.kind == pointKind }

// IsInterval reports whether the index is a closed interval.
func (ix Index) IsInterval() bool { return ix.kind == intervalKind }

// Bounds returns the inclusive range selected on a dimension of the given size.
func (ix Index) Bounds(size int) (lo, hi int) {
	if ix.kind == allKind {
		return 0, size - 1
	}
	return ix.lo, ix.hi
}

// String renders a point as "i", an interval as "lo...hi" and All as ":".
func (ix Index) String() string {
	switch ix.kind {
	case pointKind:
		return fmt.Sprintf("%d", ix.lo)
	case intervalKind:
		return fmt.Sprintf("%d...%d", ix.lo, ix.hi)
	default:
		return ":"
	}
}

func formatSpecs(specs []Index) string {
	parts := make([]string, len(specs))
	for i, ix := range specs {
		parts[i] = ix.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ParseIndex parses the String form of an Index: "i", "lo...hi" or ":".
func ParseIndex(s string) (Index, error) {
	s = strings.TrimSpace(s)
	if s == ":" {
		return All, nil
	}
	if lo, hi, found := strings.Cut(s, "..."); found {
		l, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return Index{}, errors.Wrapf(err, "invalid interval start in %q", s)
		}
		h, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return Index{}, errors.Wrapf(err, "invalid interval end in %q", s)
		}
		return Interval(l, h), nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return Index{}, errors.Wrapf(err, "invalid index %q", s)
	}
	return Point(i), nil
}

// ParseSpecs parses a comma-separated list of indices, e.g. "1...4, :, 2".
// Surrounding brackets are optional.
func ParseSpecs(s string) ([]Index, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	specs := make([]Index, len(parts))
	for i, part := range parts {
		ix, err := ParseIndex(part)
		if err != nil {
			return nil, err
		}
		specs[i] = ix
	}
	return specs, nil
}

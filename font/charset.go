package font

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Charset is an immutable set of code points.
type Charset struct {
	table *unicode.RangeTable
}

// defaultTable covers Basic Latin, Latin-1, Cyrillic with its supplement and
// both Cyrillic extensions.
var defaultTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0020, Hi: 0x00FF, Stride: 1},
		{Lo: 0x0400, Hi: 0x052F, Stride: 1},
		{Lo: 0x2DE0, Hi: 0x2DFF, Stride: 1},
		{Lo: 0xA640, Hi: 0xA69F, Stride: 1},
	},
	LatinOffset: 1,
}

// DefaultCharset returns the charset loaded when none is configured.
func DefaultCharset() Charset {
	return Charset{table: defaultTable}
}

// ASCIICharset returns the printable ASCII range U+0020 to U+007E.
func ASCIICharset() Charset {
	return Charset{table: &unicode.RangeTable{
		R16:         []unicode.Range16{{Lo: 0x20, Hi: 0x7E, Stride: 1}},
		LatinOffset: 1,
	}}
}

// NewCharset returns the union of the given tables.
func NewCharset(tables ...*unicode.RangeTable) Charset {
	return Charset{table: rangetable.Merge(tables...)}
}

// CharsetOf returns a charset holding exactly the given runes.
func CharsetOf(runes ...rune) Charset {
	return Charset{table: rangetable.New(runes...)}
}

// Union returns a charset holding the code points of both sets.
func (c Charset) Union(other Charset) Charset {
	return NewCharset(c.Table(), other.Table())
}

// Table returns the underlying range table.
func (c Charset) Table() *unicode.RangeTable {
	if c.table == nil {
		return &unicode.RangeTable{}
	}
	return c.table
}

// Contains reports whether r is in the set.
func (c Charset) Contains(r rune) bool {
	return c.table != nil && unicode.Is(c.table, r)
}

// Runes returns the code points in ascending order.
func (c Charset) Runes() []rune {
	var out []rune
	if c.table != nil {
		rangetable.Visit(c.table, func(r rune) {
			out = append(out, r)
		})
	}
	return out
}

// Len returns the number of code points in the set.
func (c Charset) Len() int {
	n := 0
	if c.table == nil {
		return 0
	}
	for _, r := range c.table.R16 {
		n += int((r.Hi-r.Lo)/r.Stride) + 1
	}
	for _, r := range c.table.R32 {
		n += int((r.Hi-r.Lo)/r.Stride) + 1
	}
	return n
}

// String returns the set as comma-separated hex code points and inclusive
// ranges in ascending order, the form ParseCharset accepts. Sets holding the
// same code points give the same string.
func (c Charset) String() string {
	runes := c.Runes()
	var sb strings.Builder
	for i := 0; i < len(runes); {
		j := i
		for j+1 < len(runes) && runes[j+1] == runes[j]+1 {
			j++
		}
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%X", runes[i])
		if j > i {
			fmt.Fprintf(&sb, "-%X", runes[j])
		}
		i = j + 1
	}
	return sb.String()
}

// ParseCharset parses "default", "ascii" or a comma-separated list of code
// points and inclusive ranges written in hex, for example
// "U+0020-U+007E,0x400-0x4FF,20AC".
func ParseCharset(s string) (Charset, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return DefaultCharset(), nil
	case "ascii":
		return ASCIICharset(), nil
	}

	var tables []*unicode.RangeTable
	for item := range strings.SplitSeq(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		loStr, hiStr, isRange := strings.Cut(item, "-")
		lo, err := parseCodepoint(loStr)
		if err != nil {
			return Charset{}, err
		}
		hi := lo
		if isRange {
			if hi, err = parseCodepoint(hiStr); err != nil {
				return Charset{}, err
			}
		}
		if hi < lo {
			return Charset{}, fmt.Errorf("font: invalid charset range %q", item)
		}
		tables = append(tables, &unicode.RangeTable{
			R32: []unicode.Range32{{Lo: uint32(lo), Hi: uint32(hi), Stride: 1}},
		})
	}
	if len(tables) == 0 {
		return Charset{}, fmt.Errorf("font: empty charset %q", s)
	}
	return NewCharset(tables...), nil
}

func parseCodepoint(s string) (rune, error) {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"U+", "u+", "0x", "0X"} {
		s = strings.TrimPrefix(s, prefix)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || v > unicode.MaxRune {
		return 0, fmt.Errorf("font: invalid code point %q", s)
	}
	return rune(v), nil
}

package pattern

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/codeninelabs/cnl-patternlock/gridgraph"
)

// Parse reads a pattern from text such as "0,0 1,1 2,2" or "(0,0)-(1,1)-(2,2)".
// Points are "x,y" pairs; they may be wrapped in parentheses and separated by
// whitespace, ';', '|', '>' or a free-standing '-'; "(a,b)-(c,d)" also works.
// Parse does not validate the pattern rules.
// Errors wrap ErrSyntax.
func Parse(s string) (Pattern, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\r', ';', '|', '>':
			return true
		}
		return false
	})

	out := make(Pattern, 0, len(fields))
	for _, f := range fields {
		if f == "-" {
			continue
		}
		// '-' only joins parenthesised points, so "-1" stays a coordinate.
		for _, tok := range splitDashed(f) {
			p, err := parsePoint(tok)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
	}

	return out, nil
}

// splitDashed splits "(0,0)-(1,1)" into its parenthesised points and leaves
// any other token untouched.
func splitDashed(f string) []string {
	if !strings.Contains(f, ")-(") {
		return []string{f}
	}
	return strings.Split(f, ")-(")
}

func parsePoint(tok string) (gridgraph.Point, error) {
	tok = strings.Trim(tok, "()")
	xs, ys, ok := strings.Cut(tok, ",")
	if !ok {
		return gridgraph.Point{}, fmt.Errorf("%w: %q is not an x,y pair", ErrSyntax, tok)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return gridgraph.Point{}, fmt.Errorf("%w: bad x in %q", ErrSyntax, tok)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return gridgraph.Point{}, fmt.Errorf("%w: bad y in %q", ErrSyntax, tok)
	}
	return gridgraph.Point{X: x, Y: y}, nil
}

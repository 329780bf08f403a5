package topo

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// MaxNodes bounds the node count of a parsed dependency list.
const MaxNodes = 1000

// ErrMalformedEdgeList indicates a dependency list that could not be parsed.
var ErrMalformedEdgeList = errors.New("topo: malformed edge list")

// ParseEdgeList parses a user-supplied dependency list into numeric pairs.
//
// Accepted forms:
//   - JSON: [[0,1],[1,2]]
//   - text: pairs separated by newlines, ';' or ','; each pair is "u->v" or
//     "u v". Blank entries and lines starting with '#' are skipped.
//
// Ids must be non-negative integers. An empty list parses to no edges.
func ParseEdgeList(s string) ([][2]int, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		return parseJSON(s)
	}

	var out [][2]int
	for lineNo, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, tok := range strings.FieldsFunc(line, func(r rune) bool { return r == ';' || r == ',' }) {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			pair, err := parsePair(tok)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo+1)
			}
			out = append(out, pair)
		}
	}

	return out, nil
}

func parsePair(tok string) ([2]int, error) {
	var fields []string
	if strings.Contains(tok, "->") {
		fields = strings.SplitN(tok, "->", 2)
	} else {
		fields = strings.Fields(tok)
	}
	if len(fields) != 2 {
		return [2]int{}, errors.Wrapf(ErrMalformedEdgeList, "%q is not a pair", tok)
	}
	var pair [2]int
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || v < 0 {
			return [2]int{}, errors.Wrapf(ErrMalformedEdgeList, "%q is not a node id", strings.TrimSpace(f))
		}
		pair[i] = v
	}

	return pair, nil
}

func parseJSON(s string) ([][2]int, error) {
	var raw [][]int
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, fmt.Errorf("topo: decode edge list: %w: %w", ErrMalformedEdgeList, err)
	}
	out := make([][2]int, 0, len(raw))
	for i, p := range raw {
		if len(p) != 2 {
			return nil, errors.Wrapf(ErrMalformedEdgeList, "entry %d has %d elements", i, len(p))
		}
		if p[0] < 0 || p[1] < 0 {
			return nil, errors.Wrapf(ErrMalformedEdgeList, "entry %d has a negative id", i)
		}
		out = append(out, [2]int{p[0], p[1]})
	}

	return out, nil
}

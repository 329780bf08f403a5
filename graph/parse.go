package graph

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrMalformedEdge indicates an edge entry that could not be parsed.
var ErrMalformedEdge = errors.New("graph: malformed edge")

// Parse builds a graph from a weighted edge list.
//
// Entries are separated by newlines, ';' or ','. Each entry is one of
//
//	A-B:4    A->B:-2    A B 4    A B
//
// The weight defaults to 1. Node ids may not contain '-', ':' or spaces.
// Lines starting with '#' are skipped. Nodes appear in first-mention order
// and edges in input order, which fixes every later tie-break.
func Parse(text string, opts ...Option) (*Graph, error) {
	g := New(opts...)
	for lineNo, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, tok := range strings.FieldsFunc(line, func(r rune) bool { return r == ';' || r == ',' }) {
			if tok = strings.TrimSpace(tok); tok == "" {
				continue
			}
			u, v, w, err := parseEdge(tok)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo+1)
			}
			if _, err := g.AddEdge(u, v, w); err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo+1)
			}
		}
	}

	return g, nil
}

func parseEdge(tok string) (string, string, int64, error) {
	var weight string
	if i := strings.LastIndex(tok, ":"); i >= 0 {
		tok, weight = tok[:i], strings.TrimSpace(tok[i+1:])
	}

	var fields []string
	switch {
	case strings.Contains(tok, "->"):
		fields = strings.SplitN(tok, "->", 2)
	case strings.Contains(tok, "-"):
		fields = strings.SplitN(tok, "-", 2)
	default:
		fields = strings.Fields(tok)
		if len(fields) == 3 && weight == "" {
			fields, weight = fields[:2], fields[2]
		}
	}
	if len(fields) != 2 {
		return "", "", 0, errors.Wrapf(ErrMalformedEdge, "%q is not an edge", tok)
	}
	u, v := strings.TrimSpace(fields[0]), strings.TrimSpace(fields[1])
	if u == "" || v == "" || strings.ContainsAny(u+v, " \t:") {
		return "", "", 0, errors.Wrapf(ErrMalformedEdge, "%q is not an edge", tok)
	}
	if weight == "" {
		return u, v, 1, nil
	}
	w, err := strconv.ParseInt(weight, 10, 64)
	if err != nil {
		return "", "", 0, errors.Wrapf(ErrMalformedEdge, "%q is not a weight", weight)
	}

	return u, v, w, nil
}

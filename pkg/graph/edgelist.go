package graph

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedLine is returned for edge list lines that cannot be parsed.
var ErrMalformedLine = errors.New("malformed edge list line")

// ReadEdgeList parses a whitespace separated edge list:
//
//	u v [weight]
//
// Blank lines and lines starting with '#' or '%' are ignored. Identifiers are
// opaque strings; a missing weight defaults to DefaultWeight.
func ReadEdgeList(r io.Reader) (*Graph, error) {
	b := NewBuilder()
	if err := ParseEdgeList(r, b); err != nil {
		return nil, err
	}
	return b.Build()
}

// ParseEdgeList feeds the edges found in r into an existing builder, so that
// callers can pre-register node order or isolated nodes.
func ParseEdgeList(r io.Reader, b *Builder) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text[0] == '#' || text[0] == '%' {
			continue
		}

		fields := strings.Fields(text)
		switch len(fields) {
		case 2:
			b.AddUnweightedEdge(fields[0], fields[1])
		case 3:
			w, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return NewError("ReadEdgeList").Line(line).Cause(ErrMalformedLine).
					Context("weight %q", fields[2]).Err()
			}
			b.AddEdge(fields[0], fields[1], w)
		default:
			return NewError("ReadEdgeList").Line(line).Cause(ErrMalformedLine).
				Context("expected 2 or 3 fields, got %d", len(fields)).Err()
		}
	}
	if err := scanner.Err(); err != nil {
		return NewError("ReadEdgeList").Line(line).Cause(err).Err()
	}
	return nil
}

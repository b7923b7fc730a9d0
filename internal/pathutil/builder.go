package pathutil

import "strings"

// PointerBuilder tracks the decoded key path of a document walk.
// Uses push/pop semantics to avoid allocations during traversal.
// The encoded pointer is only materialized when Pointer() is called.
type PointerBuilder struct {
	segments []string
	length   int // Pre-calculated encoded length for Pointer() allocation
}

// Push adds a decoded key to the path.
func (p *PointerBuilder) Push(segment string) {
	p.segments = append(p.segments, segment)
	p.length += 1 + encodedLen(segment)
}

// Pop removes the last segment.
func (p *PointerBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	last := p.segments[len(p.segments)-1]
	p.segments = p.segments[:len(p.segments)-1]
	p.length -= 1 + encodedLen(last)
}

// Reset clears the builder for reuse.
func (p *PointerBuilder) Reset() {
	p.segments = p.segments[:0]
	p.length = 0
}

// Len returns the number of segments.
func (p *PointerBuilder) Len() int {
	return len(p.segments)
}

// Segment returns the decoded segment at index i.
func (p *PointerBuilder) Segment(i int) string {
	return p.segments[i]
}

// Segments returns a copy of the decoded segments.
func (p *PointerBuilder) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// Pointer materializes the encoded JSON Pointer. Only call when needed.
func (p *PointerBuilder) Pointer() string {
	if len(p.segments) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(p.length)
	for _, seg := range p.segments {
		b.WriteByte('/')
		b.WriteString(EncodeFragment(seg))
	}
	return b.String()
}

func encodedLen(s string) int {
	return len(s) + strings.Count(s, "~") + strings.Count(s, "/")
}

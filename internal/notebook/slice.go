package notebook

// Slice returns a copy of d whose cell sequence is the half-open range
// [start:end) of the original, using the same boundary semantics as
// slicing a sequence of len(d.Cells) elements: negative indices count
// from the end, out-of-range indices clamp to the document bounds, and
// start >= end yields an empty cell sequence. A nil end means "to the
// end of the document". All non-cell fields are preserved unchanged.
//
// The result is structurally independent of d; d is never mutated.
func (d *Document) Slice(start int, end *int) *Document {
	lo, hi := sliceBounds(start, end, len(d.Cells))

	out := &Document{
		NBFormat: d.NBFormat,
		Language: d.Language,
		Metadata: cloneMetadata(d.Metadata),
		Cells:    make([]Cell, 0, hi-lo),
	}
	for _, c := range d.Cells[lo:hi] {
		out.Cells = append(out.Cells, c.clone())
	}
	return out
}

// sliceBounds resolves (start, end) against a sequence of length n.
func sliceBounds(start int, end *int, n int) (int, int) {
	lo := clampIndex(start, n)
	hi := n
	if end != nil {
		hi = clampIndex(*end, n)
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// clampIndex normalizes a possibly-negative index to [0, n].
func clampIndex(i, n int) int {
	if i < 0 {
		i += n
		if i < 0 {
			i = 0
		}
	}
	if i > n {
		i = n
	}
	return i
}

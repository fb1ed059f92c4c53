package fix

// TextEdit replaces the bytes [StartOffset, EndOffset) of a text with NewText.
// An empty range is an insertion.
type TextEdit struct {
	StartOffset int
	EndOffset   int
	NewText     string
}

// Len returns the number of original bytes the edit replaces.
func (e TextEdit) Len() int {
	return e.EndOffset - e.StartOffset
}

// Overlaps reports whether two edits share a byte or insert at the same offset.
func (e TextEdit) Overlaps(other TextEdit) bool {
	if e.StartOffset == other.StartOffset {
		return true
	}
	return e.StartOffset < other.EndOffset && other.StartOffset < e.EndOffset
}

// EditSet collects the edits made to one text, all in the text's original
// offsets.
type EditSet struct {
	edits []TextEdit
}

// Replace records the replacement of [start, end) with text.
func (s *EditSet) Replace(start, end int, text string) {
	s.edits = append(s.edits, TextEdit{StartOffset: start, EndOffset: end, NewText: text})
}

// Edits returns the recorded edits in insertion order.
func (s *EditSet) Edits() []TextEdit {
	return s.edits
}

// Len returns the number of recorded edits.
func (s *EditSet) Len() int {
	return len(s.edits)
}

// Apply splices every recorded edit into text.
func (s *EditSet) Apply(text string) (string, error) {
	return SpliceDescending(text, s.edits)
}

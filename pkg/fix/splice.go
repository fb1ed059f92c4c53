package fix

// SpliceDescending applies edits from the highest start offset to the lowest,
// splicing each one into the text produced by the previous splice. Because
// later splices only touch lower offsets, every pending edit's coordinates
// stay valid. Invalid or overlapping edits are rejected before any splice.
func SpliceDescending(text string, edits []TextEdit) (string, error) {
	if len(edits) == 0 {
		return text, nil
	}
	ordered, err := CheckEdits(edits, len(text))
	if err != nil {
		return "", err
	}
	SortEditsDescending(ordered)

	for _, e := range ordered {
		text = text[:e.StartOffset] + e.NewText + text[e.EndOffset:]
	}

	return text, nil
}

package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// RangeError describes an edit whose range does not fit the text.
type RangeError struct {
	Edit   TextEdit
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Reason)
}

// ConflictError describes two overlapping edits.
type ConflictError struct {
	First  TextEdit
	Second TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.StartOffset, e.First.EndOffset,
		e.Second.StartOffset, e.Second.EndOffset)
}

func checkRange(e TextEdit, length int) error {
	switch {
	case e.StartOffset < 0:
		return &RangeError{Edit: e, Reason: "start offset is negative"}
	case e.EndOffset < e.StartOffset:
		return &RangeError{Edit: e, Reason: "end offset is before start offset"}
	case e.EndOffset > length:
		return &RangeError{Edit: e, Reason: fmt.Sprintf("end offset %d exceeds text length %d", e.EndOffset, length)}
	default:
		return nil
	}
}

// CheckEdits verifies that every edit fits a text of the given length and
// that no two edits overlap. It returns a copy ordered by ascending offset.
func CheckEdits(edits []TextEdit, length int) ([]TextEdit, error) {
	for _, e := range edits {
		if err := checkRange(e, length); err != nil {
			return nil, err
		}
	}

	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b TextEdit) int {
		if c := cmp.Compare(a.StartOffset, b.StartOffset); c != 0 {
			return c
		}
		return cmp.Compare(a.EndOffset, b.EndOffset)
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Overlaps(sorted[i]) {
			return nil, &ConflictError{First: sorted[i-1], Second: sorted[i]}
		}
	}
	return sorted, nil
}

// SortEditsDescending orders edits by descending start offset, larger end
// offset first on ties.
func SortEditsDescending(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		if c := cmp.Compare(b.StartOffset, a.StartOffset); c != 0 {
			return c
		}
		return cmp.Compare(b.EndOffset, a.EndOffset)
	})
}

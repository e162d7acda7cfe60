package model

// CursorStack keeps previously seen cursors to navigate back (LIFO).
// The empty string stands for the first page (no cursor).
type CursorStack struct {
	cursors []string
}

// Push adds a cursor to the top.
func (s *CursorStack) Push(cursor string) {
	s.cursors = append(s.cursors, cursor)
}

// Pop removes and returns the top cursor, ok is false for an empty stack.
func (s *CursorStack) Pop() (cursor string, ok bool) {
	if len(s.cursors) == 0 {
		return "", false
	}

	cursor = s.cursors[len(s.cursors)-1]
	s.cursors = s.cursors[:len(s.cursors)-1]

	return cursor, true
}

// Len returns the stack depth.
func (s *CursorStack) Len() int {
	return len(s.cursors)
}

// Clear drops all cursors.
func (s *CursorStack) Clear() {
	s.cursors = nil
}

// Page is a non-negative page index.
type Page int

// Next returns the following page.
func (p Page) Next() Page {
	return p + 1
}

// Prev returns the previous page, ok is false on the first page.
func (p Page) Prev() (Page, bool) {
	if p <= 0 {
		return 0, false
	}

	return p - 1, true
}

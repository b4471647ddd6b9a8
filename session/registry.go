package session

import "sort"

// Registry holds the loaded page of sessions, the cursor into it and the set
// of marked session ids. Marks are keyed by id and outlive page changes and
// refreshes, so a marked id may be absent from the loaded page.
//
// Registry is not safe for concurrent use; the event loop owns it.
type Registry struct {
	page    uint
	records []Record
	hasNext bool
	cursor  int

	marks       map[string]struct{}
	multiSelect bool
}

// NewRegistry returns an empty registry on page 0.
func NewRegistry() *Registry {
	return &Registry{marks: make(map[string]struct{})}
}

// Replace installs a freshly fetched page. The cursor is clamped into the new
// page; marks are untouched.
func (r *Registry) Replace(records []Record, hasNext bool) {
	r.records = records
	r.hasNext = hasNext
	r.clampCursor()
}

func (r *Registry) clampCursor() {
	if len(r.records) == 0 {
		r.cursor = 0
		return
	}
	if r.cursor < 0 {
		r.cursor = 0
	}
	if r.cursor >= len(r.records) {
		r.cursor = len(r.records) - 1
	}
}

// Page returns the current page number.
func (r *Registry) Page() uint {
	return r.page
}

// SetPage sets the page number. Records are not fetched here.
func (r *Registry) SetPage(p uint) {
	r.page = p
}

// NextPage advances the page number, wrapping to zero on overflow.
func (r *Registry) NextPage() uint {
	r.page++
	return r.page
}

// PrevPage moves back one page, never below zero.
func (r *Registry) PrevPage() uint {
	if r.page > 0 {
		r.page--
	}
	return r.page
}

// HasNext reports whether the last fetch said another page exists.
func (r *Registry) HasNext() bool {
	return r.hasNext
}

// Records returns the loaded page. The slice must not be modified.
func (r *Registry) Records() []Record {
	return r.records
}

// Len returns the number of records on the loaded page.
func (r *Registry) Len() int {
	return len(r.records)
}

// Cursor returns the cursor index, 0 on an empty page.
func (r *Registry) Cursor() int {
	return r.cursor
}

// Selected returns the record under the cursor. ok is false on an empty page.
func (r *Registry) Selected() (Record, bool) {
	if len(r.records) == 0 {
		return Record{}, false
	}
	return r.records[r.cursor], true
}

// Next moves the cursor down, wrapping to the top. In multi-select mode the
// mark of the record being left is toggled first.
func (r *Registry) Next() {
	n := len(r.records)
	if n == 0 {
		return
	}
	r.toggleLeaving()
	r.cursor = (r.cursor + 1) % n
}

// Prev moves the cursor up, wrapping to the bottom. In multi-select mode the
// mark of the record being left is toggled first.
func (r *Registry) Prev() {
	n := len(r.records)
	if n == 0 {
		return
	}
	r.toggleLeaving()
	r.cursor = (r.cursor - 1 + n) % n
}

func (r *Registry) toggleLeaving() {
	if !r.multiSelect {
		return
	}
	r.ToggleMark(r.records[r.cursor].ID)
}

// IsMarked reports whether id is marked.
func (r *Registry) IsMarked(id string) bool {
	_, ok := r.marks[id]
	return ok
}

// ToggleMark flips the mark on id.
func (r *Registry) ToggleMark(id string) {
	if _, ok := r.marks[id]; ok {
		delete(r.marks, id)
		return
	}
	r.marks[id] = struct{}{}
}

// ToggleCurrentMark flips the mark on the cursor record. No-op on an empty page.
func (r *Registry) ToggleCurrentMark() {
	if rec, ok := r.Selected(); ok {
		r.ToggleMark(rec.ID)
	}
}

// Unmark removes the given ids from the mark set.
func (r *Registry) Unmark(ids ...string) {
	for _, id := range ids {
		delete(r.marks, id)
	}
}

// ClearMarks removes every mark.
func (r *Registry) ClearMarks() {
	clear(r.marks)
}

// Marks returns the marked ids in sorted order.
func (r *Registry) Marks() []string {
	out := make([]string, 0, len(r.marks))
	for id := range r.marks {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// MarkCount returns the number of marked ids.
func (r *Registry) MarkCount() int {
	return len(r.marks)
}

// MultiSelect reports whether multi-select mode is on.
func (r *Registry) MultiSelect() bool {
	return r.multiSelect
}

// EnterMultiSelect turns multi-select mode on and marks the cursor record.
func (r *Registry) EnterMultiSelect() {
	r.multiSelect = true
	if rec, ok := r.Selected(); ok {
		r.marks[rec.ID] = struct{}{}
	}
}

// ExitMultiSelect turns multi-select mode off and clears every mark.
func (r *Registry) ExitMultiSelect() {
	r.multiSelect = false
	r.ClearMarks()
}

// ToggleMultiSelect enters or exits multi-select mode.
func (r *Registry) ToggleMultiSelect() {
	if r.multiSelect {
		r.ExitMultiSelect()
		return
	}
	r.EnterMultiSelect()
}

// EffectiveTargets returns the ids a bulk action applies to: the marks when
// any exist, otherwise the cursor record, otherwise nothing.
func (r *Registry) EffectiveTargets() []string {
	if len(r.marks) > 0 {
		return r.Marks()
	}
	if rec, ok := r.Selected(); ok {
		return []string{rec.ID}
	}
	return nil
}

package panel

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/sahilm/fuzzy"

	"tandem/internal/listing"
)

// Panel owns one directory's listing plus the cursor and scroll window over
// it. Every mutation re-establishes the invariants: the selection index stays
// inside the listing, and the scroll offset keeps the selection inside the
// viewport while never scrolling past the end.
type Panel struct {
	path       string          // absolute, listable at last successful scan
	all        []listing.Entry // full scan result
	visible    []listing.Entry // all with the filter applied
	filter     string
	selected   int
	offset     int
	rows       int
	showHidden bool
}

// New creates a panel rooted at path with the given viewport height. The
// initial scan must succeed; a panel never exists without a listable path.
func New(path string, rows int, showHidden bool) (*Panel, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve %s: %w", path, err)
	}

	entries, err := listing.Scan(abs, showHidden)
	if err != nil {
		return nil, err
	}

	p := &Panel{
		path:       abs,
		all:        entries,
		rows:       rows,
		showHidden: showHidden,
	}
	p.applyFilter()
	return p, nil
}

// Path returns the panel's current absolute directory path.
func (p *Panel) Path() string { return p.path }

// Entries returns the visible (possibly filtered) listing.
func (p *Panel) Entries() []listing.Entry { return p.visible }

// Count returns the number of visible entries.
func (p *Panel) Count() int { return len(p.visible) }

// Selected returns the selection index.
func (p *Panel) Selected() int { return p.selected }

// Offset returns the scroll offset.
func (p *Panel) Offset() int { return p.offset }

// Rows returns the viewport height in rows.
func (p *Panel) Rows() int { return p.rows }

// Filter returns the active filter query, empty when none.
func (p *Panel) Filter() string { return p.filter }

// Selection returns the entry under the cursor, if any.
func (p *Panel) Selection() (listing.Entry, bool) {
	if len(p.visible) == 0 {
		return listing.Entry{}, false
	}
	return p.visible[p.selected], true
}

// SelectionPath returns the absolute path of the entry under the cursor.
// For ".." that is the parent directory.
func (p *Panel) SelectionPath() (string, bool) {
	e, ok := p.Selection()
	if !ok {
		return "", false
	}
	if e.Name == ".." {
		return filepath.Dir(p.path), true
	}
	return filepath.Join(p.path, e.Name), true
}

// MoveSelection moves the cursor by delta, clamped to the listing. No
// wraparound.
func (p *Panel) MoveSelection(delta int) {
	p.selected += delta
	p.clampSelection()
	p.ensureVisible()
}

// SelectName moves the cursor to the entry with the given name, if present
// in the visible listing.
func (p *Panel) SelectName(name string) bool {
	for i, e := range p.visible {
		if e.Name == name {
			p.selected = i
			p.ensureVisible()
			return true
		}
	}
	return false
}

// SelectFirst jumps to the top of the listing.
func (p *Panel) SelectFirst() {
	p.selected = 0
	p.offset = 0
}

// SelectLast jumps to the bottom of the listing.
func (p *Panel) SelectLast() {
	p.selected = len(p.visible) - 1
	p.clampSelection()
	p.ensureVisible()
}

// NavigateInto enters the given folder entry: ".." moves to the parent,
// anything else appends the name. The move commits only if the target scans
// cleanly; on failure the panel is left exactly as it was. Entering a
// directory resets selection and scroll to the top and drops any filter.
func (p *Panel) NavigateInto(e listing.Entry) error {
	if !e.IsDir() {
		return fmt.Errorf("%s is not a folder", e.Name)
	}

	var target string
	if e.Name == ".." {
		target = filepath.Dir(p.path)
	} else {
		target = filepath.Join(p.path, e.Name)
	}

	entries, err := listing.Scan(target, p.showHidden)
	if err != nil {
		return err
	}

	p.path = target
	p.all = entries
	p.filter = ""
	p.visible = entries
	p.selected = 0
	p.offset = 0
	return nil
}

// Refresh re-scans the current directory. The selection is preserved by
// re-finding the selected name in the new listing, falling back to clamping
// the old index. On scan failure the previous listing stays untouched.
func (p *Panel) Refresh() error {
	var selectedName string
	if e, ok := p.Selection(); ok {
		selectedName = e.Name
	}

	entries, err := listing.Scan(p.path, p.showHidden)
	if err != nil {
		return err
	}

	p.all = entries
	p.applyFilter()

	if selectedName != "" {
		p.SelectName(selectedName)
	}
	p.clampSelection()
	p.ensureVisible()
	return nil
}

// SetRows updates the viewport height and recomputes the scroll offset
// without touching the selection.
func (p *Panel) SetRows(rows int) {
	p.rows = rows
	p.ensureVisible()
}

// SetFilter narrows the visible listing to entries fuzzy-matching query,
// keeping listing order. An empty query restores the full listing. The
// cursor returns to the top, where the best next action lives.
func (p *Panel) SetFilter(query string) {
	p.filter = query
	p.applyFilter()
	p.selected = 0
	p.offset = 0
}

// ClearFilter restores the full listing, keeping the selected entry if it is
// still present.
func (p *Panel) ClearFilter() {
	var selectedName string
	if e, ok := p.Selection(); ok {
		selectedName = e.Name
	}

	p.filter = ""
	p.applyFilter()

	if selectedName != "" {
		p.SelectName(selectedName)
	}
	p.clampSelection()
	p.ensureVisible()
}

func (p *Panel) applyFilter() {
	if p.filter == "" {
		p.visible = p.all
		return
	}

	names := make([]string, len(p.all))
	for i, e := range p.all {
		names[i] = e.Name
	}

	matches := fuzzy.Find(p.filter, names)
	// fuzzy returns score order; restore listing order so folders stay first
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Index < matches[j].Index
	})

	p.visible = make([]listing.Entry, len(matches))
	for i, match := range matches {
		p.visible[i] = p.all[match.Index]
	}
}

func (p *Panel) clampSelection() {
	if p.selected >= len(p.visible) {
		p.selected = len(p.visible) - 1
	}
	if p.selected < 0 {
		p.selected = 0
	}
}

// ensureVisible re-establishes the scroll window invariant:
// offset <= selected <= offset+rows-1, with 0 <= offset <= max(0, count-rows).
func (p *Panel) ensureVisible() {
	if p.rows <= 0 {
		p.offset = 0
		return
	}

	maxOffset := len(p.visible) - p.rows
	if maxOffset < 0 {
		maxOffset = 0
	}
	if p.offset > maxOffset {
		p.offset = maxOffset
	}
	if p.offset < 0 {
		p.offset = 0
	}
	if p.selected < p.offset {
		p.offset = p.selected
	}
	if p.selected >= p.offset+p.rows {
		p.offset = p.selected - p.rows + 1
	}
}

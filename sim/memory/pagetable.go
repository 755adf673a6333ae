package memory

// PageTableEntry maps one virtual page. Present == (Frame != NoFrame).
type PageTableEntry struct {
	Present    bool
	Referenced bool
	Dirty      bool
	Frame      FrameID
}

// Attach maps the entry onto frame.
func (e *PageTableEntry) Attach(frame FrameID, isWrite bool) {
	e.Present = true
	e.Referenced = true
	e.Dirty = isWrite
	e.Frame = frame
}

// ClearMapping resets the entry to unmapped.
func (e *PageTableEntry) ClearMapping() {
	e.Present = false
	e.Referenced = false
	e.Dirty = false
	e.Frame = NoFrame
}

// PageTable is a single-level page table owned by one process.
type PageTable struct {
	PID     int
	Entries []PageTableEntry
}

// NewPageTable allocates pages unmapped entries.
func NewPageTable(pid, pages int) *PageTable {
	pt := &PageTable{PID: pid, Entries: make([]PageTableEntry, pages)}
	for i := range pt.Entries {
		pt.Entries[i].Frame = NoFrame
	}
	return pt
}

// PresentPages returns the indices of mapped entries, ascending.
func (pt *PageTable) PresentPages() []int {
	var pages []int
	for i := range pt.Entries {
		if pt.Entries[i].Present {
			pages = append(pages, i)
		}
	}
	return pages
}

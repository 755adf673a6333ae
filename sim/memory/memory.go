package memory

import "fmt"

// Memory owns the frame table and every live process's page table.
// All link changes between a frame and an entry go through it.
//
// Methods panic on a broken frame/entry link; that is a bug in the caller's
// attach/release discipline and the run cannot continue.
type Memory struct {
	frames []Frame
	tables map[int]*PageTable
}

// NewMemory creates a frame table of frameCount free frames.
// Panics if frameCount <= 0.
func NewMemory(frameCount int) *Memory {
	if frameCount <= 0 {
		panic(fmt.Sprintf("Memory: frameCount must be > 0, got %d", frameCount))
	}
	m := &Memory{
		frames: make([]Frame, frameCount),
		tables: make(map[int]*PageTable),
	}
	for i := range m.frames {
		m.frames[i] = newFrame(FrameID(i))
	}
	return m
}

// Len returns the number of frames.
func (m *Memory) Len() int {
	return len(m.frames)
}

// Frame returns a snapshot of frame id.
func (m *Memory) Frame(id FrameID) Frame {
	return m.frames[id]
}

// AddProcess allocates a page table of pages unmapped entries for pid.
func (m *Memory) AddProcess(pid, pages int) *PageTable {
	if _, ok := m.tables[pid]; ok {
		panic(fmt.Sprintf("Memory.AddProcess: pid %d already has a page table", pid))
	}
	pt := NewPageTable(pid, pages)
	m.tables[pid] = pt
	return pt
}

// RemoveProcess drops pid's page table. Every present page must have been
// released first.
func (m *Memory) RemoveProcess(pid int) {
	pt, ok := m.tables[pid]
	if !ok {
		return
	}
	if present := pt.PresentPages(); len(present) > 0 {
		panic(fmt.Sprintf("Memory.RemoveProcess: pid %d still maps pages %v", pid, present))
	}
	delete(m.tables, pid)
}

// Table returns pid's page table.
func (m *Memory) Table(pid int) (*PageTable, bool) {
	pt, ok := m.tables[pid]
	return pt, ok
}

// Lookup returns the frame holding (pid, page), or false on a page fault.
func (m *Memory) Lookup(pid, page int) (FrameID, bool) {
	e := m.entry(pid, page)
	if !e.Present {
		return NoFrame, false
	}
	if e.Frame == NoFrame {
		panic(fmt.Sprintf("Memory.Lookup: pid %d page %d is present without a frame", pid, page))
	}
	m.checkLink(e.Frame, pid, page)
	return e.Frame, true
}

// Attach loads (pid, page) into free frame id, updating frame and entry.
func (m *Memory) Attach(id FrameID, pid, page int, isWrite bool) {
	f := &m.frames[id]
	if !f.IsFree() {
		panic(fmt.Sprintf("Memory.Attach: frame %d already holds pid %d page %d", id, f.Owner, f.Page))
	}
	e := m.entry(pid, page)
	if e.Present {
		panic(fmt.Sprintf("Memory.Attach: pid %d page %d already mapped to frame %d", pid, page, e.Frame))
	}
	f.Attach(pid, page, isWrite)
	e.Attach(id, isWrite)
}

// NoteAccess records a hit on frame id and mirrors the flags on its entry.
func (m *Memory) NoteAccess(id FrameID, isWrite bool) {
	f := &m.frames[id]
	e := m.linkedEntry(f)
	f.NoteAccess(isWrite)
	e.Referenced = f.Referenced
	e.Dirty = f.Dirty
}

// ClearReference drops the referenced bit on frame id and its entry.
// A free frame is left untouched.
func (m *Memory) ClearReference(id FrameID) {
	f := &m.frames[id]
	if f.IsFree() {
		return
	}
	e := m.linkedEntry(f)
	f.ClearReference()
	e.Referenced = false
}

// Release unmaps frame id and returns its state just before release.
func (m *Memory) Release(id FrameID) Frame {
	f := &m.frames[id]
	if f.IsFree() {
		panic(fmt.Sprintf("Memory.Release: frame %d is already free", id))
	}
	e := m.linkedEntry(f)
	before := *f
	e.ClearMapping()
	f.MarkFree()
	return before
}

func (m *Memory) entry(pid, page int) *PageTableEntry {
	pt, ok := m.tables[pid]
	if !ok {
		panic(fmt.Sprintf("Memory: no page table for pid %d", pid))
	}
	if page < 0 || page >= len(pt.Entries) {
		panic(fmt.Sprintf("Memory: pid %d page %d out of range [0,%d)", pid, page, len(pt.Entries)))
	}
	return &pt.Entries[page]
}

// linkedEntry follows an occupied frame's back-link and checks that the
// entry points back at the frame.
func (m *Memory) linkedEntry(f *Frame) *PageTableEntry {
	if f.IsFree() {
		panic(fmt.Sprintf("Memory: frame %d is free", f.ID))
	}
	m.checkLink(f.ID, f.Owner, f.Page)
	return m.entry(f.Owner, f.Page)
}

func (m *Memory) checkLink(id FrameID, pid, page int) {
	f := &m.frames[id]
	e := m.entry(pid, page)
	if f.Owner != pid || f.Page != page || !e.Present || e.Frame != id {
		panic(fmt.Sprintf("Memory: broken link between frame %d (pid %d page %d) and pid %d page %d (present=%v frame=%d)",
			id, f.Owner, f.Page, pid, page, e.Present, e.Frame))
	}
}

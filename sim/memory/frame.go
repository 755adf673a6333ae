// Package memory models physical frames and per-process page tables.
//
// A Frame and the PageTableEntry it holds refer to each other by index (the
// frame's owner pid and page number, the entry's FrameID) rather than by
// pointer. Memory owns both arenas and is the only code that changes a link,
// always updating both sides together.
package memory

// FrameID indexes the frame table. It is fixed for the life of a run.
type FrameID int

// NoFrame marks an entry that is not mapped.
const NoFrame FrameID = -1

const noOwner = -1

// Frame is one physical page slot.
type Frame struct {
	ID         FrameID
	Owner      int // pid, or -1 when free
	Page       int // virtual page index within Owner, or -1 when free
	Referenced bool
	Dirty      bool
}

func newFrame(id FrameID) Frame {
	return Frame{ID: id, Owner: noOwner, Page: noOwner}
}

// IsFree reports whether the frame holds no page.
func (f Frame) IsFree() bool {
	return f.Owner == noOwner
}

// Attach binds the frame to a page. A freshly loaded page is referenced and
// dirty only if the faulting access was a write.
func (f *Frame) Attach(pid, page int, isWrite bool) {
	f.Owner = pid
	f.Page = page
	f.Referenced = true
	f.Dirty = isWrite
}

// NoteAccess records a hit on the resident page.
func (f *Frame) NoteAccess(isWrite bool) {
	f.Referenced = true
	if isWrite {
		f.Dirty = true
	}
}

// ClearReference drops the referenced bit (a clock sweep's second chance).
func (f *Frame) ClearReference() {
	f.Referenced = false
}

// MarkFree returns the frame to the unbound state.
func (f *Frame) MarkFree() {
	f.Owner = noOwner
	f.Page = noOwner
	f.Referenced = false
	f.Dirty = false
}

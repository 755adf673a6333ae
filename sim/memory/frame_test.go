package memory

import "testing"

func TestFrame_Lifecycle(t *testing.T) {
	f := newFrame(3)
	if !f.IsFree() {
		t.Fatal("new frame should be free")
	}

	f.Attach(2, 9, false)
	if f.IsFree() || f.Owner != 2 || f.Page != 9 || !f.Referenced || f.Dirty {
		t.Errorf("after read attach: %+v", f)
	}

	f.ClearReference()
	f.NoteAccess(true)
	if !f.Referenced || !f.Dirty {
		t.Errorf("after write access: %+v", f)
	}

	f.MarkFree()
	if !f.IsFree() || f.Page != -1 || f.Referenced || f.Dirty {
		t.Errorf("after MarkFree: %+v", f)
	}
	if f.ID != 3 {
		t.Errorf("ID changed to %d", f.ID)
	}
}

func TestPageTableEntry_AttachAndClear(t *testing.T) {
	pt := NewPageTable(1, 2)
	e := &pt.Entries[1]
	if e.Present || e.Frame != NoFrame {
		t.Fatalf("new entry should be unmapped: %+v", e)
	}

	e.Attach(4, true)
	if !e.Present || !e.Referenced || !e.Dirty || e.Frame != 4 {
		t.Errorf("after attach: %+v", e)
	}
	if got := pt.PresentPages(); len(got) != 1 || got[0] != 1 {
		t.Errorf("PresentPages() = %v, want [1]", got)
	}

	e.ClearMapping()
	if e.Present || e.Referenced || e.Dirty || e.Frame != NoFrame {
		t.Errorf("after clear: %+v", e)
	}
}

// Package trace provides the event records a workload generator emits and a
// paging kernel replays. It stores pure data types and has no dependency on
// the kernel or the policies.
package trace

import "fmt"

// Kind identifies an event variant. Its numeric value is also the tie-break
// rank between events that share a step: Start < WorkingSetChange <
// MemoryAccess < Terminate.
type Kind int

const (
	KindProcessStart Kind = iota
	KindWorkingSetChange
	KindMemoryAccess
	KindProcessTerminate
)

func (k Kind) String() string {
	switch k {
	case KindProcessStart:
		return "ProcessStart"
	case KindWorkingSetChange:
		return "WorkingSetChange"
	case KindMemoryAccess:
		return "MemoryAccess"
	case KindProcessTerminate:
		return "ProcessTerminate"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Event is the closed set of trace records. The unexported marker keeps
// implementations inside this package, so a consumer's type switch over
// *ProcessStart, *ProcessTerminate, *WorkingSetChange and *MemoryAccess is
// complete.
type Event interface {
	Step() int64
	Kind() Kind
	PID() int
	isEvent()
}

// ProcessStart introduces a process and the size of its virtual address space.
type ProcessStart struct {
	At               int64
	Process          int
	VirtualPageCount int
}

func (e *ProcessStart) Step() int64 { return e.At }
func (e *ProcessStart) Kind() Kind  { return KindProcessStart }
func (e *ProcessStart) PID() int    { return e.Process }
func (*ProcessStart) isEvent()      {}

// ProcessTerminate is always the last event of its process.
type ProcessTerminate struct {
	At      int64
	Process int
}

func (e *ProcessTerminate) Step() int64 { return e.At }
func (e *ProcessTerminate) Kind() Kind  { return KindProcessTerminate }
func (e *ProcessTerminate) PID() int    { return e.Process }
func (*ProcessTerminate) isEvent()      {}

// WorkingSetChange announces the process's new hot page set (sorted ascending).
type WorkingSetChange struct {
	At         int64
	Process    int
	WorkingSet []int
}

func (e *WorkingSetChange) Step() int64 { return e.At }
func (e *WorkingSetChange) Kind() Kind  { return KindWorkingSetChange }
func (e *WorkingSetChange) PID() int    { return e.Process }
func (*WorkingSetChange) isEvent()      {}

// MemoryAccess is a single read or write of one virtual page.
// WorkingSet is shared with the WorkingSetChange that installed it and must
// not be mutated.
type MemoryAccess struct {
	At         int64
	Process    int
	Page       int
	Write      bool
	WorkingSet []int
}

func (e *MemoryAccess) Step() int64 { return e.At }
func (e *MemoryAccess) Kind() Kind  { return KindMemoryAccess }
func (e *MemoryAccess) PID() int    { return e.Process }
func (*MemoryAccess) isEvent()      {}

// Package recorder persists kernel summaries to a SQLite database. Rows are
// buffered in memory and written in one transaction per Flush.
package recorder

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/fatih/structs"
	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"github.com/tebeka/atexit"

	"github.com/paging-sim/paging-sim/sim/kernel"
)

const (
	runsTable    = "runs"
	processTable = "process_stats"
	faultTable   = "fault_samples"
)

// RunRow is one row of the runs table.
type RunRow struct {
	RunID             string
	Algorithm         string
	PhysicalFrames    int
	WorkingSetSize    int
	TotalAccesses     int64
	PageFaults        int64
	FreeFrameFaults   int64
	Replacements      int64
	DiskWrites        int64
	CleanEvictions    int64
	DirtyEvictions    int64
	WorkingSetChanges int64
	PageFaultRate     float64
}

// ProcessRow is one row of the process_stats table.
type ProcessRow struct {
	RunID          string
	PID            int
	Accesses       int64
	PageFaults     int64
	Writes         int64
	DirtyEvictions int64
}

// FaultRow is one row of the fault_samples table. Victim columns are -1 when
// the fault was served from a free frame.
type FaultRow struct {
	RunID       string
	Seq         int
	Step        int64
	PID         int
	Page        int
	Write       bool
	VictimFrame int
	VictimPID   int
	VictimPage  int
	VictimDirty bool
}

type table struct {
	name    string
	entries []any
}

// Recorder buffers summaries and writes them to SQLite.
type Recorder struct {
	db     *sql.DB
	path   string
	tables []*table
	closed bool
}

// New opens (or creates) the database at path and its tables. An empty path
// picks a fresh file name in the working directory. Buffered rows are flushed
// when the program exits through atexit.
func New(path string) (*Recorder, error) {
	if path == "" {
		path = "pagesim_" + xid.New().String() + ".sqlite3"
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	r := &Recorder{
		db:   db,
		path: path,
		tables: []*table{
			{name: runsTable},
			{name: processTable},
			{name: faultTable},
		},
	}
	samples := []any{RunRow{}, ProcessRow{}, FaultRow{}}
	for i, t := range r.tables {
		if err := r.createTable(t.name, samples[i]); err != nil {
			db.Close()
			return nil, err
		}
	}

	atexit.Register(func() {
		if err := r.Close(); err != nil {
			logrus.Errorf("recorder: %v", err)
		}
	})
	logrus.Infof("recorder: writing runs to %s", path)
	return r, nil
}

// Path returns the database file path.
func (r *Recorder) Path() string { return r.path }

// Record buffers s under a new run id and returns the id.
func (r *Recorder) Record(s *kernel.Summary) string {
	id := xid.New().String()

	r.insert(runsTable, RunRow{
		RunID:             id,
		Algorithm:         s.Algorithm,
		PhysicalFrames:    s.PhysicalFrames,
		WorkingSetSize:    s.WorkingSetSize,
		TotalAccesses:     s.TotalAccesses,
		PageFaults:        s.PageFaults,
		FreeFrameFaults:   s.FreeFrameFaults,
		Replacements:      s.Replacements,
		DiskWrites:        s.DiskWrites,
		CleanEvictions:    s.CleanEvictions,
		DirtyEvictions:    s.DirtyEvictions,
		WorkingSetChanges: s.WorkingSetChanges,
		PageFaultRate:     s.PageFaultRate,
	})
	for _, p := range s.Processes {
		r.insert(processTable, ProcessRow{
			RunID:          id,
			PID:            p.PID,
			Accesses:       p.Accesses,
			PageFaults:     p.PageFaults,
			Writes:         p.Writes,
			DirtyEvictions: p.DirtyEvictions,
		})
	}
	for i, f := range s.SampleFaults {
		row := FaultRow{
			RunID:       id,
			Seq:         i,
			Step:        f.Step,
			PID:         f.PID,
			Page:        f.Page,
			Write:       f.Write,
			VictimFrame: -1,
			VictimPID:   -1,
			VictimPage:  -1,
		}
		if v := f.Victim; v != nil {
			row.VictimFrame = int(v.Frame)
			row.VictimPID = v.PID
			row.VictimPage = v.Page
			row.VictimDirty = v.Dirty
		}
		r.insert(faultTable, row)
	}
	return id
}

// Flush writes all buffered rows in a single transaction.
func (r *Recorder) Flush() error {
	pending := 0
	for _, t := range r.tables {
		pending += len(t.entries)
	}
	if pending == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("recorder: begin: %w", err)
	}
	for _, t := range r.tables {
		if len(t.entries) == 0 {
			continue
		}
		if err := insertAll(tx, t); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("recorder: commit: %w", err)
	}

	for _, t := range r.tables {
		t.entries = nil
	}
	logrus.Debugf("recorder: flushed %d rows", pending)
	return nil
}

// Close flushes and closes the database. Further calls are no-ops.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	flushErr := r.Flush()
	if err := r.db.Close(); err != nil && flushErr == nil {
		return fmt.Errorf("recorder: close: %w", err)
	}
	return flushErr
}

func (r *Recorder) insert(name string, entry any) {
	if r.closed {
		panic("recorder: Record called after Close")
	}
	for _, t := range r.tables {
		if t.name == name {
			t.entries = append(t.entries, entry)
			return
		}
	}
	panic(fmt.Sprintf("table %s does not exist", name))
}

func (r *Recorder) createTable(name string, sample any) error {
	fields := strings.Join(structs.Names(sample), ", \n\t")
	query := `CREATE TABLE IF NOT EXISTS ` + name + ` (` + "\n\t" + fields + "\n" + `);`
	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("recorder: creating table %s: %w", name, err)
	}
	return nil
}

func insertAll(tx *sql.Tx, t *table) error {
	placeholders := make([]string, len(structs.Names(t.entries[0])))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	stmt, err := tx.Prepare("INSERT INTO " + t.name + " VALUES (" + strings.Join(placeholders, ", ") + ")")
	if err != nil {
		return fmt.Errorf("recorder: preparing insert into %s: %w", t.name, err)
	}
	defer stmt.Close()

	for _, entry := range t.entries {
		if _, err := stmt.Exec(structs.Values(entry)...); err != nil {
			return fmt.Errorf("recorder: inserting into %s: %w", t.name, err)
		}
	}
	return nil
}

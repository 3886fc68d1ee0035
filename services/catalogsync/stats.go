package catalogsync

import "time"

// Stats are the cumulative counters for one unit of work.
// Fetched counts records returned by the source, New counts records
// handed to the writer after dedup, SkippedDuplicate counts records
// dropped because they already exist (either filtered up front or
// rejected by the unique constraint), Failed counts records dropped
// by transform errors or failed sub-batches.
type Stats struct {
	Fetched          int64
	New              int64
	Written          int64
	SkippedDuplicate int64
	Failed           int64
	// PagesSkipped counts pages abandoned under the skip-page
	// failure policy, whose record count is unknown.
	PagesSkipped int64
}

func (s *Stats) Add(o Stats) {
	s.Fetched += o.Fetched
	s.New += o.New
	s.Written += o.Written
	s.SkippedDuplicate += o.SkippedDuplicate
	s.Failed += o.Failed
	s.PagesSkipped += o.PagesSkipped
}

type UnitState int

const (
	UnitDone UnitState = iota
	UnitFailed
)

func (s UnitState) String() string {
	switch s {
	case UnitDone:
		return "done"
	case UnitFailed:
		return "failed"
	}
	return "unknown"
}

// UnitReport is the outcome of one unit of work.
type UnitReport struct {
	Unit    Unit
	State   UnitState
	Stats   Stats
	Err     error
	Elapsed time.Duration
}

// RunReport aggregates every unit of one run. it is produced for
// reporting only and never persisted.
type RunReport struct {
	Units   []UnitReport
	Elapsed time.Duration
}

func (r RunReport) Totals() Stats {
	var out Stats
	for _, u := range r.Units {
		out.Add(u.Stats)
	}
	return out
}

func (r RunReport) Failed() bool {
	for _, u := range r.Units {
		if u.State == UnitFailed {
			return true
		}
	}
	return false
}

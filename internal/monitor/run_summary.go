package monitor

import (
	"database/sql"
	"time"

	"github.com/f1o/renovate/internal/datastore"
)

// RunSummary tracks what a single pipeline run did.
type RunSummary struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time

	Checked       int
	Baselined     int
	Unchanged     int
	Updated       int
	FetchFailures int
	NotifyFailed  int

	Interrupted bool // stopped before every title was processed
	Saved       bool // history written to disk
}

// NewRunSummary starts a summary for runID.
func NewRunSummary(runID string, startedAt time.Time) *RunSummary {
	return &RunSummary{RunID: runID, StartedAt: startedAt}
}

// Record counts one processed title.
func (rs *RunSummary) Record(outcome Outcome) {
	rs.Checked++
	switch outcome {
	case OutcomeSkipped:
		rs.FetchFailures++
	case OutcomeBaselined:
		rs.Baselined++
	case OutcomeUnchanged:
		rs.Unchanged++
	case OutcomeUpdated:
		rs.Updated++
	case OutcomeNotifyFailed:
		rs.NotifyFailed++
	}
}

// HasChanges reports whether in-memory history was modified during the run.
func (rs *RunSummary) HasChanges() bool {
	return rs.Baselined > 0 || rs.Updated > 0
}

// Duration is the wall time of the run, zero until it finished.
func (rs *RunSummary) Duration() time.Duration {
	if rs.FinishedAt.IsZero() {
		return 0
	}
	return rs.FinishedAt.Sub(rs.StartedAt)
}

// Status maps the run to a ledger status. runErr is the fatal error, if any.
func (rs *RunSummary) Status(runErr error) string {
	switch {
	case runErr != nil:
		return datastore.RunStatusFailed
	case rs.Interrupted:
		return datastore.RunStatusCancelled
	default:
		return datastore.RunStatusCompleted
	}
}

// LedgerEntry converts the summary into a run ledger row.
func (rs *RunSummary) LedgerEntry(runErr error) datastore.RunLedgerEntry {
	entry := datastore.RunLedgerEntry{
		RunID:           rs.RunID,
		StartedAt:       rs.StartedAt,
		FinishedAt:      sql.NullTime{Time: rs.FinishedAt, Valid: !rs.FinishedAt.IsZero()},
		Status:          rs.Status(runErr),
		TitlesChecked:   rs.Checked,
		TitlesBaselined: rs.Baselined,
		TitlesUnchanged: rs.Unchanged,
		TitlesUpdated:   rs.Updated,
		FetchFailures:   rs.FetchFailures,
		NotifyFailures:  rs.NotifyFailed,
		HistorySaved:    rs.Saved,
	}
	if runErr != nil {
		entry.ErrorMessage = sql.NullString{String: runErr.Error(), Valid: true}
	}
	return entry
}

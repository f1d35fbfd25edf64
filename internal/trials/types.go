package trials

import "time"

// #region status
// Status marks whether a trial produced a real outcome or failed.
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// #endregion status

// #region trial
// Trial is one durable row: a completed or failed session cycle.
type Trial struct {
	TrialID   string
	Outcome   string
	Status    Status
	Reason    string // set when Status is StatusError
	Actor     string
	CreatedAt time.Time
}

// #endregion trial

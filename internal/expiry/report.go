package expiry

import "time"

type Outcome string

const (
	// OutcomeDisabled: external backend (if any) and local store both
	// disabled.
	OutcomeDisabled Outcome = "disabled"
	// OutcomeExternalFailed: the backend call failed but the account was
	// still disabled locally; the local store is authoritative.
	OutcomeExternalFailed Outcome = "external_failed"
	// OutcomePersistFailed: the local save failed; the account stays
	// active and is picked up again on the next run.
	OutcomePersistFailed Outcome = "persist_failed"
)

type AccountOutcome struct {
	AccountID int64   `json:"account_id"`
	Email     string  `json:"email"`
	Outcome   Outcome `json:"outcome"`
	Error     string  `json:"error,omitempty"`
}

type WarnOutcome struct {
	AccountID int64  `json:"account_id"`
	Email     string `json:"email"`
	Sent      bool   `json:"sent"`
	Error     string `json:"error,omitempty"`
}

// RunReport aggregates the per-account results of one driver
// invocation. It is the operator-facing record of what a run did.
type RunReport struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	WarnEligible    int `json:"warn_eligible"`
	DisableEligible int `json:"disable_eligible"`

	Warnings      []WarnOutcome    `json:"warnings,omitempty"`
	Deactivations []AccountOutcome `json:"deactivations,omitempty"`
}

func (r *RunReport) recordWarning(id int64, email string, sent bool, err error) {
	w := WarnOutcome{AccountID: id, Email: email, Sent: sent}
	if err != nil {
		w.Error = err.Error()
	}
	r.Warnings = append(r.Warnings, w)
}

func (r *RunReport) recordOutcome(id int64, email string, outcome Outcome, err error) {
	o := AccountOutcome{AccountID: id, Email: email, Outcome: outcome}
	if err != nil {
		o.Error = err.Error()
	}
	r.Deactivations = append(r.Deactivations, o)
}

func (r *RunReport) WarnedCount() int {
	n := 0
	for _, w := range r.Warnings {
		if w.Sent {
			n++
		}
	}
	return n
}

func (r *RunReport) DisabledCount() int {
	n := 0
	for _, o := range r.Deactivations {
		if o.Outcome != OutcomePersistFailed {
			n++
		}
	}
	return n
}

func (r *RunReport) FailedCount() int {
	n := 0
	for _, w := range r.Warnings {
		if w.Error != "" {
			n++
		}
	}
	for _, o := range r.Deactivations {
		if o.Outcome != OutcomeDisabled {
			n++
		}
	}
	return n
}

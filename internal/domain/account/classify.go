package account

import "time"

type Cohort int

const (
	// CohortNone: no lifecycle action applies.
	CohortNone Cohort = iota
	// CohortWarn: expiry falls within the look-ahead window; the account
	// should receive a warning notification.
	CohortWarn
	// CohortDisable: expiry has passed and the account is still active;
	// access should be revoked.
	CohortDisable
)

func (c Cohort) String() string {
	switch c {
	case CohortWarn:
		return "warn"
	case CohortDisable:
		return "disable"
	default:
		return "none"
	}
}

// Classify derives the lifecycle cohort for a from timestamps alone; no
// state is persisted between runs. The owner account and accounts without
// an expiry date are never eligible. An already-disabled account is never
// re-disabled. Disable wins over warn, so an account whose expiry just
// passed does not also get a pointless warning.
func Classify(a Account, now time.Time, window time.Duration) Cohort {
	if a.ID == OwnerID || a.ExpiryDate == nil {
		return CohortNone
	}
	expiry := *a.ExpiryDate
	if expiry.Before(now) {
		if a.Permissions == 0 {
			return CohortNone
		}
		return CohortDisable
	}
	if !expiry.After(now.Add(window)) {
		return CohortWarn
	}
	return CohortNone
}

// DaysRemaining reports the number of whole-or-partial days between now
// and the account's expiry, rounded up. Zero if the account has no expiry
// or has already expired.
func (a *Account) DaysRemaining(now time.Time) int {
	if a.ExpiryDate == nil {
		return 0
	}
	until := a.ExpiryDate.Sub(now)
	if until <= 0 {
		return 0
	}
	days := int(until / (24 * time.Hour))
	if until%(24*time.Hour) != 0 {
		days++
	}
	return days
}

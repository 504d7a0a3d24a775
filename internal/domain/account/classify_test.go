package account

import (
	"testing"
	"time"
)

func tp(t time.Time) *time.Time { return &t }

func TestClassify(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	window := 3 * 24 * time.Hour

	cases := []struct {
		name string
		acc  Account
		want Cohort
	}{
		{
			name: "no expiry date never eligible",
			acc:  Account{ID: 2, Permissions: 2},
			want: CohortNone,
		},
		{
			name: "expiring inside window",
			acc:  Account{ID: 2, ExpiryDate: tp(now.Add(2 * 24 * time.Hour)), Permissions: 1},
			want: CohortWarn,
		},
		{
			name: "expiry exactly now is a warning",
			acc:  Account{ID: 2, ExpiryDate: tp(now), Permissions: 1},
			want: CohortWarn,
		},
		{
			name: "expiry exactly at window edge is a warning",
			acc:  Account{ID: 2, ExpiryDate: tp(now.Add(window)), Permissions: 1},
			want: CohortWarn,
		},
		{
			name: "expiry beyond window",
			acc:  Account{ID: 2, ExpiryDate: tp(now.Add(window + time.Second)), Permissions: 1},
			want: CohortNone,
		},
		{
			name: "expired and active",
			acc:  Account{ID: 3, ExpiryDate: tp(now.Add(-time.Hour)), Permissions: 5},
			want: CohortDisable,
		},
		{
			name: "expired but already disabled",
			acc:  Account{ID: 3, ExpiryDate: tp(now.Add(-time.Hour)), Permissions: 0},
			want: CohortNone,
		},
		{
			name: "owner expired stays untouched",
			acc:  Account{ID: OwnerID, ExpiryDate: tp(now.Add(-time.Hour)), Permissions: 8},
			want: CohortNone,
		},
		{
			name: "owner expiring stays untouched",
			acc:  Account{ID: OwnerID, ExpiryDate: tp(now.Add(time.Hour)), Permissions: 8},
			want: CohortNone,
		},
		{
			name: "disabled account inside window still warned",
			acc:  Account{ID: 4, ExpiryDate: tp(now.Add(time.Hour)), Permissions: 0},
			want: CohortWarn,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.acc, now, window); got != tc.want {
				t.Fatalf("Classify() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		acc  Account
		want int
	}{
		{"no expiry", Account{}, 0},
		{"already expired", Account{ExpiryDate: tp(now.Add(-time.Minute))}, 0},
		{"two days out", Account{ExpiryDate: tp(now.Add(2 * 24 * time.Hour))}, 2},
		{"partial day rounds up", Account{ExpiryDate: tp(now.Add(25 * time.Hour))}, 2},
		{"under a day rounds up to one", Account{ExpiryDate: tp(now.Add(30 * time.Minute))}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.acc.DaysRemaining(now); got != tc.want {
				t.Fatalf("DaysRemaining() = %d, want %d", got, tc.want)
			}
		})
	}
}

package expiry

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"membership-system/internal/domain/account"
	"membership-system/internal/mail"
	"membership-system/internal/metrics"
	"membership-system/internal/platform/logging"
	"membership-system/internal/settings"
)

// Notifier sends expiry warning emails to the warn cohort. It mutates no
// local state; a failed send is logged and recorded, and the account is
// simply warned again on the next run.
type Notifier struct {
	settings settings.Provider
	sender   mail.Sender
	limiter  *rate.Limiter
	log      logging.Logger
}

func NewNotifier(p settings.Provider, s mail.Sender, log logging.Logger) *Notifier {
	return &Notifier{
		settings: p,
		sender:   s,
		// One message per second keeps a large cohort from hammering
		// the relay.
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
		log:     log.With("component", "expiry-notifier"),
	}
}

func (n *Notifier) Notify(ctx context.Context, accounts []account.Account, now time.Time, report *RunReport) {
	if len(accounts) == 0 {
		return
	}

	if !n.settings.EmailNotificationsEnabled() {
		n.log.Info("email notifications disabled, skipping warnings", "eligible", len(accounts))
		for range accounts {
			metrics.IncWarning("skipped")
		}
		return
	}

	for i := range accounts {
		a := accounts[i]
		daysRemaining := a.DaysRemaining(now)

		n.log.Info("sending expiry warning",
			"account_id", a.ID,
			"email", a.Email,
			"expiry_date", a.ExpiryDate,
			"days_remaining", daysRemaining,
		)

		if err := n.limiter.Wait(ctx); err != nil {
			report.recordWarning(a.ID, a.Email, false, err)
			metrics.IncWarning("failed")
			return
		}

		msg := mail.Message{
			To:            a.Email,
			RecipientName: a.DisplayName,
			ExpiryDate:    a.ExpiryDate.Format("January 2, 2006"),
			DaysRemaining: daysRemaining,
			AppTitle:      n.settings.ApplicationTitle(),
			AppURL:        n.settings.ApplicationURL(),
		}

		if err := n.sender.Send(ctx, msg); err != nil {
			n.log.Error("failed to send expiry warning",
				"account_id", a.ID,
				"email", a.Email,
				"error", err,
			)
			report.recordWarning(a.ID, a.Email, false, err)
			metrics.IncWarning("failed")
			continue
		}

		report.recordWarning(a.ID, a.Email, true, nil)
		metrics.IncWarning("sent")
	}
}

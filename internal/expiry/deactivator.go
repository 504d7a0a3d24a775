package expiry

import (
	"context"

	"membership-system/internal/domain/account"
	"membership-system/internal/mediaserver"
	"membership-system/internal/metrics"
	"membership-system/internal/platform/logging"
)

// Deactivator revokes access for the disable cohort. Each account is
// processed in isolation: the external backend call is best effort, the
// local permissions write is the commit point, and one account's failure
// never aborts the rest of the batch.
type Deactivator struct {
	repo     account.Repository
	backends *mediaserver.Registry
	log      logging.Logger
}

func NewDeactivator(repo account.Repository, backends *mediaserver.Registry, log logging.Logger) *Deactivator {
	if backends == nil {
		backends = mediaserver.NewRegistry()
	}
	return &Deactivator{
		repo:     repo,
		backends: backends,
		log:      log.With("component", "expiry-deactivator"),
	}
}

func (d *Deactivator) Deactivate(ctx context.Context, accounts []account.Account, report *RunReport) {
	for i := range accounts {
		a := accounts[i]
		d.deactivateOne(ctx, a, report)
	}
}

func (d *Deactivator) deactivateOne(ctx context.Context, a account.Account, report *RunReport) {
	d.log.Info("disabling expired account",
		"account_id", a.ID,
		"email", a.Email,
		"expiry_date", a.ExpiryDate,
		"backend", a.MediaServerType,
	)

	externalErr := d.disableExternal(ctx, &a)

	a.Permissions = 0
	if err := d.repo.Save(ctx, &a); err != nil {
		d.log.Error("failed to persist disabled account",
			"account_id", a.ID,
			"error", err,
		)
		report.recordOutcome(a.ID, a.Email, OutcomePersistFailed, err)
		metrics.IncOutcome(string(OutcomePersistFailed))
		return
	}

	if externalErr != nil {
		report.recordOutcome(a.ID, a.Email, OutcomeExternalFailed, externalErr)
		metrics.IncOutcome(string(OutcomeExternalFailed))
		return
	}

	d.log.Info("account disabled", "account_id", a.ID, "email", a.Email)
	report.recordOutcome(a.ID, a.Email, OutcomeDisabled, nil)
	metrics.IncOutcome(string(OutcomeDisabled))
}

// disableExternal revokes access on the account's media-server backend.
// A nil return also covers the skip cases: local-only accounts, missing
// external id, and backends with no configured admin client.
func (d *Deactivator) disableExternal(ctx context.Context, a *account.Account) error {
	if !a.MediaServerType.External() || a.MediaServerUserID == "" {
		return nil
	}

	client, ok := d.backends.Lookup(a.MediaServerType)
	if !ok {
		d.log.Warn("no admin credential configured, skipping backend disable",
			"account_id", a.ID,
			"backend", a.MediaServerType,
		)
		return nil
	}

	if err := client.DisableUser(ctx, a.MediaServerUserID); err != nil {
		d.log.Error("failed to disable media-server account",
			"account_id", a.ID,
			"backend", a.MediaServerType,
			"media_server_user_id", a.MediaServerUserID,
			"error", err,
		)
		return err
	}

	d.log.Info("disabled media-server account",
		"account_id", a.ID,
		"backend", a.MediaServerType,
		"media_server_user_id", a.MediaServerUserID,
	)
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"time"

	"membership-system/internal/domain/account"
)

type AccountRepo struct {
	db *sql.DB
}

func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

const accountColumns = `
        id, email, display_name, expiry_date, permissions,
        media_server_type, media_server_user_id, created_at, updated_at
`

func (r *AccountRepo) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *AccountRepo) List(ctx context.Context) ([]account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return r.scanAll(rows)
}

func (r *AccountRepo) FindByExpiryRange(ctx context.Context, start, end time.Time) ([]account.Account, error) {
	query := `
        SELECT ` + accountColumns + `
        FROM accounts
        WHERE expiry_date IS NOT NULL AND expiry_date >= $1 AND expiry_date <= $2
        ORDER BY expiry_date
    `
	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	return r.scanAll(rows)
}

func (r *AccountRepo) FindByExpiryBefore(ctx context.Context, t time.Time) ([]account.Account, error) {
	query := `
        SELECT ` + accountColumns + `
        FROM accounts
        WHERE expiry_date IS NOT NULL AND expiry_date < $1
        ORDER BY expiry_date
    `
	rows, err := r.db.QueryContext(ctx, query, t)
	if err != nil {
		return nil, err
	}
	return r.scanAll(rows)
}

// Save upserts a single account row. New accounts get their id and
// timestamps back; existing rows only touch the mutable columns.
func (r *AccountRepo) Save(ctx context.Context, a *account.Account) error {
	if a.ID == 0 {
		query := `
            INSERT INTO accounts
                (email, display_name, expiry_date, permissions, media_server_type, media_server_user_id)
            VALUES ($1, $2, $3, $4, $5, $6)
            RETURNING id, created_at, updated_at
        `
		return r.db.QueryRowContext(ctx, query,
			a.Email, a.DisplayName, a.ExpiryDate, a.Permissions,
			string(a.MediaServerType), a.MediaServerUserID,
		).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	}

	query := `
        UPDATE accounts
        SET email = $1, display_name = $2, expiry_date = $3, permissions = $4,
            media_server_type = $5, media_server_user_id = $6, updated_at = now()
        WHERE id = $7
        RETURNING updated_at
    `
	return r.db.QueryRowContext(ctx, query,
		a.Email, a.DisplayName, a.ExpiryDate, a.Permissions,
		string(a.MediaServerType), a.MediaServerUserID, a.ID,
	).Scan(&a.UpdatedAt)
}

func (r *AccountRepo) scanOne(row *sql.Row) (*account.Account, error) {
	a := &account.Account{}
	var serverType string
	err := row.Scan(
		&a.ID, &a.Email, &a.DisplayName, &a.ExpiryDate, &a.Permissions,
		&serverType, &a.MediaServerUserID, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.MediaServerType = account.MediaServerType(serverType)
	return a, nil
}

func (r *AccountRepo) scanAll(rows *sql.Rows) ([]account.Account, error) {
	defer rows.Close()

	var accounts []account.Account
	for rows.Next() {
		var a account.Account
		var serverType string
		if err := rows.Scan(
			&a.ID, &a.Email, &a.DisplayName, &a.ExpiryDate, &a.Permissions,
			&serverType, &a.MediaServerUserID, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		a.MediaServerType = account.MediaServerType(serverType)
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

package postgres

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/tundex/airtime-bot/internal/errors"
	"github.com/tundex/airtime-bot/internal/types"

	"github.com/jackc/pgx/v5"
)

// GetAdmin returns the admin record for a Telegram sender id, or nil when
// no such record exists.
func (p *Postgres) GetAdmin(ctx context.Context, telegramID int64) (
	*types.Admin, error) {

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var admin types.Admin

	err := p.pg.QueryRow(ctx,
		`SELECT telegram_id, name FROM admins WHERE telegram_id = $1`,
		telegramID,
	).Scan(&admin.TelegramID, &admin.Name)

	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't fetch admin %d: %w", telegramID, err)
	}

	return &admin, nil
}

// HasAdmin reports whether a record exists; existence alone implies
// authorization.
func (p *Postgres) HasAdmin(ctx context.Context, telegramID int64) (bool, error) {
	admin, err := p.GetAdmin(ctx, telegramID)
	if err != nil {
		return false, err
	}

	return admin != nil, nil
}

// GetContactPhone resolves a saved recipient identifier. Identifiers are
// stored lowercased; an unknown identifier resolves to "" with no error.
func (p *Postgres) GetContactPhone(ctx context.Context, identifier string) (
	string, error) {

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var phoneNumber string

	err := p.pg.QueryRow(ctx,
		`SELECT phone_number FROM contacts WHERE identifier = $1`,
		strings.ToLower(identifier),
	).Scan(&phoneNumber)

	if stderrors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("couldn't fetch contact %q: %w", identifier, err)
	}

	return phoneNumber, nil
}

func (p *Postgres) GetWeeklySchedules(ctx context.Context) (
	[]types.Schedule, error) {

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	rows, err := p.pg.Query(ctx,
		`SELECT amount, phone_number FROM weekly_schedules ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("couldn't fetch weekly schedules: %w", err)
	}
	defer rows.Close()

	var schedules []types.Schedule

	for rows.Next() {
		var schedule types.Schedule

		if err := rows.Scan(&schedule.Amount, &schedule.PhoneNumber); err != nil {
			return nil, fmt.Errorf("couldn't scan schedule: %w", err)
		}

		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("couldn't read weekly schedules: %w", err)
	}

	return schedules, nil
}

// GetCredential fails with not_found when no credential is stored under the
// account key.
func (p *Postgres) GetCredential(ctx context.Context, key string) (
	*types.Credential, error) {

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var credential types.Credential

	err := p.pg.QueryRow(ctx,
		`SELECT username, password FROM credentials WHERE account_key = $1`,
		key,
	).Scan(&credential.Username, &credential.Password)

	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, errors.New(errors.CodeNotFound,
			fmt.Sprintf("no credential stored for account %q", key))
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't fetch credential %q: %w", key, err)
	}

	return &credential, nil
}

// GetNetworkForPhone resolves the operator code from the phone's leading
// digits; the longest stored prefix wins. Returns "-" when no prefix
// matches.
func (p *Postgres) GetNetworkForPhone(ctx context.Context, phone string) (
	string, error) {

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var operatorCode string

	err := p.pg.QueryRow(ctx,
		`SELECT operator_code
		   FROM network_prefixes
		  WHERE $1 LIKE prefix || '%'
		  ORDER BY length(prefix) DESC
		  LIMIT 1`,
		phone,
	).Scan(&operatorCode)

	if stderrors.Is(err, pgx.ErrNoRows) {
		return "-", nil
	}
	if err != nil {
		return "", fmt.Errorf("couldn't resolve network for %q: %w", phone, err)
	}

	return operatorCode, nil
}

package logins

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophidentity/internal/common"
	"github.com/dmitrijs2005/gophidentity/internal/dbx"
	"github.com/dmitrijs2005/gophidentity/internal/identity/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, accountID string, login models.ExternalLogin) error {
	query := `
		INSERT INTO AccountLogins (LoginProvider, ProviderKey, AccountId)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, login.Provider, login.ProviderKey, accountID); err != nil {
		return fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, accountID string, login models.ExternalLogin) error {
	query := `
		DELETE FROM AccountLogins
		WHERE AccountId = $1 AND LoginProvider = $2 AND ProviderKey = $3
	`
	if _, err := r.db.ExecContext(ctx, query, accountID, login.Provider, login.ProviderKey); err != nil {
		return fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return nil
}

func (r *PostgresRepository) FindAccountIDByLogin(ctx context.Context, provider, providerKey string) (string, error) {
	query := `
		SELECT AccountId FROM AccountLogins
		WHERE LoginProvider = $1 AND ProviderKey = $2
	`
	var accountID string
	if err := r.db.QueryRowContext(ctx, query, provider, providerKey).Scan(&accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return accountID, nil
}

func (r *PostgresRepository) FindAllByAccountID(ctx context.Context, accountID string) ([]models.ExternalLogin, error) {
	query := `
		SELECT LoginProvider, ProviderKey FROM AccountLogins
		WHERE AccountId = $1
		ORDER BY LoginProvider, ProviderKey
	`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	defer rows.Close()

	list := []models.ExternalLogin{}
	for rows.Next() {
		var l models.ExternalLogin
		if err := rows.Scan(&l.Provider, &l.ProviderKey); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return list, nil
}

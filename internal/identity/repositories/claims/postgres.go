package claims

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophidentity/internal/dbx"
	"github.com/dmitrijs2005/gophidentity/internal/identity/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, accountID string, claim models.Claim) error {
	query := `
		INSERT INTO AccountClaims (AccountId, ClaimType, ClaimValue)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, accountID, claim.Type, claim.Value); err != nil {
		return fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, accountID string, claim models.Claim) error {
	query := `
		DELETE FROM AccountClaims
		WHERE AccountId = $1 AND ClaimType = $2 AND ClaimValue = $3
	`
	if _, err := r.db.ExecContext(ctx, query, accountID, claim.Type, claim.Value); err != nil {
		return fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return nil
}

// FindAllByAccountID returns the account's claims in insertion order.
func (r *PostgresRepository) FindAllByAccountID(ctx context.Context, accountID string) ([]models.Claim, error) {
	query := `
		SELECT ClaimType, ClaimValue FROM AccountClaims
		WHERE AccountId = $1
		ORDER BY Id
	`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	defer rows.Close()

	list := []models.Claim{}
	for rows.Next() {
		var c models.Claim
		if err := rows.Scan(&c.Type, &c.Value); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return list, nil
}

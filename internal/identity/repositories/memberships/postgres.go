package memberships

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophidentity/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, accountID, roleID string) error {
	query := `
		INSERT INTO AccountRoles (AccountId, RoleId)
		VALUES ($1, $2)
	`
	if _, err := r.db.ExecContext(ctx, query, accountID, roleID); err != nil {
		return fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, accountID, roleID string) error {
	query := `
		DELETE FROM AccountRoles
		WHERE AccountId = $1 AND RoleId = $2
	`
	if _, err := r.db.ExecContext(ctx, query, accountID, roleID); err != nil {
		return fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return nil
}

func (r *PostgresRepository) FindRoleNamesByAccountID(ctx context.Context, accountID string) ([]string, error) {
	query := `
		SELECT r.Name
		FROM AccountRoles ar
		INNER JOIN Roles r ON r.Id = ar.RoleId
		WHERE ar.AccountId = $1
		ORDER BY r.Name
	`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return names, nil
}

package roles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophidentity/internal/common"
	"github.com/dmitrijs2005/gophidentity/internal/dbx"
	"github.com/dmitrijs2005/gophidentity/internal/identity/models"
)

// PostgresRepository implements Repository over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, role *models.Role) error {
	query := `
		INSERT INTO Roles (Id, Name)
		VALUES ($1, $2)
	`
	if _, err := r.db.ExecContext(ctx, query, role.ID, role.Name); err != nil {
		return fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, role *models.Role) error {
	query := `
		UPDATE Roles SET Name = $2
		WHERE Id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, role.ID, role.Name); err != nil {
		return fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM Roles
		WHERE Id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return nil
}

// GetAll returns every role ordered by name.
func (r *PostgresRepository) GetAll(ctx context.Context) ([]*models.Role, error) {
	query := `
		SELECT Id, Name FROM Roles
		ORDER BY Name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	defer rows.Close()

	list := []*models.Role{}
	for rows.Next() {
		role := &models.Role{}
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return list, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Role, error) {
	name, err := r.ResolveNameByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.NewRoleWithID(name, id), nil
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	id, err := r.ResolveIDByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return models.NewRoleWithID(name, id), nil
}

func (r *PostgresRepository) ResolveIDByName(ctx context.Context, name string) (string, error) {
	query := `
		SELECT Id FROM Roles
		WHERE Name = $1
	`
	return r.scalar(ctx, query, name)
}

func (r *PostgresRepository) ResolveNameByID(ctx context.Context, id string) (string, error) {
	query := `
		SELECT Name FROM Roles
		WHERE Id = $1
	`
	return r.scalar(ctx, query, id)
}

func (r *PostgresRepository) scalar(ctx context.Context, query string, arg string) (string, error) {
	var v string
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return v, nil
}

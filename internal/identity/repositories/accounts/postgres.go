package accounts

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophidentity/internal/dbx"
	"github.com/dmitrijs2005/gophidentity/internal/identity/models"
)

const accountColumns = `a.Id, a.UserName, a.Email, a.EmailConfirmed, a.PasswordHash, a.SecurityStamp,
		       a.PhoneNumber, a.PhoneNumberConfirmed, a.TwoFactorEnabled,
		       a.LockoutEndDate, a.LockoutEnabled, a.AccessFailedCount`

// filter restricts an aggregate read to the accounts matching where. The
// condition is written against the Accounts alias "a" so the same text
// applies to the primary query and to every side query.
type filter struct {
	where string
	args  []any
}

func (f filter) clause() string {
	if f.where == "" {
		return ""
	}
	return "\n		WHERE " + f.where
}

func (f filter) accountsQuery() string {
	return `
		SELECT ` + accountColumns + `
		FROM Accounts a` + f.clause()
}

func (f filter) claimsQuery() string {
	return `
		SELECT c.AccountId, c.ClaimType, c.ClaimValue
		FROM AccountClaims c
		INNER JOIN Accounts a ON a.Id = c.AccountId` + f.clause() + `
		ORDER BY c.Id`
}

func (f filter) loginsQuery() string {
	return `
		SELECT l.AccountId, l.LoginProvider, l.ProviderKey
		FROM AccountLogins l
		INNER JOIN Accounts a ON a.Id = l.AccountId` + f.clause() + `
		ORDER BY l.LoginProvider, l.ProviderKey`
}

func (f filter) rolesQuery() string {
	return `
		SELECT ar.AccountId, r.Name
		FROM AccountRoles ar
		INNER JOIN Accounts a ON a.Id = ar.AccountId
		INNER JOIN Roles r ON r.Id = ar.RoleId` + f.clause() + `
		ORDER BY r.Name`
}

// PostgresRepository implements Repository over a dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert persists a new account row.
func (r *PostgresRepository) Insert(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO Accounts (Id, UserName, Email, EmailConfirmed, PasswordHash, SecurityStamp,
		                      PhoneNumber, PhoneNumberConfirmed, TwoFactorEnabled,
		                      LockoutEndDate, LockoutEnabled, AccessFailedCount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.UserName,
		dbx.NullString(account.Email), account.EmailConfirmed,
		dbx.NullString(account.PasswordHash), dbx.NullString(account.SecurityStamp),
		dbx.NullString(account.PhoneNumber), account.PhoneNumberConfirmed,
		account.TwoFactorEnabled,
		dbx.NullTime(account.LockoutEnd), account.LockoutEnabled, account.AccessFailedCount)
	if err != nil {
		return fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return nil
}

// Update replaces the scalar columns of the account matched by ID.
func (r *PostgresRepository) Update(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE Accounts
		SET UserName = $2, Email = $3, EmailConfirmed = $4, PasswordHash = $5, SecurityStamp = $6,
		    PhoneNumber = $7, PhoneNumberConfirmed = $8, TwoFactorEnabled = $9,
		    LockoutEndDate = $10, LockoutEnabled = $11, AccessFailedCount = $12
		WHERE Id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.UserName,
		dbx.NullString(account.Email), account.EmailConfirmed,
		dbx.NullString(account.PasswordHash), dbx.NullString(account.SecurityStamp),
		dbx.NullString(account.PhoneNumber), account.PhoneNumberConfirmed,
		account.TwoFactorEnabled,
		dbx.NullTime(account.LockoutEnd), account.LockoutEnabled, account.AccessFailedCount)
	if err != nil {
		return fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return nil
}

// Delete removes the account row by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM Accounts
		WHERE Id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*models.Account, error) {
	return r.load(ctx, filter{})
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) ([]*models.Account, error) {
	return r.load(ctx, filter{where: "a.Id = $1", args: []any{id}})
}

func (r *PostgresRepository) GetByName(ctx context.Context, userName string) ([]*models.Account, error) {
	return r.load(ctx, filter{where: "a.UserName = $1", args: []any{userName}})
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) ([]*models.Account, error) {
	return r.load(ctx, filter{where: "a.Email = $1", args: []any{email}})
}

// load runs the four aggregate queries against one snapshot and stitches
// the side rows onto the matching accounts.
func (r *PostgresRepository) load(ctx context.Context, f filter) ([]*models.Account, error) {
	var (
		list   []*models.Account
		claims []accountClaim
		logins []accountLogin
		roles  []accountRole
	)

	err := dbx.ReadSnapshot(ctx, r.db, func(ctx context.Context, q dbx.DBTX) error {
		var err error
		if list, err = queryAccounts(ctx, q, f); err != nil {
			return err
		}
		if len(list) == 0 {
			return nil
		}
		if claims, err = queryClaims(ctx, q, f); err != nil {
			return err
		}
		if logins, err = queryLogins(ctx, q, f); err != nil {
			return err
		}
		roles, err = queryRoles(ctx, q, f)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}

	hydrate(list, claims, logins, roles)
	return list, nil
}

func queryAccounts(ctx context.Context, q dbx.DBTX, f filter) ([]*models.Account, error) {
	rows, err := q.QueryContext(ctx, f.accountsQuery(), f.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*models.Account{}
	for rows.Next() {
		var (
			a                         models.Account
			email, hash, stamp, phone sql.NullString
			lockoutEnd                sql.NullTime
		)
		if err := rows.Scan(&a.ID, &a.UserName, &email, &a.EmailConfirmed, &hash, &stamp,
			&phone, &a.PhoneNumberConfirmed, &a.TwoFactorEnabled,
			&lockoutEnd, &a.LockoutEnabled, &a.AccessFailedCount); err != nil {
			return nil, err
		}
		a.Email = email.String
		a.PasswordHash = hash.String
		a.SecurityStamp = stamp.String
		a.PhoneNumber = phone.String
		a.LockoutEnd = dbx.TimePtr(lockoutEnd)
		list = append(list, &a)
	}
	return list, rows.Err()
}

func queryClaims(ctx context.Context, q dbx.DBTX, f filter) ([]accountClaim, error) {
	rows, err := q.QueryContext(ctx, f.claimsQuery(), f.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []accountClaim
	for rows.Next() {
		var c accountClaim
		if err := rows.Scan(&c.accountID, &c.claim.Type, &c.claim.Value); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func queryLogins(ctx context.Context, q dbx.DBTX, f filter) ([]accountLogin, error) {
	rows, err := q.QueryContext(ctx, f.loginsQuery(), f.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []accountLogin
	for rows.Next() {
		var l accountLogin
		if err := rows.Scan(&l.accountID, &l.login.Provider, &l.login.ProviderKey); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func queryRoles(ctx context.Context, q dbx.DBTX, f filter) ([]accountRole, error) {
	rows, err := q.QueryContext(ctx, f.rolesQuery(), f.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []accountRole
	for rows.Next() {
		var r accountRole
		if err := rows.Scan(&r.accountID, &r.name); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

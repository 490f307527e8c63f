package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/gophidentity/internal/common"
	"github.com/dmitrijs2005/gophidentity/internal/dbx"
	"github.com/dmitrijs2005/gophidentity/internal/identity/models"
	"github.com/dmitrijs2005/gophidentity/internal/identity/repositories/repomanager"
	"github.com/dmitrijs2005/gophidentity/internal/logging"
)

// AccountStore implements AccountCapabilities on top of the repositories
// vended by a RepositoryManager.
type AccountStore struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

// NewAccountStore constructs an AccountStore sharing db with the other stores.
func NewAccountStore(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *AccountStore {
	return &AccountStore{
		db:          db,
		repomanager: m,
		log:         log.With("module", "account_store"),
	}
}

func first(list []*models.Account) *models.Account {
	if len(list) == 0 {
		return nil
	}
	return list[0]
}

// --- AccountReader / AccountWriter ---

func (s *AccountStore) Create(ctx context.Context, account *models.Account) error {
	if err := validateAccountRow(account); err != nil {
		return err
	}
	if err := s.repomanager.Accounts(s.db).Insert(ctx, account); err != nil {
		return fmt.Errorf("error creating account: %w", err)
	}
	return nil
}

// Update writes every scalar field of account. An unknown ID changes nothing
// and is not reported.
func (s *AccountStore) Update(ctx context.Context, account *models.Account) error {
	if err := validateAccountRow(account); err != nil {
		return err
	}
	if err := s.repomanager.Accounts(s.db).Update(ctx, account); err != nil {
		return fmt.Errorf("error updating account: %w", err)
	}
	return nil
}

// Delete removes the account; the schema cascades to its claims, logins and
// memberships.
func (s *AccountStore) Delete(ctx context.Context, account *models.Account) error {
	if err := requireAccount(account); err != nil {
		return err
	}
	if err := s.repomanager.Accounts(s.db).Delete(ctx, account.ID); err != nil {
		return fmt.Errorf("error deleting account: %w", err)
	}
	return nil
}

func (s *AccountStore) FindByID(ctx context.Context, id string) (*models.Account, error) {
	if err := requireString("id", id); err != nil {
		return nil, err
	}
	list, err := s.repomanager.Accounts(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error searching account: %w", err)
	}
	return first(list), nil
}

// FindByName returns the first account with the given user name. User names
// are not unique at this layer.
func (s *AccountStore) FindByName(ctx context.Context, userName string) (*models.Account, error) {
	if err := requireString("user name", userName); err != nil {
		return nil, err
	}
	list, err := s.repomanager.Accounts(s.db).GetByName(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("error searching account: %w", err)
	}
	return first(list), nil
}

func (s *AccountStore) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	if err := requireString("email", email); err != nil {
		return nil, err
	}
	list, err := s.repomanager.Accounts(s.db).GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error searching account: %w", err)
	}
	return first(list), nil
}

func (s *AccountStore) GetAll(ctx context.Context) ([]*models.Account, error) {
	list, err := s.repomanager.Accounts(s.db).GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing accounts: %w", err)
	}
	return list, nil
}

// --- ClaimStore ---

func (s *AccountStore) AddClaim(ctx context.Context, account *models.Account, claim models.Claim) error {
	if err := requireAccount(account); err != nil {
		return err
	}
	if err := validateClaim(claim); err != nil {
		return err
	}
	if err := s.repomanager.Claims(s.db).Insert(ctx, account.ID, claim); err != nil {
		return fmt.Errorf("error adding claim: %w", err)
	}
	return nil
}

// RemoveClaim deletes claims matching both type and value. A claim whose
// value changed since it was added is left alone.
func (s *AccountStore) RemoveClaim(ctx context.Context, account *models.Account, claim models.Claim) error {
	if err := requireAccount(account); err != nil {
		return err
	}
	if err := validateClaim(claim); err != nil {
		return err
	}
	if err := s.repomanager.Claims(s.db).Delete(ctx, account.ID, claim); err != nil {
		return fmt.Errorf("error removing claim: %w", err)
	}
	return nil
}

func (s *AccountStore) GetClaims(ctx context.Context, account *models.Account) ([]models.Claim, error) {
	if err := requireAccount(account); err != nil {
		return nil, err
	}
	list, err := s.repomanager.Claims(s.db).FindAllByAccountID(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing claims: %w", err)
	}
	return list, nil
}

// --- LoginStore ---

func (s *AccountStore) AddLogin(ctx context.Context, account *models.Account, login models.ExternalLogin) error {
	if err := requireAccount(account); err != nil {
		return err
	}
	if err := validateLogin(login); err != nil {
		return err
	}
	if err := s.repomanager.Logins(s.db).Insert(ctx, account.ID, login); err != nil {
		return fmt.Errorf("error adding login: %w", err)
	}
	return nil
}

func (s *AccountStore) RemoveLogin(ctx context.Context, account *models.Account, login models.ExternalLogin) error {
	if err := requireAccount(account); err != nil {
		return err
	}
	if err := validateLogin(login); err != nil {
		return err
	}
	if err := s.repomanager.Logins(s.db).Delete(ctx, account.ID, login); err != nil {
		return fmt.Errorf("error removing login: %w", err)
	}
	return nil
}

func (s *AccountStore) GetLogins(ctx context.Context, account *models.Account) ([]models.ExternalLogin, error) {
	if err := requireAccount(account); err != nil {
		return nil, err
	}
	list, err := s.repomanager.Logins(s.db).FindAllByAccountID(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing logins: %w", err)
	}
	return list, nil
}

func (s *AccountStore) FindByLogin(ctx context.Context, login models.ExternalLogin) (*models.Account, error) {
	if err := validateLogin(login); err != nil {
		return nil, err
	}
	accountID, err := s.repomanager.Logins(s.db).FindAccountIDByLogin(ctx, login.Provider, login.ProviderKey)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error searching login: %w", err)
	}
	return s.FindByID(ctx, accountID)
}

// --- RoleMembershipStore ---

// AddToRole links account to the role called roleName. The lookup and the
// insert share a transaction. An unknown role yields common.ErrorNotFound.
func (s *AccountStore) AddToRole(ctx context.Context, account *models.Account, roleName string) error {
	if err := requireAccount(account); err != nil {
		return err
	}
	if err := requireString("role name", roleName); err != nil {
		return err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		roleID, err := s.repomanager.Roles(tx).ResolveIDByName(ctx, roleName)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				s.log.Warn(ctx, "role assignment rejected: unknown role", "account_id", account.ID, "role", roleName)
				return fmt.Errorf("role %q: %w", roleName, common.ErrorNotFound)
			}
			return fmt.Errorf("error resolving role: %w", err)
		}
		return s.repomanager.Memberships(tx).Insert(ctx, account.ID, roleID)
	})
	if err == nil || errors.Is(err, common.ErrorNotFound) {
		return err
	}
	return fmt.Errorf("error adding role membership: %w", dbx.Classify(err))
}

// RemoveFromRole unlinks account from roleName. Unknown roles and missing
// memberships are ignored.
func (s *AccountStore) RemoveFromRole(ctx context.Context, account *models.Account, roleName string) error {
	if err := requireAccount(account); err != nil {
		return err
	}
	if err := requireString("role name", roleName); err != nil {
		return err
	}

	roleID, err := s.repomanager.Roles(s.db).ResolveIDByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return fmt.Errorf("error resolving role: %w", err)
	}
	if err := s.repomanager.Memberships(s.db).Delete(ctx, account.ID, roleID); err != nil {
		return fmt.Errorf("error removing role membership: %w", err)
	}
	return nil
}

func (s *AccountStore) GetRoles(ctx context.Context, account *models.Account) ([]string, error) {
	if err := requireAccount(account); err != nil {
		return nil, err
	}
	names, err := s.repomanager.Memberships(s.db).FindRoleNamesByAccountID(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing roles: %w", err)
	}
	return names, nil
}

func (s *AccountStore) IsInRole(ctx context.Context, account *models.Account, roleName string) (bool, error) {
	if err := requireString("role name", roleName); err != nil {
		return false, err
	}
	names, err := s.GetRoles(ctx, account)
	if err != nil {
		return false, err
	}
	return slices.Contains(names, roleName), nil
}

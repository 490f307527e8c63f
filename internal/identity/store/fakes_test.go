package store

import (
	"context"
	"database/sql"
	"slices"
	"sort"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophidentity/internal/common"
	"github.com/dmitrijs2005/gophidentity/internal/dbx"
	"github.com/dmitrijs2005/gophidentity/internal/identity/models"
	"github.com/dmitrijs2005/gophidentity/internal/identity/repositories/accounts"
	"github.com/dmitrijs2005/gophidentity/internal/identity/repositories/claims"
	"github.com/dmitrijs2005/gophidentity/internal/identity/repositories/logins"
	"github.com/dmitrijs2005/gophidentity/internal/identity/repositories/memberships"
	"github.com/dmitrijs2005/gophidentity/internal/identity/repositories/roles"
	"github.com/dmitrijs2005/gophidentity/internal/logging"
)

// memDB is an in-memory stand-in for the five tables. failWith, when set,
// is returned by every repository call.
type memDB struct {
	accounts    map[string]models.Account
	roles       map[string]models.Role
	claims      map[string][]models.Claim
	logins      map[models.ExternalLogin]string
	memberships map[models.RoleMembership]bool

	failWith error
	calls    int
}

func newMemDB() *memDB {
	return &memDB{
		accounts:    map[string]models.Account{},
		roles:       map[string]models.Role{},
		claims:      map[string][]models.Claim{},
		logins:      map[models.ExternalLogin]string{},
		memberships: map[models.RoleMembership]bool{},
	}
}

func (m *memDB) touch() error {
	m.calls++
	return m.failWith
}

type fakeAccounts struct{ m *memDB }

func (f fakeAccounts) Insert(ctx context.Context, a *models.Account) error {
	if err := f.m.touch(); err != nil {
		return err
	}
	if _, ok := f.m.accounts[a.ID]; ok {
		return common.ErrorDuplicateKey
	}
	row := *a
	row.Claims, row.Logins, row.Roles = nil, nil, nil
	f.m.accounts[a.ID] = row
	return nil
}

func (f fakeAccounts) Update(ctx context.Context, a *models.Account) error {
	if err := f.m.touch(); err != nil {
		return err
	}
	if _, ok := f.m.accounts[a.ID]; ok {
		row := *a
		row.Claims, row.Logins, row.Roles = nil, nil, nil
		f.m.accounts[a.ID] = row
	}
	return nil
}

func (f fakeAccounts) Delete(ctx context.Context, id string) error {
	if err := f.m.touch(); err != nil {
		return err
	}
	delete(f.m.accounts, id)
	delete(f.m.claims, id)
	for l, owner := range f.m.logins {
		if owner == id {
			delete(f.m.logins, l)
		}
	}
	for rm := range f.m.memberships {
		if rm.AccountID == id {
			delete(f.m.memberships, rm)
		}
	}
	return nil
}

func (f fakeAccounts) hydrate(match func(models.Account) bool) ([]*models.Account, error) {
	if err := f.m.touch(); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(f.m.accounts))
	for id := range f.m.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	list := []*models.Account{}
	for _, id := range ids {
		row := f.m.accounts[id]
		if !match(row) {
			continue
		}
		a := row
		a.Claims = append([]models.Claim{}, f.m.claims[id]...)
		a.Logins = []models.ExternalLogin{}
		for l, owner := range f.m.logins {
			if owner == id {
				a.Logins = append(a.Logins, l)
			}
		}
		a.Roles = f.m.roleNames(id)
		list = append(list, &a)
	}
	return list, nil
}

func (f fakeAccounts) GetAll(ctx context.Context) ([]*models.Account, error) {
	return f.hydrate(func(models.Account) bool { return true })
}

func (f fakeAccounts) GetByID(ctx context.Context, id string) ([]*models.Account, error) {
	return f.hydrate(func(a models.Account) bool { return a.ID == id })
}

func (f fakeAccounts) GetByName(ctx context.Context, name string) ([]*models.Account, error) {
	return f.hydrate(func(a models.Account) bool { return a.UserName == name })
}

func (f fakeAccounts) GetByEmail(ctx context.Context, email string) ([]*models.Account, error) {
	return f.hydrate(func(a models.Account) bool { return a.Email == email })
}

func (m *memDB) roleNames(accountID string) []string {
	names := []string{}
	for rm := range m.memberships {
		if rm.AccountID == accountID {
			names = append(names, m.roles[rm.RoleID].Name)
		}
	}
	sort.Strings(names)
	return names
}

type fakeRoles struct{ m *memDB }

func (f fakeRoles) Insert(ctx context.Context, r *models.Role) error {
	if err := f.m.touch(); err != nil {
		return err
	}
	for _, existing := range f.m.roles {
		if existing.Name == r.Name {
			return common.ErrorDuplicateKey
		}
	}
	f.m.roles[r.ID] = *r
	return nil
}

func (f fakeRoles) Update(ctx context.Context, r *models.Role) error {
	if err := f.m.touch(); err != nil {
		return err
	}
	if _, ok := f.m.roles[r.ID]; ok {
		f.m.roles[r.ID] = *r
	}
	return nil
}

func (f fakeRoles) Delete(ctx context.Context, id string) error {
	if err := f.m.touch(); err != nil {
		return err
	}
	delete(f.m.roles, id)
	for rm := range f.m.memberships {
		if rm.RoleID == id {
			delete(f.m.memberships, rm)
		}
	}
	return nil
}

func (f fakeRoles) GetAll(ctx context.Context) ([]*models.Role, error) {
	if err := f.m.touch(); err != nil {
		return nil, err
	}
	list := []*models.Role{}
	for _, r := range f.m.roles {
		list = append(list, &r)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (f fakeRoles) GetByID(ctx context.Context, id string) (*models.Role, error) {
	name, err := f.ResolveNameByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.NewRoleWithID(name, id), nil
}

func (f fakeRoles) GetByName(ctx context.Context, name string) (*models.Role, error) {
	id, err := f.ResolveIDByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return models.NewRoleWithID(name, id), nil
}

func (f fakeRoles) ResolveIDByName(ctx context.Context, name string) (string, error) {
	if err := f.m.touch(); err != nil {
		return "", err
	}
	for id, r := range f.m.roles {
		if r.Name == name {
			return id, nil
		}
	}
	return "", common.ErrorNotFound
}

func (f fakeRoles) ResolveNameByID(ctx context.Context, id string) (string, error) {
	if err := f.m.touch(); err != nil {
		return "", err
	}
	r, ok := f.m.roles[id]
	if !ok {
		return "", common.ErrorNotFound
	}
	return r.Name, nil
}

type fakeClaims struct{ m *memDB }

func (f fakeClaims) Insert(ctx context.Context, accountID string, c models.Claim) error {
	if err := f.m.touch(); err != nil {
		return err
	}
	f.m.claims[accountID] = append(f.m.claims[accountID], c)
	return nil
}

func (f fakeClaims) Delete(ctx context.Context, accountID string, c models.Claim) error {
	if err := f.m.touch(); err != nil {
		return err
	}
	f.m.claims[accountID] = slices.DeleteFunc(f.m.claims[accountID], func(x models.Claim) bool { return x == c })
	return nil
}

func (f fakeClaims) FindAllByAccountID(ctx context.Context, accountID string) ([]models.Claim, error) {
	if err := f.m.touch(); err != nil {
		return nil, err
	}
	return append([]models.Claim{}, f.m.claims[accountID]...), nil
}

type fakeLogins struct{ m *memDB }

func (f fakeLogins) Insert(ctx context.Context, accountID string, l models.ExternalLogin) error {
	if err := f.m.touch(); err != nil {
		return err
	}
	if _, ok := f.m.logins[l]; ok {
		return common.ErrorDuplicateKey
	}
	f.m.logins[l] = accountID
	return nil
}

func (f fakeLogins) Delete(ctx context.Context, accountID string, l models.ExternalLogin) error {
	if err := f.m.touch(); err != nil {
		return err
	}
	if f.m.logins[l] == accountID {
		delete(f.m.logins, l)
	}
	return nil
}

func (f fakeLogins) FindAccountIDByLogin(ctx context.Context, provider, key string) (string, error) {
	if err := f.m.touch(); err != nil {
		return "", err
	}
	owner, ok := f.m.logins[models.ExternalLogin{Provider: provider, ProviderKey: key}]
	if !ok {
		return "", common.ErrorNotFound
	}
	return owner, nil
}

func (f fakeLogins) FindAllByAccountID(ctx context.Context, accountID string) ([]models.ExternalLogin, error) {
	if err := f.m.touch(); err != nil {
		return nil, err
	}
	list := []models.ExternalLogin{}
	for l, owner := range f.m.logins {
		if owner == accountID {
			list = append(list, l)
		}
	}
	return list, nil
}

type fakeMemberships struct{ m *memDB }

func (f fakeMemberships) Insert(ctx context.Context, accountID, roleID string) error {
	if err := f.m.touch(); err != nil {
		return err
	}
	key := models.RoleMembership{AccountID: accountID, RoleID: roleID}
	if f.m.memberships[key] {
		return common.ErrorDuplicateKey
	}
	f.m.memberships[key] = true
	return nil
}

func (f fakeMemberships) Delete(ctx context.Context, accountID, roleID string) error {
	if err := f.m.touch(); err != nil {
		return err
	}
	delete(f.m.memberships, models.RoleMembership{AccountID: accountID, RoleID: roleID})
	return nil
}

func (f fakeMemberships) FindRoleNamesByAccountID(ctx context.Context, accountID string) ([]string, error) {
	if err := f.m.touch(); err != nil {
		return nil, err
	}
	return f.m.roleNames(accountID), nil
}

type fakeRepoManager struct {
	m *memDB
}

func (r *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error          { return nil }
func (r *fakeRepoManager) SchemaVersion(context.Context, *sql.DB) (int64, error) { return 1, nil }
func (r *fakeRepoManager) Accounts(db dbx.DBTX) accounts.Repository              { return fakeAccounts{r.m} }
func (r *fakeRepoManager) Roles(db dbx.DBTX) roles.Repository                    { return fakeRoles{r.m} }
func (r *fakeRepoManager) Claims(db dbx.DBTX) claims.Repository                  { return fakeClaims{r.m} }
func (r *fakeRepoManager) Logins(db dbx.DBTX) logins.Repository                  { return fakeLogins{r.m} }
func (r *fakeRepoManager) Memberships(db dbx.DBTX) memberships.Repository        { return fakeMemberships{r.m} }

type fixture struct {
	db       *sql.DB
	mock     sqlmock.Sqlmock
	mem      *memDB
	accounts *AccountStore
	roles    *RoleStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mem := newMemDB()
	rm := &fakeRepoManager{m: mem}
	log := logging.Discard()
	return &fixture{
		db:       db,
		mock:     mock,
		mem:      mem,
		accounts: NewAccountStore(db, rm, log),
		roles:    NewRoleStore(db, rm, log),
	}
}

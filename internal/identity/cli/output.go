package cli

import (
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/gophidentity/internal/identity/models"
)

type claimView struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type loginView struct {
	Provider    string `json:"provider"`
	ProviderKey string `json:"provider_key"`
}

// accountView is the printed form of an account. The password hash is
// reduced to a flag and LockedOut is evaluated at print time.
type accountView struct {
	ID                   string      `json:"id"`
	UserName             string      `json:"user_name"`
	Email                string      `json:"email,omitempty"`
	EmailConfirmed       bool        `json:"email_confirmed"`
	HasPassword          bool        `json:"has_password"`
	PhoneNumber          string      `json:"phone_number,omitempty"`
	PhoneNumberConfirmed bool        `json:"phone_number_confirmed"`
	TwoFactorEnabled     bool        `json:"two_factor_enabled"`
	LockoutEnd           *time.Time  `json:"lockout_end,omitempty"`
	LockoutEnabled       bool        `json:"lockout_enabled"`
	LockedOut            bool        `json:"locked_out"`
	AccessFailedCount    int         `json:"access_failed_count"`
	Claims               []claimView `json:"claims"`
	Logins               []loginView `json:"logins"`
	Roles                []string    `json:"roles"`
}

type roleView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newAccountView(a *models.Account, now time.Time) accountView {
	v := accountView{
		ID:                   a.ID,
		UserName:             a.UserName,
		Email:                a.Email,
		EmailConfirmed:       a.EmailConfirmed,
		HasPassword:          a.PasswordHash != "",
		PhoneNumber:          a.PhoneNumber,
		PhoneNumberConfirmed: a.PhoneNumberConfirmed,
		TwoFactorEnabled:     a.TwoFactorEnabled,
		LockoutEnd:           a.LockoutEnd,
		LockoutEnabled:       a.LockoutEnabled,
		LockedOut:            a.IsLockedOut(now),
		AccessFailedCount:    a.AccessFailedCount,
		Claims:               newClaimViews(a.Claims),
		Logins:               newLoginViews(a.Logins),
		Roles:                a.Roles,
	}
	if v.Roles == nil {
		v.Roles = []string{}
	}
	return v
}

func newAccountViews(list []*models.Account, now time.Time) []accountView {
	out := make([]accountView, 0, len(list))
	for _, a := range list {
		out = append(out, newAccountView(a, now))
	}
	return out
}

func newClaimViews(list []models.Claim) []claimView {
	out := make([]claimView, 0, len(list))
	for _, c := range list {
		out = append(out, claimView{Type: c.Type, Value: c.Value})
	}
	return out
}

func newLoginViews(list []models.ExternalLogin) []loginView {
	out := make([]loginView, 0, len(list))
	for _, l := range list {
		out = append(out, loginView{Provider: l.Provider, ProviderKey: l.ProviderKey})
	}
	return out
}

func newRoleView(r *models.Role) roleView {
	return roleView{ID: r.ID, Name: r.Name}
}

func newRoleViews(list []*models.Role) []roleView {
	out := make([]roleView, 0, len(list))
	for _, r := range list {
		out = append(out, newRoleView(r))
	}
	return out
}

func (c *cli) print(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package accounts

import "github.com/dmitrijs2005/gophidentity/internal/identity/models"

type accountClaim struct {
	accountID string
	claim     models.Claim
}

type accountLogin struct {
	accountID string
	login     models.ExternalLogin
}

type accountRole struct {
	accountID string
	name      string
}

// hydrate attaches the side rows to the account they reference. Rows whose
// account is not in the list are dropped. Collections are never nil after
// hydration.
func hydrate(list []*models.Account, claims []accountClaim, logins []accountLogin, roles []accountRole) {
	byID := make(map[string]*models.Account, len(list))
	for _, a := range list {
		a.Claims = []models.Claim{}
		a.Logins = []models.ExternalLogin{}
		a.Roles = []string{}
		byID[a.ID] = a
	}

	for _, c := range claims {
		if a, ok := byID[c.accountID]; ok {
			a.Claims = append(a.Claims, c.claim)
		}
	}
	for _, l := range logins {
		if a, ok := byID[l.accountID]; ok {
			a.Logins = append(a.Logins, l.login)
		}
	}
	for _, r := range roles {
		if a, ok := byID[r.accountID]; ok {
			a.Roles = append(a.Roles, r.name)
		}
	}
}

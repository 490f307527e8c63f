package models

// Claim is a typed assertion about an account. It has no identity of its
// own: deletion matches on the account, type and value.
type Claim struct {
	Type  string
	Value string
}

// ExternalLogin binds an account to a third-party identity. The
// (Provider, ProviderKey) pair is unique across all accounts.
type ExternalLogin struct {
	Provider    string
	ProviderKey string
}

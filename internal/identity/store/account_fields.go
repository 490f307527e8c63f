package store

import (
	"time"

	"github.com/dmitrijs2005/gophidentity/internal/identity/models"
)

// Field accessors below never touch storage.

// --- LockoutStore ---

func (s *AccountStore) GetLockoutEnd(account *models.Account) (*time.Time, error) {
	if err := requireAccount(account); err != nil {
		return nil, err
	}
	return account.LockoutEnd, nil
}

// SetLockoutEnd sets the lockout end; nil clears it.
func (s *AccountStore) SetLockoutEnd(account *models.Account, end *time.Time) error {
	if err := requireAccount(account); err != nil {
		return err
	}
	if end != nil {
		utc := end.UTC()
		end = &utc
	}
	account.LockoutEnd = end
	return nil
}

func (s *AccountStore) GetLockoutEnabled(account *models.Account) (bool, error) {
	if err := requireAccount(account); err != nil {
		return false, err
	}
	return account.LockoutEnabled, nil
}

func (s *AccountStore) SetLockoutEnabled(account *models.Account, enabled bool) error {
	if err := requireAccount(account); err != nil {
		return err
	}
	account.LockoutEnabled = enabled
	return nil
}

func (s *AccountStore) GetAccessFailedCount(account *models.Account) (int, error) {
	if err := requireAccount(account); err != nil {
		return 0, err
	}
	return account.AccessFailedCount, nil
}

// IncrementAccessFailedCount bumps the counter and returns the new value.
func (s *AccountStore) IncrementAccessFailedCount(account *models.Account) (int, error) {
	if err := requireAccount(account); err != nil {
		return 0, err
	}
	account.AccessFailedCount++
	return account.AccessFailedCount, nil
}

func (s *AccountStore) ResetAccessFailedCount(account *models.Account) error {
	if err := requireAccount(account); err != nil {
		return err
	}
	account.AccessFailedCount = 0
	return nil
}

// --- PasswordStore ---

func (s *AccountStore) GetPasswordHash(account *models.Account) (string, error) {
	if err := requireAccount(account); err != nil {
		return "", err
	}
	return account.PasswordHash, nil
}

// SetPasswordHash stores an already computed hash. An empty hash removes the
// password.
func (s *AccountStore) SetPasswordHash(account *models.Account, hash string) error {
	if err := requireAccount(account); err != nil {
		return err
	}
	account.PasswordHash = hash
	return nil
}

func (s *AccountStore) HasPassword(account *models.Account) (bool, error) {
	if err := requireAccount(account); err != nil {
		return false, err
	}
	return account.PasswordHash != "", nil
}

// --- SecurityStampStore ---

func (s *AccountStore) GetSecurityStamp(account *models.Account) (string, error) {
	if err := requireAccount(account); err != nil {
		return "", err
	}
	return account.SecurityStamp, nil
}

func (s *AccountStore) SetSecurityStamp(account *models.Account, stamp string) error {
	if err := requireAccount(account); err != nil {
		return err
	}
	if err := requireString("stamp", stamp); err != nil {
		return err
	}
	account.SecurityStamp = stamp
	return nil
}

// --- TwoFactorStore ---

func (s *AccountStore) GetTwoFactorEnabled(account *models.Account) (bool, error) {
	if err := requireAccount(account); err != nil {
		return false, err
	}
	return account.TwoFactorEnabled, nil
}

func (s *AccountStore) SetTwoFactorEnabled(account *models.Account, enabled bool) error {
	if err := requireAccount(account); err != nil {
		return err
	}
	account.TwoFactorEnabled = enabled
	return nil
}

// --- EmailStore ---

func (s *AccountStore) GetEmail(account *models.Account) (string, error) {
	if err := requireAccount(account); err != nil {
		return "", err
	}
	return account.Email, nil
}

func (s *AccountStore) SetEmail(account *models.Account, email string) error {
	if err := requireAccount(account); err != nil {
		return err
	}
	account.Email = email
	return nil
}

func (s *AccountStore) GetEmailConfirmed(account *models.Account) (bool, error) {
	if err := requireAccount(account); err != nil {
		return false, err
	}
	return account.EmailConfirmed, nil
}

func (s *AccountStore) SetEmailConfirmed(account *models.Account, confirmed bool) error {
	if err := requireAccount(account); err != nil {
		return err
	}
	account.EmailConfirmed = confirmed
	return nil
}

// --- PhoneNumberStore ---

func (s *AccountStore) GetPhoneNumber(account *models.Account) (string, error) {
	if err := requireAccount(account); err != nil {
		return "", err
	}
	return account.PhoneNumber, nil
}

func (s *AccountStore) SetPhoneNumber(account *models.Account, phone string) error {
	if err := requireAccount(account); err != nil {
		return err
	}
	if err := requireString("phone number", phone); err != nil {
		return err
	}
	account.PhoneNumber = phone
	return nil
}

func (s *AccountStore) GetPhoneNumberConfirmed(account *models.Account) (bool, error) {
	if err := requireAccount(account); err != nil {
		return false, err
	}
	return account.PhoneNumberConfirmed, nil
}

func (s *AccountStore) SetPhoneNumberConfirmed(account *models.Account, confirmed bool) error {
	if err := requireAccount(account); err != nil {
		return err
	}
	account.PhoneNumberConfirmed = confirmed
	return nil
}

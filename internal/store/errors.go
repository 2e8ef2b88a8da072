package store

import "fmt"

// DuplicateAccountError is returned when adding an account whose email is
// already present in the collection.
type DuplicateAccountError struct {
	Email string
}

func (e *DuplicateAccountError) Error() string {
	return fmt.Sprintf("account %q already exists", e.Email)
}

// AccountNotFoundError is returned for operations against an email that has
// no stored account record.
type AccountNotFoundError struct {
	Email string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("no account found for %q; run 'calctl account add %s' first", e.Email, e.Email)
}

// CredentialsNotConfiguredError is returned when an account is added before
// the shared OAuth client credentials have been imported.
type CredentialsNotConfiguredError struct{}

func (e *CredentialsNotConfiguredError) Error() string {
	return "oauth client credentials not configured; run 'calctl account credentials <file>' first"
}

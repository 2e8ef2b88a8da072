package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	appDirName      = "calctl"
	credentialsFile = "credentials.json"
	accountsFile    = "accounts.json"
)

// Store is the file-backed credential store. It owns all persistence; callers
// never touch the JSON documents directly.
type Store struct {
	dir      string
	accounts []Account
}

// Open opens (and creates, if necessary) a store rooted at dir.
// A missing or malformed accounts file yields an empty collection.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	s := &Store{dir: dir}
	s.loadAccounts()
	return s, nil
}

// OpenDefault opens the store in the user's XDG config directory.
func OpenDefault() (*Store, error) {
	return Open(filepath.Join(xdg.ConfigHome, appDirName))
}

// Dir returns the directory backing this store.
func (s *Store) Dir() string {
	return s.dir
}

// loadAccounts reads the accounts file into memory. Corrupted local state is
// recovered as an empty collection, never surfaced as a startup failure.
func (s *Store) loadAccounts() {
	s.accounts = nil

	b, err := os.ReadFile(filepath.Join(s.dir, accountsFile))
	if err != nil {
		return
	}

	var accounts []Account
	if err := json.Unmarshal(b, &accounts); err != nil {
		slog.Warn("accounts file is malformed, starting with an empty collection",
			"path", filepath.Join(s.dir, accountsFile))
		return
	}

	s.accounts = accounts
}

// Credentials returns the shared OAuth client credentials. The second return
// value is false when the file is absent or fails to parse; a malformed file
// means "not configured", not an error.
func (s *Store) Credentials() (ClientCredentials, bool) {
	b, err := os.ReadFile(filepath.Join(s.dir, credentialsFile))
	if err != nil {
		return ClientCredentials{}, false
	}

	var c ClientCredentials
	if err := json.Unmarshal(b, &c); err != nil {
		return ClientCredentials{}, false
	}
	if c.ClientID == "" || c.ClientSecret == "" {
		return ClientCredentials{}, false
	}

	return c, true
}

// SetCredentials replaces the shared OAuth client credentials. Last write
// wins; the values are not validated here.
func (s *Store) SetCredentials(c ClientCredentials) error {
	if err := writeJSON(filepath.Join(s.dir, credentialsFile), c); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// HasAccount reports whether an account record exists for email.
func (s *Store) HasAccount(email string) bool {
	_, ok := s.Account(email)
	return ok
}

// Account returns the stored record for email.
func (s *Store) Account(email string) (Account, bool) {
	for _, a := range s.accounts {
		if a.Email == email {
			return a, true
		}
	}
	return Account{}, false
}

// Accounts returns all stored accounts in insertion order.
func (s *Store) Accounts() []Account {
	out := make([]Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// AddAccount appends a new account record and persists the collection.
// Adding an email that is already present fails without altering storage.
func (s *Store) AddAccount(a Account) error {
	if s.HasAccount(a.Email) {
		return &DuplicateAccountError{Email: a.Email}
	}

	s.accounts = append(s.accounts, a)
	if err := s.saveAccounts(); err != nil {
		s.accounts = s.accounts[:len(s.accounts)-1]
		return err
	}
	return nil
}

// DeleteAccount removes the record for email, reporting whether one existed.
// The collection is rewritten only when a removal actually occurred.
func (s *Store) DeleteAccount(email string) (bool, error) {
	for i, a := range s.accounts {
		if a.Email == email {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			if err := s.saveAccounts(); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// saveAccounts rewrites the whole collection. O(n) per write is acceptable
// for the single-digit account counts this tool manages.
func (s *Store) saveAccounts() error {
	accounts := s.accounts
	if accounts == nil {
		accounts = []Account{}
	}
	if err := writeJSON(filepath.Join(s.dir, accountsFile), accounts); err != nil {
		return fmt.Errorf("write accounts: %w", err)
	}
	return nil
}

// writeJSON writes v as indented JSON via a temp file and rename so readers
// never observe a partially written document.
func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	b = append(b, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return err
	}
	return nil
}

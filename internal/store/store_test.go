package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	return s
}

func testAccount(email string) Account {
	return Account{
		Email: email,
		OAuth: OAuthMaterial{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RefreshToken: "refresh-" + email,
		},
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "calctl")
	s, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCredentialsMissing(t *testing.T) {
	s := testStore(t)

	_, ok := s.Credentials()
	assert.False(t, ok)
}

func TestCredentialsRoundTrip(t *testing.T) {
	s := testStore(t)

	want := ClientCredentials{ClientID: "id.apps.googleusercontent.com", ClientSecret: "secret"}
	require.NoError(t, s.SetCredentials(want))

	got, ok := s.Credentials()
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestCredentialsMalformedTreatedAsNotConfigured(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, credentialsFile), []byte("{not json"), 0600))

	s, err := Open(dir)
	require.NoError(t, err)

	_, ok := s.Credentials()
	assert.False(t, ok)
}

func TestSetCredentialsOverwrites(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.SetCredentials(ClientCredentials{ClientID: "first", ClientSecret: "a"}))
	require.NoError(t, s.SetCredentials(ClientCredentials{ClientID: "second", ClientSecret: "b"}))

	got, ok := s.Credentials()
	require.True(t, ok)
	assert.Equal(t, "second", got.ClientID)
}

func TestAddAndGetAccount(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.AddAccount(testAccount("alice@example.com")))

	assert.True(t, s.HasAccount("alice@example.com"))
	got, ok := s.Account("alice@example.com")
	require.True(t, ok)
	assert.Equal(t, "refresh-alice@example.com", got.OAuth.RefreshToken)

	_, ok = s.Account("bob@example.com")
	assert.False(t, ok)
}

func TestAddDuplicateAccountFails(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.AddAccount(testAccount("alice@example.com")))

	err := s.AddAccount(testAccount("alice@example.com"))
	var dup *DuplicateAccountError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "alice@example.com", dup.Email)

	// The stored collection must be unchanged.
	assert.Len(t, s.Accounts(), 1)
}

func TestAccountsPreserveInsertionOrder(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.AddAccount(testAccount("x@example.com")))
	require.NoError(t, s.AddAccount(testAccount("y@example.com")))

	accounts := s.Accounts()
	require.Len(t, accounts, 2)
	assert.Equal(t, "x@example.com", accounts[0].Email)
	assert.Equal(t, "y@example.com", accounts[1].Email)

	removed, err := s.DeleteAccount("x@example.com")
	require.NoError(t, err)
	assert.True(t, removed)

	accounts = s.Accounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, "y@example.com", accounts[0].Email)
}

func TestDeleteAccountReportsMissing(t *testing.T) {
	s := testStore(t)

	removed, err := s.DeleteAccount("nobody@example.com")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDeleteAccountPersists(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.AddAccount(testAccount("alice@example.com")))

	removed, err := s.DeleteAccount("alice@example.com")
	require.NoError(t, err)
	require.True(t, removed)

	// Reopen to verify the collection was rewritten on disk.
	s2, err := Open(dir)
	require.NoError(t, err)
	assert.False(t, s2.HasAccount("alice@example.com"))
}

func TestAccountsSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.AddAccount(testAccount("alice@example.com")))

	s2, err := Open(dir)
	require.NoError(t, err)
	got, ok := s2.Account("alice@example.com")
	require.True(t, ok)
	assert.Equal(t, "client-id", got.OAuth.ClientID)
}

func TestCorruptAccountsFileLoadsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, accountsFile), []byte("][ definitely not json"), 0600))

	s, err := Open(dir)
	require.NoError(t, err)
	assert.Empty(t, s.Accounts())
}

func TestParseClientCredentials(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ClientCredentials
		wantErr bool
	}{
		{
			name:  "flat document",
			input: `{"clientId": "id", "clientSecret": "secret"}`,
			want:  ClientCredentials{ClientID: "id", ClientSecret: "secret"},
		},
		{
			name:  "google installed client",
			input: `{"installed": {"client_id": "id", "client_secret": "secret"}}`,
			want:  ClientCredentials{ClientID: "id", ClientSecret: "secret"},
		},
		{
			name:  "google web client",
			input: `{"web": {"client_id": "id", "client_secret": "secret"}}`,
			want:  ClientCredentials{ClientID: "id", ClientSecret: "secret"},
		},
		{
			name:    "missing secret",
			input:   `{"installed": {"client_id": "id"}}`,
			wantErr: true,
		},
		{
			name:    "not json",
			input:   `hello`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClientCredentials([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/calctl/internal/server"
	"github.com/teemow/calctl/internal/store"
)

func execAccountCmd(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { configDir = "" })
	configDir = dir

	cmd := newAccountCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeCredentialsFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestAccountCredentials_Import(t *testing.T) {
	dir := t.TempDir()
	path := writeCredentialsFile(t, `{"clientId":"id-1","clientSecret":"secret-1"}`)

	out, err := execAccountCmd(t, dir, "credentials", path)
	require.NoError(t, err)
	assert.Contains(t, out, "credentials saved")

	st, err := store.Open(dir)
	require.NoError(t, err)
	creds, ok := st.Credentials()
	require.True(t, ok)
	assert.Equal(t, "id-1", creds.ClientID)
	assert.Equal(t, "secret-1", creds.ClientSecret)
}

func TestAccountCredentials_GoogleConsoleFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeCredentialsFile(t, `{"installed":{"client_id":"id-2","client_secret":"secret-2"}}`)

	_, err := execAccountCmd(t, dir, "credentials", path)
	require.NoError(t, err)

	st, err := store.Open(dir)
	require.NoError(t, err)
	creds, ok := st.Credentials()
	require.True(t, ok)
	assert.Equal(t, "id-2", creds.ClientID)
}

func TestAccountCredentials_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := writeCredentialsFile(t, `{"something":"else"}`)

	_, err := execAccountCmd(t, dir, "credentials", path)
	require.Error(t, err)
}

func TestAccountList_Empty(t *testing.T) {
	out, err := execAccountCmd(t, t.TempDir(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No accounts configured")
}

func TestAccountList(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(dir)
	require.NoError(t, err)
	require.NoError(t, st.AddAccount(store.Account{Email: "alice@example.com"}))
	require.NoError(t, st.AddAccount(store.Account{Email: "bob@example.com"}))

	out, err := execAccountCmd(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "alice@example.com")
	assert.Contains(t, out, "bob@example.com")
}

func TestAccountAdd_WithoutCredentials(t *testing.T) {
	_, err := execAccountCmd(t, t.TempDir(), "add", "alice@example.com")
	var notConfigured *store.CredentialsNotConfiguredError
	require.ErrorAs(t, err, &notConfigured)
}

func TestAccountAdd_Duplicate(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(dir)
	require.NoError(t, err)
	require.NoError(t, st.SetCredentials(store.ClientCredentials{ClientID: "id", ClientSecret: "secret"}))
	require.NoError(t, st.AddAccount(store.Account{Email: "alice@example.com"}))

	_, err = execAccountCmd(t, dir, "add", "alice@example.com")
	var duplicate *store.DuplicateAccountError
	require.ErrorAs(t, err, &duplicate)
	assert.Equal(t, "alice@example.com", duplicate.Email)
}

func TestAccountRemove(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(dir)
	require.NoError(t, err)
	require.NoError(t, st.AddAccount(store.Account{Email: "alice@example.com"}))

	out, err := execAccountCmd(t, dir, "remove", "alice@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "removed")

	reopened, err := store.Open(dir)
	require.NoError(t, err)
	assert.False(t, reopened.HasAccount("alice@example.com"))
}

func TestAccountRemove_Missing(t *testing.T) {
	_, err := execAccountCmd(t, t.TempDir(), "remove", "nobody@example.com")
	var notFound *store.AccountNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestRegisterAllTools(t *testing.T) {
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	sc := server.NewServerContext(context.Background(), st, nil)
	defer func() { _ = sc.Shutdown() }()

	mcpSrv := mcpserver.NewMCPServer("calctl-test", "test",
		mcpserver.WithToolCapabilities(true),
	)

	require.NoError(t, registerAllTools(mcpSrv, sc))

	registered := make(map[string]bool)
	for _, tool := range mcpSrv.ListTools() {
		registered[tool.Tool.Name] = true
	}

	expected := []string{
		"account_list",
		"account_remove",
		"calendar_list_calendars",
		"calendar_list_acl",
		"calendar_list_events",
		"calendar_get_event",
		"calendar_create_event",
		"calendar_update_event",
		"calendar_delete_event",
		"calendar_free_busy",
	}
	for _, name := range expected {
		assert.True(t, registered[name], "missing tool %s", name)
	}
}

func TestGetCategoryFromToolName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"calendar_list_events", "Google Calendar Tools"},
		{"account_list", "Account Tools"},
		{"something_else", "Other"},
	}

	for _, tt := range tests {
		if got := getCategoryFromToolName(tt.name); got != tt.expected {
			t.Errorf("getCategoryFromToolName(%q) = %q, expected %q", tt.name, got, tt.expected)
		}
	}
}

func TestGenerateToolsMarkdown(t *testing.T) {
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	sc := server.NewServerContext(context.Background(), st, nil)
	defer func() { _ = sc.Shutdown() }()

	mcpSrv := mcpserver.NewMCPServer("calctl-test", "test",
		mcpserver.WithToolCapabilities(true),
	)
	require.NoError(t, registerAllTools(mcpSrv, sc))

	serverTools := mcpSrv.ListTools()
	tools := make([]mcp.Tool, 0, len(serverTools))
	for _, serverTool := range serverTools {
		tools = append(tools, serverTool.Tool)
	}

	markdown := generateToolsMarkdown(tools)
	assert.Contains(t, markdown, "# MCP Tools Reference")
	assert.Contains(t, markdown, "### calendar_free_busy")
	assert.Contains(t, markdown, "### account_list")
}

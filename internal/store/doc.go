// Package store persists the shared OAuth application credentials and the
// collection of authorized accounts as JSON documents in the user's
// configuration directory.
//
// Two documents are kept: credentials.json holds the single OAuth client
// id/secret shared by all accounts, and accounts.json holds one record per
// authorized account including its refresh token. The whole account
// collection is rewritten on every mutation; the expected account count is
// small, so this is simpler and safer than incremental persistence.
//
// A missing or malformed accounts file loads as an empty collection. Local
// state corruption must never prevent the tool from starting.
package store

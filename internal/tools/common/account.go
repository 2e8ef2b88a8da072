package common

import "fmt"

// GetAccountFromArgs extracts the account email from request arguments.
// Returns an error when the argument is missing or empty: every tool
// operates on an explicitly selected account.
func GetAccountFromArgs(args map[string]interface{}) (string, error) {
	accountVal, ok := args["account"].(string)
	if !ok || accountVal == "" {
		return "", fmt.Errorf("account is required; pass the email of a stored account")
	}
	return accountVal, nil
}

// Package auth implements the interactive OAuth2 authorization-code handshake
// used to enroll a new account.
//
// The automatic mode opens the user's browser and captures the authorization
// code on a short-lived loopback listener; the manual mode prints the consent
// URL and reads the pasted redirect back from stdin. Either way the handshake
// is a single blocking attempt whose only success output is a refresh token.
package auth

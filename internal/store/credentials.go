package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

var errInvalidClientJSON = errors.New("invalid credentials file (expected clientId/clientSecret or a Google OAuth client JSON)")

// googleClientFile matches the JSON downloaded from the Google Cloud Console
// for an OAuth client registration.
type googleClientFile struct {
	Installed *struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
	} `json:"installed"`
	Web *struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
	} `json:"web"`
}

// ParseClientCredentials decodes b into shared credentials. It accepts both
// the flat {clientId, clientSecret} document this store writes and the
// installed/web variants of the Google Cloud Console download, so users can
// import the downloaded file directly.
func ParseClientCredentials(b []byte) (ClientCredentials, error) {
	var flat ClientCredentials
	if err := json.Unmarshal(b, &flat); err == nil && flat.ClientID != "" && flat.ClientSecret != "" {
		return flat, nil
	}

	var f googleClientFile
	if err := json.Unmarshal(b, &f); err != nil {
		return ClientCredentials{}, fmt.Errorf("decode credentials json: %w", err)
	}

	var clientID, clientSecret string
	if f.Installed != nil {
		clientID, clientSecret = f.Installed.ClientID, f.Installed.ClientSecret
	} else if f.Web != nil {
		clientID, clientSecret = f.Web.ClientID, f.Web.ClientSecret
	}

	if clientID == "" || clientSecret == "" {
		return ClientCredentials{}, errInvalidClientJSON
	}

	return ClientCredentials{ClientID: clientID, ClientSecret: clientSecret}, nil
}

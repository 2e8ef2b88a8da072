package store

// ClientCredentials is the OAuth application identity shared by all accounts.
// Users register their own OAuth client in the Google Cloud Console and import
// it once with `calctl account credentials`.
type ClientCredentials struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

// OAuthMaterial holds the token material stored for one account. The client
// id/secret are copied from the shared credentials at account-add time so a
// record stays usable even if the shared credentials are replaced later.
type OAuthMaterial struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	RefreshToken string `json:"refreshToken"`
	AccessToken  string `json:"accessToken,omitempty"`
}

// Account is one authorized Google account.
type Account struct {
	Email string        `json:"email"`
	OAuth OAuthMaterial `json:"oauth2"`
}

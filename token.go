package crewdesk

// TokenPair is the pair of opaque bearer credentials issued by the API
// server on login or refresh: a short-lived access token authorizing API
// calls and a longer-lived refresh token used solely to obtain a new access
// token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

package httpclient

import "net/http"

// AuthConfig configures request authentication.
type AuthConfig struct {
	// Header is the header name. Empty disables auth.
	Header string
	// Value is the header value.
	Value string
}

// APIKeyAuthHeader sends key in the named header.
func APIKeyAuthHeader(key, headerName string) *AuthConfig {
	return &AuthConfig{Header: headerName, Value: key}
}

// BearerAuth sends an Authorization: Bearer header.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Header: "Authorization", Value: "Bearer " + token}
}

// NoAuth disables the client-level auth for one request. Signed URLs carry
// their own credentials and must not receive the subscription key.
func NoAuth() *AuthConfig {
	return &AuthConfig{}
}

func (a *AuthConfig) apply(req *http.Request) {
	if a == nil || a.Header == "" {
		return
	}
	req.Header.Set(a.Header, a.Value)
}

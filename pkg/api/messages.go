package api

type (
	// AuthRequest is the credential exchange payload
	AuthRequest struct {
		ClientID     string `json:"clientId"`
		ClientSecret string `json:"clientSecret"`
	}

	// AuthResponse is returned by a successful credential exchange.
	// ExpiresIn is in seconds; the server may omit it, in which case the
	// token is treated as valid for the process lifetime
	AuthResponse struct {
		AccessToken string `json:"accessToken"`
		ExpiresIn   int64  `json:"expiresIn,omitempty"`
	}

	// Envelope is the bulk request wrapper used by the Siteflow API for
	// create operations
	Envelope[T any] struct {
		Data []T `json:"data"`
	}
)

package identity

import "context"

// Token is the verified identity snapshot extracted from a provider-issued
// credential: the stable user id plus the public profile fields the stores
// embed into rides and threads.
type Token struct {
	UID         string `json:"uid"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
	Email       string `json:"email,omitempty"`
}

// Provider verifies credentials minted by the external identity service.
// The application never stores passwords; authentication is entirely the
// provider's concern.
type Provider interface {
	VerifyToken(ctx context.Context, idToken string) (*Token, error)
	GetUser(ctx context.Context, uid string) (*Token, error)
}

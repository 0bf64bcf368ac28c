package repositories

import (
	"context"

	"github.com/GenzHireHub/platform-service/internal/models"
)

// IdentityAssertion is the result of a successful external
// authentication: the provider's claims reduced to what the account
// layer needs, plus the bearer token the client keeps using.
type IdentityAssertion struct {
	Subject     string
	Email       string
	DisplayName string
	AvatarURL   string
	Verified    bool
	AccessToken string
}

// AccountSeed converts the assertion into the account record created
// on first login. Role stays unset until onboarding.
func (a *IdentityAssertion) AccountSeed() *models.User {
	user := &models.User{
		ID:            a.Subject,
		Name:          a.DisplayName,
		Email:         a.Email,
		EmailVerified: a.Verified,
	}
	if a.AvatarURL != "" {
		avatar := a.AvatarURL
		user.AvatarURL = &avatar
	}
	return user
}

// IdentityProvider is the OAuth boundary. The service never implements
// the handshake itself, only reacts to its result.
type IdentityProvider interface {
	// ExchangeCode completes the authorization-code flow.
	ExchangeCode(ctx context.Context, code, state string) (*IdentityAssertion, error)

	// ParseToken validates a bearer token and returns the assertion it
	// carries.
	ParseToken(token string) (*IdentityAssertion, error)
}

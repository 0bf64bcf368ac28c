package casdoor

import (
	"context"
	"fmt"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"

	"github.com/GenzHireHub/platform-service/internal/repositories"
)

// CasdoorConfig holds the configuration for the Casdoor connection.
type CasdoorConfig struct {
	Endpoint         string
	ClientID         string
	ClientSecret     string
	Certificate      string
	OrganizationName string
	ApplicationName  string
}

// IdentityCasdoor implements the identity-provider boundary against
// Casdoor. It is injected where needed; there is no package-level
// client.
type IdentityCasdoor struct {
	client *casdoorsdk.Client
	config CasdoorConfig
}

func NewIdentityCasdoor(config CasdoorConfig) repositories.IdentityProvider {
	client := casdoorsdk.NewClient(
		config.Endpoint,
		config.ClientID,
		config.ClientSecret,
		config.Certificate,
		config.OrganizationName,
		config.ApplicationName,
	)

	return &IdentityCasdoor{
		client: client,
		config: config,
	}
}

// ExchangeCode completes the authorization-code flow and parses the
// resulting token into an assertion.
func (p *IdentityCasdoor) ExchangeCode(ctx context.Context, code, state string) (*repositories.IdentityAssertion, error) {
	token, err := p.client.GetOAuthToken(code, state)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	assertion, err := p.ParseToken(token.AccessToken)
	if err != nil {
		return nil, err
	}
	assertion.AccessToken = token.AccessToken

	return assertion, nil
}

// ParseToken validates a Casdoor JWT and extracts the identity claims.
func (p *IdentityCasdoor) ParseToken(token string) (*repositories.IdentityAssertion, error) {
	claims, err := p.client.ParseJwtToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims.User.Id == "" {
		return nil, fmt.Errorf("token carries no subject")
	}
	if claims.User.Email == "" {
		return nil, fmt.Errorf("token carries no email")
	}

	name := claims.User.DisplayName
	if name == "" {
		name = claims.User.Name
	}

	return &repositories.IdentityAssertion{
		Subject:     claims.User.Id,
		Email:       claims.User.Email,
		DisplayName: name,
		AvatarURL:   claims.User.Avatar,
		Verified:    true, // Casdoor only issues tokens for verified logins
		AccessToken: token,
	}, nil
}

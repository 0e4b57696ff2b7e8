package services

import (
	"context"
	"errors"
	"fmt"

	"jamride/internal/models"
	"jamride/internal/utils"
	"jamride/pkg/identity"
	"jamride/pkg/logger"
	"jamride/pkg/oauth"
)

type AuthService interface {
	// LoginWithIDToken exchanges a provider-issued credential for an
	// application session. No account record is created: the verified
	// identity snapshot itself is the account.
	LoginWithIDToken(ctx context.Context, idToken string) (*AuthResponse, error)

	// RefreshSession mints a fresh token pair from a valid refresh token.
	RefreshSession(ctx context.Context, refreshToken string) (*AuthResponse, error)

	// SocialAuthURL returns the consent-page URL for a social provider.
	SocialAuthURL(provider, state string) (string, error)

	// SocialCallback completes the social sign-in flow: exchanges the
	// authorization code, fetches the profile, and mints a session.
	SocialCallback(ctx context.Context, provider, code string) (*AuthResponse, error)
}

type AuthResponse struct {
	User   models.Identity  `json:"user"`
	Tokens *utils.TokenPair `json:"tokens"`
}

type authService struct {
	identity  identity.Provider
	oauth     map[string]oauth.Provider
	jwtSecret string
	logger    *logger.Logger
}

func NewAuthService(identityProvider identity.Provider, oauthProviders map[string]oauth.Provider, jwtSecret string, log *logger.Logger) AuthService {
	return &authService{
		identity:  identityProvider,
		oauth:     oauthProviders,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

func (s *authService) LoginWithIDToken(ctx context.Context, idToken string) (*AuthResponse, error) {
	if s.identity == nil {
		return nil, errors.New("identity provider not configured")
	}

	token, err := s.identity.VerifyToken(ctx, idToken)
	if err != nil {
		s.logger.WithError(err).Warn("Identity token rejected")
		return nil, err
	}

	user := models.Identity{
		ID:     token.UID,
		Name:   token.DisplayName,
		Avatar: token.PhotoURL,
	}
	return s.mintSession(user)
}

func (s *authService) RefreshSession(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	pair, err := utils.RefreshAccessToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	claims, err := utils.ValidateToken(pair.AccessToken, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User: models.Identity{
			ID:     claims.UserID,
			Name:   claims.Name,
			Avatar: claims.Avatar,
		},
		Tokens: pair,
	}, nil
}

func (s *authService) SocialAuthURL(provider, state string) (string, error) {
	p, ok := s.oauth[provider]
	if !ok {
		return "", fmt.Errorf("unsupported oauth provider: %s", provider)
	}
	return p.GetAuthURL(state), nil
}

func (s *authService) SocialCallback(ctx context.Context, provider, code string) (*AuthResponse, error) {
	p, ok := s.oauth[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported oauth provider: %s", provider)
	}

	tokens, err := p.ExchangeCode(ctx, code)
	if err != nil {
		s.logger.WithError(err).WithField("provider", provider).Warn("OAuth code exchange failed")
		return nil, err
	}

	info, err := p.GetUserInfo(ctx, tokens.AccessToken)
	if err != nil {
		return nil, err
	}

	// Social profiles are namespaced by provider so ids cannot collide
	// with identity-provider uids.
	user := models.Identity{
		ID:     fmt.Sprintf("%s:%s", info.Provider, info.ID),
		Name:   info.Name,
		Avatar: info.Picture,
	}
	return s.mintSession(user)
}

func (s *authService) mintSession(user models.Identity) (*AuthResponse, error) {
	pair, err := utils.GenerateTokenPair(user.ID, user.Name, user.Avatar, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	s.logger.WithUserID(user.ID).Info("Session created")
	return &AuthResponse{User: user, Tokens: pair}, nil
}

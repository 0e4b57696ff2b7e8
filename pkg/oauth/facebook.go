package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
)

type FacebookProvider struct {
	config *oauth2.Config
}

func NewFacebookProvider(appID, appSecret, redirectURL string) *FacebookProvider {
	return &FacebookProvider{
		config: &oauth2.Config{
			ClientID:     appID,
			ClientSecret: appSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"email", "public_profile"},
			Endpoint:     facebook.Endpoint,
		},
	}
}

func (f *FacebookProvider) GetAuthURL(state string) string {
	return f.config.AuthCodeURL(state)
}

func (f *FacebookProvider) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	token, err := f.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	return &TokenResponse{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresIn:    token.Expiry.Unix(),
	}, nil
}

func (f *FacebookProvider) GetUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	endpoint := fmt.Sprintf("https://graph.facebook.com/me?fields=id,email,name,picture&access_token=%s", accessToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Facebook API error: %s", string(body))
	}

	var fbUser struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture struct {
			Data struct {
				URL string `json:"url"`
			} `json:"data"`
		} `json:"picture"`
	}
	if err := json.Unmarshal(body, &fbUser); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user info: %w", err)
	}

	return &UserInfo{
		ID:       fbUser.ID,
		Email:    fbUser.Email,
		Name:     fbUser.Name,
		Picture:  fbUser.Picture.Data.URL,
		Provider: "facebook",
	}, nil
}

package config

type OAuthConfig struct {
	Google   *OAuthProviderConfig `yaml:"google"`
	Facebook *OAuthProviderConfig `yaml:"facebook"`
}

type OAuthProviderConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

func loadOAuthConfig() *OAuthConfig {
	baseURL := getEnv("APP_BASE_URL", "http://localhost:8080")

	return &OAuthConfig{
		Google: &OAuthProviderConfig{
			ClientID:     getEnv("GOOGLE_OAUTH_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_OAUTH_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_OAUTH_REDIRECT_URL", baseURL+"/api/v1/auth/google/callback"),
		},
		Facebook: &OAuthProviderConfig{
			ClientID:     getEnv("FACEBOOK_OAUTH_CLIENT_ID", ""),
			ClientSecret: getEnv("FACEBOOK_OAUTH_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("FACEBOOK_OAUTH_REDIRECT_URL", baseURL+"/api/v1/auth/facebook/callback"),
		},
	}
}

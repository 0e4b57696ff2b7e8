package config

type IdentityConfig struct {
	Provider        string `yaml:"provider"`
	CredentialsFile string `yaml:"credentials_file"`
}

func loadIdentityConfig() *IdentityConfig {
	return &IdentityConfig{
		Provider:        getEnv("IDENTITY_PROVIDER", "firebase"),
		CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
	}
}

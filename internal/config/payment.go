package config

type PaymentConfig struct {
	Stripe *StripeConfig `yaml:"stripe"`
}

type StripeConfig struct {
	SecretKey  string `yaml:"secret_key"`
	PriceID    string `yaml:"price_id"`
	SuccessURL string `yaml:"success_url"`
	CancelURL  string `yaml:"cancel_url"`
}

func loadPaymentConfig() *PaymentConfig {
	baseURL := getEnv("APP_BASE_URL", "http://localhost:8080")

	return &PaymentConfig{
		Stripe: &StripeConfig{
			SecretKey:  getEnv("STRIPE_SECRET_KEY", ""),
			PriceID:    getEnv("STRIPE_PRICE_ID", ""),
			SuccessURL: getEnv("STRIPE_SUCCESS_URL", baseURL+"/payment-success"),
			CancelURL:  getEnv("STRIPE_CANCEL_URL", baseURL+"/payment-cancelled"),
		},
	}
}

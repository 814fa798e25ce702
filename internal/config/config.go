package config

import (
	"github.com/kelseyhightower/envconfig"
)

type SMTPConfig struct {
	Host          string `envconfig:"SMTP_HOST" default:"localhost"`
	Port          string `envconfig:"SMTP_PORT" default:"1025"`
	User          string `envconfig:"SMTP_USER"`
	Pass          string `envconfig:"SMTP_PASS"`
	TLSMode       string `envconfig:"SMTP_TLS_MODE" default:"none"` // none|starttls|tls
	SkipVerifyTLS bool   `envconfig:"SMTP_SKIP_VERIFY_TLS" default:"false"`
	FromName      string `envconfig:"SMTP_FROM_NAME" default:"EzyStay"`
	FromAddr      string `envconfig:"SMTP_FROM_ADDR" default:"no-reply@ezystay.local"`
}

type RazorpayConfig struct {
	KeyID string `envconfig:"RAZORPAY_KEY_ID" required:"true"`
	// KeySecret signs confirmations; never log it or echo it in responses.
	KeySecret string `envconfig:"RAZORPAY_KEY_SECRET" required:"true"`
	BaseURL   string `envconfig:"RAZORPAY_BASE_URL" default:"https://api.razorpay.com"`
}

type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	DBDSN    string `envconfig:"DB_DSN" required:"true"`

	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"10080"` // 7d
	AdminKey     string `envconfig:"ADMIN_KEY" required:"true"`

	Razorpay RazorpayConfig
	SMTP     SMTPConfig
}

func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}

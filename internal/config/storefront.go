package config

import "time"

// Storefront holds the members-portal endpoint and credentials.
type Storefront struct {
	BaseURL     string        `env:"STOREFRONT_BASE_URL,notEmpty"`
	Email       string        `env:"STOREFRONT_EMAIL,notEmpty"`
	Password    string        `env:"STOREFRONT_PASSWORD,notEmpty" json:"-"`
	HTTPTimeout time.Duration `env:"STOREFRONT_HTTP_TIMEOUT" envDefault:"20s"`
	LogBodies   bool          `env:"STOREFRONT_LOG_BODIES" envDefault:"false"`
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kansothelabel/insights-manager/internal/ads"
	"github.com/kansothelabel/insights-manager/internal/shopify"
	"github.com/kansothelabel/insights-manager/internal/store"
	"github.com/kansothelabel/insights-manager/log"
	"github.com/spf13/viper"
)

// HTTPConfig is the configuration for the http server.
type HTTPConfig struct {
	Port           string   `mapstructure:"port"`
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Config represents the global configuration for the service.
type Config struct {
	DB      store.Config   `mapstructure:"postgres"`
	Logger  log.Config     `mapstructure:"logger"`
	HTTP    HTTPConfig     `mapstructure:"http"`
	Shopify shopify.Config `mapstructure:"shopify"`
	Ads     ads.Config     `mapstructure:"ads"`
}

// LoadConfig loads the configuration from a file and/or environment
// variables. Environment variables take precedence over file values.
func LoadConfig(cfgFile string) (*Config, error) {
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))

	bindEnvVars()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/config/insights-manager")
		viper.AddConfigPath("/etc/insights-manager")
		_ = viper.ReadInConfig()
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	return &config, nil
}

// bindEnvVars binds flat environment variable names to nested config keys so
// deployments can configure the service without a config file.
func bindEnvVars() {
	// Postgres
	viper.BindEnv("postgres.dsn", "POSTGRES_DSN")
	viper.BindEnv("postgres.automigrate", "POSTGRES_AUTOMIGRATE")
	viper.BindEnv("postgres.max_open_connections", "POSTGRES_MAX_OPEN_CONNECTIONS")
	viper.BindEnv("postgres.max_idle_connections", "POSTGRES_MAX_IDLE_CONNECTIONS")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	viper.BindEnv("http.port", "HTTP_PORT")
	viper.BindEnv("http.address", "HTTP_ADDRESS")
	viper.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")

	// Shopify admin API
	viper.BindEnv("shopify.domain", "SHOPIFY_STORE")
	viper.BindEnv("shopify.access_token", "SHOPIFY_PASSWORD")
	viper.BindEnv("shopify.api_version", "SHOPIFY_API_VERSION")

	// Google Ads
	viper.BindEnv("ads.google_client_id", "GOOGLE_CLIENT_ID")
	viper.BindEnv("ads.google_client_secret", "GOOGLE_CLIENT_SECRET")
	viper.BindEnv("ads.google_refresh_token", "GOOGLE_REFRESH_TOKEN")
	viper.BindEnv("ads.google_ads_developer_token", "GOOGLE_ADS_DEVELOPER_TOKEN")
	viper.BindEnv("ads.google_ads_customer_id", "GOOGLE_ADS_CUSTOMER_ID")
	viper.BindEnv("ads.google_ads_login_customer_id", "GOOGLE_ADS_LOGIN_CUSTOMER_ID")

	// Meta Marketing API
	viper.BindEnv("ads.fb_ad_account_id", "FB_AD_ACCOUNT_ID")
	viper.BindEnv("ads.fb_access_token", "FB_ACCESS_TOKEN")
}

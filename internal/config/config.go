package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("config file path is required (use -config or -c)")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvironmentOverrides(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

var (
	EnvProviderClientID     = "AUTHGATE_PROVIDER_CLIENT_ID"
	EnvProviderClientSecret = "AUTHGATE_PROVIDER_CLIENT_SECRET"
	EnvProviderIssuerURL    = "AUTHGATE_PROVIDER_ISSUER_URL"
	EnvRedisPassword        = "AUTHGATE_REDIS_PASSWORD"
	EnvRedisUsername        = "AUTHGATE_REDIS_USERNAME"
	EnvRedisSentinelPass    = "AUTHGATE_REDIS_SENTINEL_PASSWORD"
)

func applyEnvironmentOverrides(config *Config) {
	if clientID := os.Getenv(EnvProviderClientID); clientID != "" {
		config.Provider.ClientID = clientID
	}

	if clientSecret := os.Getenv(EnvProviderClientSecret); clientSecret != "" {
		config.Provider.ClientSecret = clientSecret
	}

	if issuerURL := os.Getenv(EnvProviderIssuerURL); issuerURL != "" {
		config.Provider.IssuerURL = issuerURL
	}

	if redisPassword := os.Getenv(EnvRedisPassword); redisPassword != "" {
		if config.Redis == nil {
			config.Redis = &RedisConfig{}
		}
		config.Redis.Password = redisPassword
	}

	if redisUsername := os.Getenv(EnvRedisUsername); redisUsername != "" {
		if config.Redis == nil {
			config.Redis = &RedisConfig{}
		}
		config.Redis.Username = redisUsername
	}

	if sentinelPassword := os.Getenv(EnvRedisSentinelPass); sentinelPassword != "" {
		if config.Redis == nil {
			config.Redis = &RedisConfig{}
		}
		if config.Redis.Sentinel == nil {
			config.Redis.Sentinel = &RedisSentinelConfig{}
		}
		config.Redis.Sentinel.SentinelPassword = sentinelPassword
	}
}

func validateConfig(config *Config) error {
	err := config.validateServerConfig()
	if err != nil {
		return err
	}

	err = config.validateLogConfig()
	if err != nil {
		return err
	}

	err = config.validateProviderConfig()
	if err != nil {
		return err
	}

	err = config.validateCookieConfig()
	if err != nil {
		return err
	}

	err = config.validateGateConfig()
	if err != nil {
		return err
	}

	err = config.validateEventsConfig()
	if err != nil {
		return err
	}

	err = config.validateRedisConfig()
	if err != nil {
		return err
	}

	return nil
}

func (c *Config) validateServerConfig() error {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerConfig.Port
	}

	if c.Server.ExternalURL == "" {
		return fmt.Errorf("server.external_url is required")
	}

	if err := validateURL(c.Server.ExternalURL, "server.external_url"); err != nil {
		return err
	}

	if c.Server.Debug != nil && c.Server.Debug.Enabled {
		if c.Server.Debug.Host == "" {
			c.Server.Debug.Host = DefaultDebugConfig.Host
		}
		if c.Server.Debug.Port <= 0 || c.Server.Debug.Port >= 65535 {
			c.Server.Debug.Port = DefaultDebugConfig.Port
		}
	}

	return nil
}

func (c *Config) validateLogConfig() error {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogConfig.Level
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	if c.Log.Format == "" {
		c.Log.Format = DefaultLogConfig.Format
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

func (c *Config) validateProviderConfig() error {
	if c.Provider.ClientID == "" {
		return fmt.Errorf("provider.client_id is required")
	}

	if c.Provider.ClientSecret == "" {
		return fmt.Errorf("provider.client_secret is required")
	}

	if err := validateURL(c.Provider.IssuerURL, "provider.issuer_url"); err != nil {
		return err
	}

	if c.Provider.SignupURL != "" {
		if err := validateURL(c.Provider.SignupURL, "provider.signup_url"); err != nil {
			return err
		}
	}

	if c.Provider.ProfileURL != "" {
		if err := validateURL(c.Provider.ProfileURL, "provider.profile_url"); err != nil {
			return err
		}
	}

	if len(c.Provider.Scopes) == 0 {
		c.Provider.Scopes = DefaultProviderScopes
	}

	return nil
}

func (c *Config) validateCookieConfig() error {
	if c.Cookies.AccessName == "" {
		c.Cookies.AccessName = DefaultCookieConfig.AccessName
	}

	if c.Cookies.RefreshName == "" {
		c.Cookies.RefreshName = DefaultCookieConfig.RefreshName
	}

	if c.Cookies.AccessName == c.Cookies.RefreshName {
		return fmt.Errorf("cookies.access_name and cookies.refresh_name must differ")
	}

	return nil
}

func (c *Config) validateGateConfig() error {
	if c.Gate.ValidationTimeout == 0 {
		c.Gate.ValidationTimeout = DefaultGateConfig.ValidationTimeout
	}

	if c.Gate.ValidationTimeout < 0 {
		return fmt.Errorf("gate.validation_timeout must be positive")
	}

	return nil
}

func (c *Config) validateEventsConfig() error {
	if c.Events.Channel == "" {
		c.Events.Channel = DefaultEventsConfig.Channel
	}

	if c.Events.Buffer == 0 {
		c.Events.Buffer = DefaultEventsConfig.Buffer
	}

	if c.Events.Buffer < 0 {
		return fmt.Errorf("events.buffer must be positive")
	}

	return nil
}

func (c *Config) validateRedisConfig() error {
	if c.Redis == nil {
		return fmt.Errorf("redis configuration is required for the session event bus")
	}

	if c.Redis.Sentinel != nil {
		if c.Redis.Sentinel.MasterName == "" {
			return fmt.Errorf("redis.sentinel.master_name is required")
		}
		if len(c.Redis.Sentinel.SentinelAddresses) == 0 {
			return fmt.Errorf("redis.sentinel.sentinel_addresses is required")
		}
		return nil
	}

	if c.Redis.Address == "" {
		return fmt.Errorf("redis.address is required")
	}

	return nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ExternalURL: "https://app.example.com",
		},
		Provider: ProviderConfig{
			IssuerURL:    "https://id.example.com",
			ClientID:     "authgate",
			ClientSecret: "secret",
		},
		Redis: &RedisConfig{
			Address: "localhost:6379",
		},
	}
}

func TestValidateConfig_AppliesDefaults(t *testing.T) {
	cfg := validTestConfig()

	require.NoError(t, validateConfig(cfg))

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, []string{"openid", "profile", "email", "offline_access"}, cfg.Provider.Scopes)
	assert.Equal(t, "ag_access_token", cfg.Cookies.AccessName)
	assert.Equal(t, "ag_refresh_token", cfg.Cookies.RefreshName)
	assert.Equal(t, 5*time.Second, cfg.Gate.ValidationTimeout)
	assert.Equal(t, "authgate:session-events", cfg.Events.Channel)
	assert.Equal(t, 64, cfg.Events.Buffer)
}

func TestValidateConfig_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing external url",
			mutate:  func(c *Config) { c.Server.ExternalURL = "" },
			wantErr: "server.external_url is required",
		},
		{
			name:    "relative external url",
			mutate:  func(c *Config) { c.Server.ExternalURL = "app.example.com" },
			wantErr: "server.external_url",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: "log.level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: "log.format",
		},
		{
			name:    "missing client id",
			mutate:  func(c *Config) { c.Provider.ClientID = "" },
			wantErr: "provider.client_id is required",
		},
		{
			name:    "missing client secret",
			mutate:  func(c *Config) { c.Provider.ClientSecret = "" },
			wantErr: "provider.client_secret is required",
		},
		{
			name:    "missing issuer url",
			mutate:  func(c *Config) { c.Provider.IssuerURL = "" },
			wantErr: "provider.issuer_url",
		},
		{
			name: "cookie name clash",
			mutate: func(c *Config) {
				c.Cookies.AccessName = "token"
				c.Cookies.RefreshName = "token"
			},
			wantErr: "must differ",
		},
		{
			name:    "negative validation timeout",
			mutate:  func(c *Config) { c.Gate.ValidationTimeout = -time.Second },
			wantErr: "gate.validation_timeout",
		},
		{
			name:    "negative events buffer",
			mutate:  func(c *Config) { c.Events.Buffer = -1 },
			wantErr: "events.buffer",
		},
		{
			name:    "missing redis",
			mutate:  func(c *Config) { c.Redis = nil },
			wantErr: "redis configuration is required",
		},
		{
			name:    "missing redis address",
			mutate:  func(c *Config) { c.Redis.Address = "" },
			wantErr: "redis.address is required",
		},
		{
			name: "sentinel without master name",
			mutate: func(c *Config) {
				c.Redis.Sentinel = &RedisSentinelConfig{
					SentinelAddresses: []string{"localhost:26379"},
				}
			},
			wantErr: "redis.sentinel.master_name",
		},
		{
			name: "sentinel without addresses",
			mutate: func(c *Config) {
				c.Redis.Sentinel = &RedisSentinelConfig{MasterName: "mymaster"}
			},
			wantErr: "redis.sentinel.sentinel_addresses",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateConfig_SentinelSkipsAddressRequirement(t *testing.T) {
	cfg := validTestConfig()
	cfg.Redis.Address = ""
	cfg.Redis.Sentinel = &RedisSentinelConfig{
		MasterName:        "mymaster",
		SentinelAddresses: []string{"localhost:26379"},
	}

	assert.NoError(t, validateConfig(cfg))
}

func TestLoadConfig(t *testing.T) {
	content := `
server:
  port: 9000
  external_url: https://app.example.com
log:
  level: debug
  format: json
provider:
  issuer_url: https://id.example.com
  client_id: authgate
  client_secret: from-file
redis:
  address: localhost:6379
`

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 5*time.Second, cfg.Gate.ValidationTimeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	content := `
server:
  external_url: https://app.example.com
provider:
  issuer_url: https://id.example.com
  client_id: authgate
  client_secret: from-file
redis:
  address: localhost:6379
`

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv(EnvProviderClientSecret, "from-env")
	t.Setenv(EnvRedisPassword, "redis-pass")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Provider.ClientSecret)
	assert.Equal(t, "redis-pass", cfg.Redis.Password)
}

func TestLoadConfig_MissingPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

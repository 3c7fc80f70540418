package config

import "time"

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Provider ProviderConfig `yaml:"provider"`
	Cookies  CookieConfig   `yaml:"cookies"`
	Gate     GateConfig     `yaml:"gate"`
	Events   EventsConfig   `yaml:"events"`
	Redis    *RedisConfig   `yaml:"redis"`
}

type ServerConfig struct {
	Port        int          `yaml:"port"`
	ExternalURL string       `yaml:"external_url"`
	Debug       *DebugConfig `yaml:"debug"`
}

type DebugConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowedMethods   []string `yaml:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers"`
	ExposedHeaders   []string `yaml:"exposed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAgeSeconds    int      `yaml:"max_age_seconds"`
}

// ProviderConfig points at the identity provider the session service adapter
// speaks to. SignupURL and ProfileURL are provider REST endpoints outside
// the OIDC discovery document.
type ProviderConfig struct {
	IssuerURL    string   `yaml:"issuer_url"`
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	Scopes       []string `yaml:"scopes"`
	SignupURL    string   `yaml:"signup_url"`
	ProfileURL   string   `yaml:"profile_url"`
}

// CookieConfig names the credential cookies and fixes their attributes.
// These values are owned by the session service adapter; nothing else in
// the application edits credential cookies.
type CookieConfig struct {
	AccessName  string `yaml:"access_name"`
	RefreshName string `yaml:"refresh_name"`
	Domain      string `yaml:"domain"`
	Secure      bool   `yaml:"secure"`
}

// GateConfig carries the explicit validation-timeout policy. A hung
// provider call times out and the gate fails closed.
type GateConfig struct {
	ValidationTimeout time.Duration `yaml:"validation_timeout"`
}

type EventsConfig struct {
	Channel string `yaml:"channel"`
	Buffer  int    `yaml:"buffer"`
}

type RedisConfig struct {
	Address     string               `yaml:"address"`
	Username    string               `yaml:"username"`
	Password    string               `yaml:"password"`
	EventsIndex int                  `yaml:"events_index"`
	Sentinel    *RedisSentinelConfig `yaml:"sentinel"`
}

type RedisSentinelConfig struct {
	MasterName        string   `yaml:"master_name"`
	SentinelAddresses []string `yaml:"sentinel_addresses"`
	SentinelUsername  string   `yaml:"sentinel_username"`
	SentinelPassword  string   `yaml:"sentinel_password"`
}

var DefaultServerConfig = ServerConfig{
	Port: 8080,
}

var DefaultDebugConfig = DebugConfig{
	Host: "127.0.0.1",
	Port: 9090,
}

var DefaultLogConfig = LogConfig{
	Level:  "info",
	Format: "text",
}

var DefaultProviderScopes = []string{"openid", "profile", "email", "offline_access"}

var DefaultCookieConfig = CookieConfig{
	AccessName:  "ag_access_token",
	RefreshName: "ag_refresh_token",
}

var DefaultGateConfig = GateConfig{
	ValidationTimeout: 5 * time.Second,
}

var DefaultEventsConfig = EventsConfig{
	Channel: "authgate:session-events",
	Buffer:  64,
}

package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// Server is the upstream DNS resolver for UDP mode, "host:port".
	Server string `koanf:"server" validate:"required,hostname_port"`

	// DoHURL is the JSON DNS-over-HTTPS endpoint for doh mode.
	DoHURL string `koanf:"doh_url" validate:"required,url"`

	// Mode selects the resolver implementation.
	Mode string `koanf:"mode" validate:"required,oneof=udp doh system"`

	// TimeoutMS bounds a single query, in milliseconds.
	TimeoutMS int `koanf:"timeout_ms" validate:"required,gte=1,lte=60000"`

	// PayloadSize is the UDP payload size advertised via EDNS(0).
	PayloadSize int `koanf:"payload_size" validate:"required,gte=512,lte=65535"`

	// LocalPort is the preferred local UDP port; 0 lets the OS choose.
	LocalPort int `koanf:"local_port" validate:"gte=0,lt=65536"`

	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`
}

// envLoader loads environment variables with the prefix "KDNS_", lowercasing
// keys and stripping the prefix. It can be swapped out in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "KDNS_",
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, "KDNS_")), value
		},
	}), nil)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	// Load default values using structs provider.
	k.Load(structs.Provider(AppConfig{
		Server:      "1.1.1.1:53",
		DoHURL:      "https://dns.google/resolve",
		Mode:        "udp",
		TimeoutMS:   5000,
		PayloadSize: 4096,
		Env:         "prod",
		LogLevel:    "info",
	}, "koanf"), nil)

	err := envLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig

	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	err = validate.Struct(&cfg)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

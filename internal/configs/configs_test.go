package configs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "PORT", "ALLOWED_ORIGINS", "WS_CONNECT_RATE", "WS_CONNECT_BURST", "CLIENT_SEND_BUFFER"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	req := require.New(t)
	clearEnv(t)

	cfg, err := LoadConfig()

	req.NoError(err)
	req.Equal("development", cfg.Environment)
	req.True(cfg.IsDevelopment())
	req.Equal(8080, cfg.Port)
	req.Empty(cfg.AllowedOrigins)
	req.Equal(1.0, cfg.ConnectRate)
	req.Equal(5, cfg.ConnectBurst)
	req.Equal(256, cfg.ClientSendBuffer)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	req := require.New(t)
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("WS_CONNECT_RATE", "0.5")
	t.Setenv("WS_CONNECT_BURST", "3")
	t.Setenv("CLIENT_SEND_BUFFER", "16")

	cfg, err := LoadConfig()

	req.NoError(err)
	req.False(cfg.IsDevelopment())
	req.Equal(9090, cfg.Port)
	req.Equal([]string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	req.Equal(0.5, cfg.ConnectRate)
	req.Equal(3, cfg.ConnectBurst)
	req.Equal(16, cfg.ClientSendBuffer)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"non numeric port":  {"PORT", "http"},
		"privileged port":   {"PORT", "80"},
		"negative rate":     {"WS_CONNECT_RATE", "-1"},
		"zero burst":        {"WS_CONNECT_BURST", "0"},
		"zero send buffer":  {"CLIENT_SEND_BUFFER", "0"},
		"non numeric burst": {"WS_CONNECT_BURST", "many"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])

			cfg, err := LoadConfig()

			require.Error(t, err)
			require.Nil(t, cfg)
		})
	}
}

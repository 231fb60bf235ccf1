package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"API_BASE_URL", "API_TIMEOUT", "UI_LANG", "RABBITMQ_HOST", "OPS_PORT"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.API.Timeout)
	assert.Equal(t, "es", cfg.App.Lang)
	assert.Empty(t, cfg.App.OpsPort)
	assert.False(t, cfg.MQEnabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://records.example.com")
	t.Setenv("API_TOKEN", "tok")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("UI_LANG", "en")
	t.Setenv("RABBITMQ_HOST", "mq")

	cfg := Load()

	assert.Equal(t, "https://records.example.com", cfg.API.BaseURL)
	assert.Equal(t, "tok", cfg.API.Token)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, "en", cfg.App.Lang)
	assert.True(t, cfg.MQEnabled())
}

func TestLoad_InvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("API_TIMEOUT", "soon")
	assert.Equal(t, time.Duration(0), Load().API.Timeout)
}

func TestConfig_CollectionURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
		wantErr bool
	}{
		{name: "host only", baseURL: "http://localhost:8080", want: "http://localhost:8080/api/usuarios"},
		{name: "trailing slash", baseURL: "http://localhost:8080/", want: "http://localhost:8080/api/usuarios"},
		{name: "with prefix", baseURL: "https://gw.example.com/v2", want: "https://gw.example.com/v2/api/usuarios"},
		{name: "no scheme", baseURL: "localhost", wantErr: true},
		{name: "garbage", baseURL: "://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Config{API: API{BaseURL: tt.baseURL}}.CollectionURL()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_AMQPDSN(t *testing.T) {
	cfg := Config{MQ: MQ{User: "guest", Password: "p@ss", Host: "mq", AmqpPort: "5672", Vhost: "/"}}

	dsn, err := cfg.AMQPDSN()
	require.NoError(t, err)
	assert.Equal(t, "amqp://guest:p%40ss@mq:5672/%2F", dsn)

	_, err = Config{}.AMQPDSN()
	require.Error(t, err)
}

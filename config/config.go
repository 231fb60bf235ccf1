package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

// CollectionPath is the fixed records endpoint on the configured API host.
const CollectionPath = "/api/usuarios"

type (
	APP struct {
		Name    string
		Env     string
		LogFile string
		Lang    string
		OpsPort string
	}
	API struct {
		BaseURL string
		Token   string
		Timeout time.Duration
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}

	Config struct {
		App APP
		API API
		MQ  MQ
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def
	}
	return d
}

func Load() Config {
	app := APP{
		Name:    getEnv("SERVICE_NAME", "usermanagerform"),
		Env:     getEnv("SERVICE_ENV", "debug"),
		LogFile: getEnv("LOG_FILE", "usermanagerform.log"),
		Lang:    getEnv("UI_LANG", "es"),
		OpsPort: getEnv("OPS_PORT", ""),
	}
	api := API{
		BaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
		Token:   getEnv("API_TOKEN", ""),
		// zero keeps the transport default
		Timeout: getDuration("API_TIMEOUT", 0),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", "5672"),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", "usuarios.events"),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", "usermanagerform"),
	}

	return Config{
		App: app,
		API: api,
		MQ:  mq,
	}
}

// CollectionURL joins the API base URL with the records collection path.
func (c Config) CollectionURL() (string, error) {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid API base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid API base URL %q: scheme and host are required", c.API.BaseURL)
	}

	return u.JoinPath(CollectionPath).String(), nil
}

// MQEnabled reports whether mutation events should go through RabbitMQ.
func (c Config) MQEnabled() bool { return c.MQ.Host != "" }

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}

package config

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v4"
)

// Переменные окружения, перекрывающие файл.
const (
	EnvAPIURL   = "CARGOBOX_API_URL"
	EnvInitData = "TELEGRAM_INIT_DATA"
)

type Config struct {
	Remote   RemoteConfig   `yaml:"remote"`
	Local    LocalConfig    `yaml:"local"`
	Identity IdentityConfig `yaml:"identity"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	HTTP     HTTPConfig     `yaml:"http"`
}

type RemoteConfig struct {
	BaseURL                  string `yaml:"base_url"`
	ProbeTimeoutSeconds      int    `yaml:"probe_timeout_seconds"`
	RequestTimeoutSeconds    int    `yaml:"request_timeout_seconds"`
	OrdersListTimeoutSeconds int    `yaml:"orders_list_timeout_seconds"`
}

type LocalConfig struct {
	DSN string `yaml:"dsn"`
}

// IdentityConfig — пользователь по умолчанию, если init data хоста нет.
type IdentityConfig struct {
	ID        string `yaml:"id"`
	Username  string `yaml:"username"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	InitData  string `yaml:"init_data"`
}

type KafkaConfig struct {
	Host  string `yaml:"host"`
	Port  int    `yaml:"port"`
	Topic string `yaml:"topic"`
}

type HTTPConfig struct {
	Addr        string `yaml:"addr"`
	SwaggerPath string `yaml:"swagger_path"`
}

func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	config.ApplyEnv()
	return &config, nil
}

// ApplyEnv перекрывает значения из файла переменными окружения.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.Remote.BaseURL = v
	}
	if v := os.Getenv(EnvInitData); v != "" {
		c.Identity.InitData = v
	}
}

func (c RemoteConfig) ProbeTimeout() time.Duration {
	return seconds(c.ProbeTimeoutSeconds, 30*time.Second)
}

func (c RemoteConfig) RequestTimeout() time.Duration {
	return seconds(c.RequestTimeoutSeconds, 20*time.Second)
}

func (c RemoteConfig) OrdersListTimeout() time.Duration {
	return seconds(c.OrdersListTimeoutSeconds, 8*time.Second)
}

// KafkaEnabled: публикация событий включается только при заданном брокере.
func (c KafkaConfig) KafkaEnabled() bool {
	return c.Host != ""
}

func (c KafkaConfig) Brokers() []string {
	port := c.Port
	if port == 0 {
		port = 9092
	}
	return []string{fmt.Sprintf("%s:%d", c.Host, port)}
}

func seconds(n int, def time.Duration) time.Duration {
	if n <= 0 {
		return def
	}
	return time.Duration(n) * time.Second
}

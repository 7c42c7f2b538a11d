package config

import (
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Config is the top-level daemon configuration, shared by the LC and MC
// binaries. MC deployments ignore the Controller section.
type Config struct {
	Controller ControllerConfig `yaml:"controller"`
	Messaging  MessagingConfig  `yaml:"messaging"`
	Web        WebConfig        `yaml:"web"`
}

// ControllerConfig identifies a Local Controller.
type ControllerConfig struct {
	LCID      string           `yaml:"lc_id"`
	Name      string           `yaml:"name"`
	IP        string           `yaml:"ip"`
	TrainID   *int64           `yaml:"train_id,omitempty"`
	Heartrate int              `yaml:"heartrate"` // seconds between heartbeats
	Sensors   []map[string]any `yaml:"sensors,omitempty"`
}

// MessagingConfig defines the messaging backend.
type MessagingConfig struct {
	Backend string      `yaml:"backend"` // "mqtt" or "kafka"
	MQTT    MQTTConfig  `yaml:"mqtt"`
	Kafka   KafkaConfig `yaml:"kafka"`
}

// MQTTConfig defines MQTT broker settings.
type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	Port     int    `yaml:"port"`
	ClientID string `yaml:"client_id"`
}

// KafkaConfig defines Kafka broker settings.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	GroupID string   `yaml:"group_id"`
}

// WebConfig defines the local status API settings.
type WebConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Defaults returns a Config with sane defaults. Client and group IDs get a
// random suffix so multiple controllers can share a broker out of the box.
func Defaults() *Config {
	suffix := uuid.NewString()[:8]
	return &Config{
		Controller: ControllerConfig{
			LCID:      "LC-" + suffix,
			Name:      "local-controller",
			IP:        "127.0.0.1",
			Heartrate: 30,
		},
		Messaging: MessagingConfig{
			Backend: "mqtt",
			MQTT: MQTTConfig{
				Broker:   "localhost",
				Port:     1883,
				ClientID: "ramp-" + suffix,
			},
			Kafka: KafkaConfig{
				Brokers: []string{"localhost:9092"},
				GroupID: "ramp-" + suffix,
			},
		},
		Web: WebConfig{
			Host: "0.0.0.0",
			Port: 8090,
		},
	}
}

// Load reads a YAML config file. If the file doesn't exist, defaults are
// used.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

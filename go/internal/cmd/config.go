package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration for the serve command.
// Environment variables fill anything the file leaves empty.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Broker struct {
		URL     string `yaml:"url"`
		Channel string `yaml:"channel"`
	} `yaml:"broker"`
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/dsarkar/almirah/internal/inference"
)

// DefaultConfig returns the built-in configuration. Path fields are left
// empty so the command layer can fill them from the home directory.
func DefaultConfig() *Config {
	return &Config{
		EndpointURL:           inference.DefaultEndpointURL,
		Model:                 inference.DefaultModel,
		Temperature:           inference.DefaultTemperature,
		TopP:                  inference.DefaultTopP,
		TimeoutSeconds:        300,
		InterCallDelaySeconds: 2,
	}
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Almirah configuration
# endpoint_url points at the local vLLM chat-completions server.
# Empty path fields fall back to the almirah home directory layout.

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}

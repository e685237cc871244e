package config

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
)

// Config is the CLI's credentials file.
type Config struct {
	ServerURL   string `json:"serverUrl"`
	AccessToken string `json:"accessToken"`
	FilePath    string `json:"-"`
}

func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".monolog", "config.json"), nil
}

// LoadConfig reads the credentials file, creating an empty one if it does not
// exist yet.
func LoadConfig(configPath string) (*Config, error) {
	var config Config

	jsonFile, err := os.Open(configPath)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
			return nil, err
		}
		jsonFile, err = os.Create(configPath)
	}
	if err != nil {
		return nil, err
	}
	defer jsonFile.Close()

	byteValue, err := io.ReadAll(jsonFile)
	if err != nil {
		return nil, err
	}

	if len(byteValue) > 0 {
		if err := json.Unmarshal(byteValue, &config); err != nil {
			return nil, err
		}
	}
	config.FilePath = configPath
	return &config, nil
}

func UpdateConfig(config Config, configPath string) error {
	file, err := json.MarshalIndent(config, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, file, 0600)
}

package config

import (
	"errors"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultStoreAddress = "127.0.0.1:8000"

type Config struct {
	Store   StoreConfig   `toml:"store"`
	Logging LoggingConfig `toml:"logging"`
}

type StoreConfig struct {
	Address string `toml:"address"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

func DefaultConfig() Config {
	return Config{
		Store: StoreConfig{
			Address: defaultStoreAddress,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func LoadConfig() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return loadConfigFromPath(path)
}

func (c Config) StoreAddress() string {
	addr := strings.TrimSpace(c.Store.Address)
	if addr == "" {
		return defaultStoreAddress
	}
	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimPrefix(addr, "https://")
	addr = strings.TrimRight(addr, "/")
	if addr == "" {
		return defaultStoreAddress
	}
	return addr
}

func (c Config) StoreBaseURL() string {
	return "http://" + c.StoreAddress()
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func loadConfigFromPath(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

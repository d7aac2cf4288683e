package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// StorageBackend selects which store adapter persists the board.
type StorageBackend string

const (
	StorageBackendTOML   StorageBackend = "toml"
	StorageBackendSQLite StorageBackend = "sqlite"
)

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Board   BoardConfig   `toml:"board"`
	Logging LoggingConfig `toml:"logging"`
	Keys    KeyConfig     `toml:"keys"`
}

type StorageConfig struct {
	Backend StorageBackend `toml:"backend"`
	Path    string         `toml:"path"`
}

type BoardConfig struct {
	SeedList string `toml:"seed_list"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type KeyConfig struct {
	Undo        string `toml:"undo"`
	Redo        string `toml:"redo"`
	NewList     string `toml:"new_list"`
	NewItem     string `toml:"new_item"`
	DeleteItem  string `toml:"delete_item"`
	PromoteItem string `toml:"promote_item"`
	PromoteList string `toml:"promote_list"`
}

func Default(dataPath string) Config {
	return Config{
		Storage: StorageConfig{
			Backend: StorageBackendTOML,
			Path:    dataPath,
		},
		Board: BoardConfig{
			SeedList: "My list",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Keys: KeyConfig{
			Undo:        "z",
			Redo:        "Z",
			NewList:     "N",
			NewItem:     "n",
			DeleteItem:  "d",
			PromoteItem: "t",
			PromoteList: "T",
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Storage.Path) == "" {
		return errors.New("storage path is required")
	}

	switch c.Storage.Backend {
	case StorageBackendTOML, StorageBackendSQLite:
	default:
		return fmt.Errorf("invalid storage.backend: %q", c.Storage.Backend)
	}

	switch strings.TrimSpace(strings.ToLower(c.Logging.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	if strings.TrimSpace(c.Board.SeedList) == "" {
		return errors.New("board.seed_list must not be blank")
	}

	return nil
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

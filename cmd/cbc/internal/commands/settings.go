package commands

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Environment variables consulted when the corresponding flag is empty.
const (
	EnvKey = "CBC_KEY"
	EnvIV  = "CBC_IV"
)

// KeySettings holds the key material inputs shared by encrypt and decrypt.
// An empty IV passes validation here and is rejected by the cipher with cbc.ErrInvalidIVLength.
type KeySettings struct {
	Key     string `validate:"omitempty,hexadecimal"`
	KeyFile string `validate:"omitempty,file"`
	IV      string `validate:"omitempty,hexadecimal"`
}

// Validate checks that all fields in KeySettings are valid.
func (s *KeySettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for KeySettings: %w", err)
	}
	if (s.Key == "") == (s.KeyFile == "") {
		return fmt.Errorf("exactly one of --key (or %s) and --key-file is required", EnvKey)
	}
	return nil
}

// Load validates the settings and returns the decoded key and IV.
// The caller should wipe both when done.
func (s *KeySettings) Load() (key, iv []byte, err error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}

	if s.KeyFile != "" {
		key, err = os.ReadFile(filepath.Clean(s.KeyFile))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read key file: %w", err)
		}
	} else if key, err = decodeHex(s.Key); err != nil {
		return nil, nil, fmt.Errorf("invalid key: %w", err)
	}

	if iv, err = decodeHex(s.IV); err != nil {
		return nil, nil, fmt.Errorf("invalid IV: %w", err)
	}
	return key, iv, nil
}

// keySettingsFromFlags reads --key, --key-file and --iv, falling back to the environment.
func keySettingsFromFlags(get func(string) (string, error)) (*KeySettings, error) {
	s := &KeySettings{}
	var err error
	if s.Key, err = get("key"); err != nil {
		return nil, fmt.Errorf("invalid key flag: %w", err)
	}
	if s.KeyFile, err = get("key-file"); err != nil {
		return nil, fmt.Errorf("invalid key-file flag: %w", err)
	}
	if s.IV, err = get("iv"); err != nil {
		return nil, fmt.Errorf("invalid iv flag: %w", err)
	}
	if s.Key == "" && s.KeyFile == "" {
		s.Key = os.Getenv(EnvKey)
	}
	if s.IV == "" {
		s.IV = os.Getenv(EnvIV)
	}

	// Surrounding whitespace is ignored.
	s.Key = strings.TrimSpace(s.Key)
	s.KeyFile = strings.TrimSpace(s.KeyFile)
	s.IV = strings.TrimSpace(s.IV)
	return s, nil
}

// LogSettings controls CLI logging.
type LogSettings struct {
	Verbosity int `validate:"gte=0,lte=10"`
}

// Validate checks that all fields in LogSettings are valid.
func (s *LogSettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for LogSettings: %w", err)
	}
	return nil
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hex.DecodeString(s)
}

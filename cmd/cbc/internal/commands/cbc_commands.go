package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/awnumar/memguard"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	cbc "github.com/rbaliyan/config-cbc"
	"github.com/rbaliyan/config-cbc/armor"
)

// CBCCommandHandler encapsulates logic for handling CBC operations via CLI.
type CBCCommandHandler struct {
	logger logr.Logger
}

// EncryptCmd encrypts --plaintext or --input-file and writes base64 ciphertext.
func (h *CBCCommandHandler) EncryptCmd(cmd *cobra.Command, _ []string) error {
	settings, err := keySettingsFromFlags(cmd.Flags().GetString)
	if err != nil {
		return err
	}
	key, iv, err := settings.Load()
	if err != nil {
		return err
	}
	defer memguard.WipeBytes(key)

	plaintext, err := readPlaintext(cmd)
	if err != nil {
		return err
	}
	defer memguard.WipeBytes(plaintext)

	ciphertext, err := cbc.Encrypt(key, iv, plaintext)
	if err != nil {
		return err
	}
	h.logger.V(1).Info("encrypted", "plaintextBytes", len(plaintext), "ciphertextBytes", len(ciphertext))

	return h.writeOutput(cmd, []byte(armor.Encode(ciphertext)+"\n"))
}

// DecryptCmd decrypts base64 ciphertext from --ciphertext or --input-file.
func (h *CBCCommandHandler) DecryptCmd(cmd *cobra.Command, _ []string) error {
	settings, err := keySettingsFromFlags(cmd.Flags().GetString)
	if err != nil {
		return err
	}
	key, iv, err := settings.Load()
	if err != nil {
		return err
	}
	defer memguard.WipeBytes(key)

	encoded, err := readCiphertext(cmd)
	if err != nil {
		return err
	}

	binary, err := cmd.Flags().GetBool("binary")
	if err != nil {
		return fmt.Errorf("invalid binary flag: %w", err)
	}

	plaintext, err := decryptPayload(key, iv, encoded, binary)
	if err != nil {
		if cbc.IsInvalidPadding(err) {
			h.logger.Info("padding check failed: wrong key or IV, or tampered ciphertext")
		}
		return err
	}
	defer memguard.WipeBytes(plaintext)
	h.logger.V(1).Info("decrypted", "plaintextBytes", len(plaintext))

	if err := h.writeOutput(cmd, plaintext); err != nil {
		return err
	}
	if !binary && h.outputPath(cmd) == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), "\n")
	}
	return err
}

// decryptPayload returns the decrypted bytes. Unless binary is set they must be UTF-8 text;
// rejected bytes are wiped before returning.
func decryptPayload(key, iv []byte, encoded string, binary bool) ([]byte, error) {
	plaintext, err := armor.DecryptBytes(key, iv, encoded)
	if err != nil {
		return nil, err
	}
	if !binary && !utf8.Valid(plaintext) {
		memguard.WipeBytes(plaintext)
		return nil, fmt.Errorf("%w: use --binary for non-text output", cbc.ErrInvalidEncoding)
	}
	return plaintext, nil
}

// GenerateKeyCmd prints a random AES key as hex.
func (h *CBCCommandHandler) GenerateKeyCmd(cmd *cobra.Command, _ []string) error {
	size, err := cmd.Flags().GetInt("key-size")
	if err != nil {
		return fmt.Errorf("invalid key-size flag: %w", err)
	}
	if !cbc.ValidKeyLength(size) {
		return fmt.Errorf("%w: got %d bytes", cbc.ErrInvalidKeyLength, size)
	}
	return h.printRandomHex(cmd, size)
}

// GenerateIVCmd prints a random IV as hex.
func (h *CBCCommandHandler) GenerateIVCmd(cmd *cobra.Command, _ []string) error {
	return h.printRandomHex(cmd, cbc.IVSize)
}

func (h *CBCCommandHandler) printRandomHex(cmd *cobra.Command, n int) error {
	b := make([]byte, n)
	defer memguard.WipeBytes(b)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return fmt.Errorf("failed to read random bytes: %w", err)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(b))
	return err
}

func readPlaintext(cmd *cobra.Command) ([]byte, error) {
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return nil, fmt.Errorf("invalid input-file flag: %w", err)
	}
	if inputFile != "" {
		return os.ReadFile(filepath.Clean(inputFile))
	}

	plaintext, err := cmd.Flags().GetString("plaintext")
	if err != nil {
		return nil, fmt.Errorf("invalid plaintext flag: %w", err)
	}
	if !cmd.Flags().Changed("plaintext") {
		return nil, fmt.Errorf("one of --plaintext or --input-file is required")
	}
	return []byte(plaintext), nil
}

func readCiphertext(cmd *cobra.Command) (string, error) {
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return "", fmt.Errorf("invalid input-file flag: %w", err)
	}
	if inputFile != "" {
		b, err := os.ReadFile(filepath.Clean(inputFile))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	encoded, err := cmd.Flags().GetString("ciphertext")
	if err != nil {
		return "", fmt.Errorf("invalid ciphertext flag: %w", err)
	}
	if encoded == "" {
		return "", fmt.Errorf("one of --ciphertext or --input-file is required")
	}
	return strings.TrimSpace(encoded), nil
}

func (h *CBCCommandHandler) outputPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("output-file")
	return path
}

func (h *CBCCommandHandler) writeOutput(cmd *cobra.Command, data []byte) error {
	path := h.outputPath(cmd)
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(filepath.Clean(path), data, 0600); err != nil {
		return err
	}
	h.logger.Info("output saved", "path", path)
	return nil
}

package commands

import (
	"log"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the cbc command tree.
func NewRootCommand() *cobra.Command {
	handler := &CBCCommandHandler{logger: logr.Discard()}

	rootCmd := &cobra.Command{
		Use:   "cbc",
		Short: "AES-CBC encryption tool",
		Long: `cbc encrypts and decrypts data with AES-CBC and PKCS#7 padding.
Ciphertext is exchanged as standard base64. The key (16, 24 or 32 bytes) and the
16-byte IV are given as hex via --key/--iv or the CBC_KEY/CBC_IV environment
variables; --key-file reads a raw binary key instead.

Never reuse an IV with the same key.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			verbosity, err := cmd.Flags().GetInt("verbosity")
			if err != nil {
				return err
			}
			settings := &LogSettings{Verbosity: verbosity}
			if err := settings.Validate(); err != nil {
				return err
			}
			handler.logger = newLogger(cmd, settings)
			return nil
		},
	}
	rootCmd.PersistentFlags().IntP("verbosity", "v", 0, "Log verbosity (0-10)")

	initCBCCommands(rootCmd, handler)
	return rootCmd
}

// newLogger returns a stdr logger writing to the command's error stream.
func newLogger(cmd *cobra.Command, settings *LogSettings) logr.Logger {
	stdr.SetVerbosity(settings.Verbosity)
	return stdr.New(log.New(cmd.ErrOrStderr(), "", log.LstdFlags)).WithName("cbc")
}

// initCBCCommands registers the encrypt, decrypt and generate commands.
func initCBCCommands(rootCmd *cobra.Command, handler *CBCCommandHandler) {
	encryptCmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt text or a file and print base64 ciphertext",
		Args:  cobra.NoArgs,
		RunE:  handler.EncryptCmd,
	}
	addKeyFlags(encryptCmd)
	encryptCmd.Flags().StringP("plaintext", "p", "", "Text to encrypt")
	encryptCmd.Flags().StringP("input-file", "i", "", "Path to a file to encrypt")
	encryptCmd.Flags().StringP("output-file", "o", "", "Path to write base64 ciphertext to (default stdout)")
	encryptCmd.MarkFlagsMutuallyExclusive("plaintext", "input-file")
	rootCmd.AddCommand(encryptCmd)

	decryptCmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt base64 ciphertext",
		Args:  cobra.NoArgs,
		RunE:  handler.DecryptCmd,
	}
	addKeyFlags(decryptCmd)
	decryptCmd.Flags().StringP("ciphertext", "c", "", "Base64 ciphertext to decrypt")
	decryptCmd.Flags().StringP("input-file", "i", "", "Path to a file holding base64 ciphertext")
	decryptCmd.Flags().StringP("output-file", "o", "", "Path to write plaintext to (default stdout)")
	decryptCmd.Flags().Bool("binary", false, "Emit raw plaintext bytes without UTF-8 validation")
	decryptCmd.MarkFlagsMutuallyExclusive("ciphertext", "input-file")
	rootCmd.AddCommand(decryptCmd)

	generateKeyCmd := &cobra.Command{
		Use:   "generate-key",
		Short: "Generate a random AES key and print it as hex",
		Args:  cobra.NoArgs,
		RunE:  handler.GenerateKeyCmd,
	}
	generateKeyCmd.Flags().Int("key-size", 32, "Key size in bytes: 16, 24 or 32")
	rootCmd.AddCommand(generateKeyCmd)

	generateIVCmd := &cobra.Command{
		Use:   "generate-iv",
		Short: "Generate a random 16-byte IV and print it as hex",
		Args:  cobra.NoArgs,
		RunE:  handler.GenerateIVCmd,
	}
	rootCmd.AddCommand(generateIVCmd)
}

func addKeyFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("key", "k", "", "Hex-encoded key (or set "+EnvKey+")")
	cmd.Flags().String("key-file", "", "Path to a raw binary key file")
	cmd.Flags().String("iv", "", "Hex-encoded 16-byte IV (or set "+EnvIV+")")
	cmd.MarkFlagsMutuallyExclusive("key", "key-file")
}

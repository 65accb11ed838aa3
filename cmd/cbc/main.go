// Package main is the entry point for the cbc command-line tool.
// It encrypts and decrypts text with AES-CBC, exchanging ciphertext as base64.
package main

import (
	"github.com/awnumar/memguard"

	"github.com/rbaliyan/config-cbc/cmd/cbc/internal/commands"
)

func main() {
	memguard.CatchInterrupt()
	defer memguard.Purge()

	if err := commands.NewRootCommand().Execute(); err != nil {
		memguard.SafeExit(1)
	}
}

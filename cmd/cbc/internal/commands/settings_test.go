package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbaliyan/config-cbc/armor"
)

func TestKeySettingsValidate(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "key.bin")
	require.NoError(t, os.WriteFile(keyFile, make([]byte, 32), 0600))

	tests := []struct {
		name     string
		settings KeySettings
		wantErr  bool
	}{
		{name: "hex key", settings: KeySettings{Key: testKeyHex, IV: testIVHex}},
		{name: "prefixed hex", settings: KeySettings{Key: "0x" + testKeyHex, IV: "0x" + testIVHex}},
		{name: "key file", settings: KeySettings{KeyFile: keyFile, IV: testIVHex}},
		{name: "non-hex IV", settings: KeySettings{Key: testKeyHex, IV: "xyz"}, wantErr: true},
		{name: "no key source", settings: KeySettings{IV: testIVHex}, wantErr: true},
		{name: "both key sources", settings: KeySettings{Key: testKeyHex, KeyFile: keyFile, IV: testIVHex}, wantErr: true},
		{name: "non-hex key", settings: KeySettings{Key: "not-hex", IV: testIVHex}, wantErr: true},
		{name: "key file missing", settings: KeySettings{KeyFile: keyFile + ".missing", IV: testIVHex}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestKeySettingsLoad(t *testing.T) {
	s := &KeySettings{Key: "0x" + strings.Repeat("ab", 16), IV: strings.Repeat("cd", 16)}
	key, iv, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, key, 16)
	assert.Len(t, iv, 16)
	assert.Equal(t, byte(0xab), key[0])
	assert.Equal(t, byte(0xcd), iv[0])
}

func TestKeySettingsFromFlagsFallsBackToEnv(t *testing.T) {
	t.Setenv(EnvKey, testKeyHex)
	t.Setenv(EnvIV, testIVHex)

	empty := func(string) (string, error) { return "", nil }
	s, err := keySettingsFromFlags(empty)
	require.NoError(t, err)
	assert.Equal(t, testKeyHex, s.Key)
	assert.Equal(t, testIVHex, s.IV)
}

func TestKeySettingsFromFlagsTrimsWhitespace(t *testing.T) {
	t.Setenv(EnvKey, testKeyHex+"\n")
	t.Setenv(EnvIV, "  0x"+testIVHex+"\t")

	empty := func(string) (string, error) { return "", nil }
	s, err := keySettingsFromFlags(empty)
	require.NoError(t, err)
	assert.Equal(t, testKeyHex, s.Key)
	assert.Equal(t, "0x"+testIVHex, s.IV)

	key, iv, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, key, 24)
	assert.Len(t, iv, 16)
}

func TestEncryptWithWhitespaceInEnvironment(t *testing.T) {
	t.Setenv(EnvKey, " "+testKeyHex+"\n")
	t.Setenv(EnvIV, testIVHex+"\r\n")

	out, _, err := execute(t, "encrypt", "--plaintext", "HELLO")
	require.NoError(t, err)

	want, err := armor.EncryptString(make([]byte, 24), make([]byte, 16), "HELLO")
	require.NoError(t, err)
	assert.Equal(t, want, strings.TrimSpace(out))
}

func TestLogSettingsValidate(t *testing.T) {
	assert.NoError(t, (&LogSettings{Verbosity: 0}).Validate())
	assert.NoError(t, (&LogSettings{Verbosity: 10}).Validate())
	assert.Error(t, (&LogSettings{Verbosity: -1}).Validate())
	assert.Error(t, (&LogSettings{Verbosity: 11}).Validate())
}

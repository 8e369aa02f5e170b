package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/skillsenselab/shellkit/encryption"
)

// SecretPrefix marks a config value as encrypted at rest.
const SecretPrefix = "enc:"

// secretKeyEnv names the environment variable holding the decryption key.
const secretKeyEnv = "SHELLKIT_SECRET_KEY"

// SecretBearer is implemented by config structs that carry encrypted
// fields. The loader calls ResolveSecrets after unmarshaling.
type SecretBearer interface {
	ResolveSecrets() error
}

// resolveSecret returns value unchanged unless it carries the secret
// prefix, in which case it is decrypted with the process secret key.
func resolveSecret(value string) (string, error) {
	if !strings.HasPrefix(value, SecretPrefix) {
		return value, nil
	}

	key := os.Getenv(secretKeyEnv)
	if key == "" {
		return "", fmt.Errorf("encrypted value present but %s is not set", secretKeyEnv)
	}

	enc, err := encryption.New(key, encryption.WithAlgorithm(encryption.AlgorithmChaCha20))
	if err != nil {
		return "", fmt.Errorf("init decryptor: %w", err)
	}

	plain, err := enc.Decrypt(strings.TrimPrefix(value, SecretPrefix))
	if err != nil {
		return "", fmt.Errorf("decrypt value: %w", err)
	}
	return plain, nil
}

// EncryptSecret encrypts plaintext with the process secret key and
// returns it in "enc:" form, suitable for pasting into a config file.
func EncryptSecret(plaintext string) (string, error) {
	key := os.Getenv(secretKeyEnv)
	if key == "" {
		return "", fmt.Errorf("%s is not set", secretKeyEnv)
	}

	enc, err := encryption.New(key, encryption.WithAlgorithm(encryption.AlgorithmChaCha20))
	if err != nil {
		return "", fmt.Errorf("init encryptor: %w", err)
	}

	sealed, err := enc.Encrypt(plaintext)
	if err != nil {
		return "", fmt.Errorf("encrypt value: %w", err)
	}
	return SecretPrefix + sealed, nil
}

package config

import (
	"os"
	"testing"

	"github.com/skillsenselab/shellkit/encryption"
)

// fakeFS is an in-memory FileSystem for loader tests.
type fakeFS struct {
	files map[string]bool
	env   map[string]string
}

func (f *fakeFS) Exists(path string) bool { return f.files[path] }
func (f *fakeFS) LoadEnv(path string) error {
	for k, v := range f.env {
		os.Setenv(k, v)
	}
	return nil
}

func TestShellConfigDefaults(t *testing.T) {
	cfg := &ShellConfig{Name: "shell"}
	cfg.ApplyDefaults()

	if cfg.Environment != "development" {
		t.Errorf("expected development default, got %q", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("expected debug enabled in development")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected info log level default, got %q", cfg.Logging.Level)
	}
	if cfg.Observability.Endpoint != "localhost:4318" {
		t.Errorf("unexpected observability endpoint default %q", cfg.Observability.Endpoint)
	}
}

func TestShellConfigValidate(t *testing.T) {
	cfg := &ShellConfig{Name: "shell"}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	bad := &ShellConfig{}
	bad.ApplyDefaults()
	if err := bad.Validate(); err == nil {
		t.Error("expected error for missing name")
	}

	wrongEnv := &ShellConfig{Name: "shell", Environment: "космос"}
	if err := wrongEnv.Validate(); err == nil {
		t.Error("expected error for unknown environment")
	}
}

func TestAuthConfigValidate(t *testing.T) {
	disabled := &AuthConfig{}
	if err := disabled.Validate(); err != nil {
		t.Errorf("disabled auth must validate: %v", err)
	}

	enabled := &AuthConfig{Enabled: true}
	if err := enabled.Validate(); err == nil {
		t.Error("enabled auth without provider params must fail validation")
	}

	complete := &AuthConfig{
		Enabled: true,
		Provider: ProviderConfig{
			APIKey:    "key-123",
			ProjectID: "proj-1",
		},
	}
	if err := complete.Validate(); err != nil {
		t.Errorf("complete auth config rejected: %v", err)
	}
}

func TestInstallCurrentReset(t *testing.T) {
	defer Reset()

	if Current() != nil {
		t.Fatal("expected nil snapshot before Install")
	}

	cfg := &ShellConfig{Name: "shell"}
	Install(cfg)
	if Current() != cfg {
		t.Error("Current did not return the installed snapshot")
	}

	swapped := &ShellConfig{Name: "shell", Auth: AuthConfig{Enabled: true}}
	Install(swapped)
	if !Current().Auth.Enabled {
		t.Error("snapshot swap not visible through Current")
	}

	Reset()
	if Current() != nil {
		t.Error("expected nil snapshot after Reset")
	}
}

func TestLoadFromEnv(t *testing.T) {
	os.Setenv("AUTH_ENABLED", "true")
	os.Setenv("AUTH_PROVIDER_PROJECT_ID", "proj-from-env")
	defer os.Unsetenv("AUTH_ENABLED")
	defer os.Unsetenv("AUTH_PROVIDER_PROJECT_ID")

	var cfg ShellConfig
	err := Load("shell", &cfg, WithFileSystem(&fakeFS{files: map[string]bool{}}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.Auth.Enabled {
		t.Error("AUTH_ENABLED not bound")
	}
	if cfg.Auth.Provider.ProjectID != "proj-from-env" {
		t.Errorf("AUTH_PROVIDER_PROJECT_ID not bound, got %q", cfg.Auth.Provider.ProjectID)
	}
}

func TestSecretRoundTrip(t *testing.T) {
	os.Setenv("SHELLKIT_SECRET_KEY", "unit-test-key")
	defer os.Unsetenv("SHELLKIT_SECRET_KEY")

	sealed, err := EncryptSecret("super-secret-api-key")
	if err != nil {
		t.Fatalf("EncryptSecret failed: %v", err)
	}

	cfg := &ShellConfig{Name: "shell"}
	cfg.Auth.Provider.APIKey = sealed
	if err := cfg.ResolveSecrets(); err != nil {
		t.Fatalf("ResolveSecrets failed: %v", err)
	}
	if cfg.Auth.Provider.APIKey != "super-secret-api-key" {
		t.Errorf("secret did not round-trip, got %q", cfg.Auth.Provider.APIKey)
	}
}

func TestResolveSecretsPassesPlainValues(t *testing.T) {
	cfg := &ShellConfig{Name: "shell"}
	cfg.Auth.Provider.APIKey = "plain-key"
	if err := cfg.ResolveSecrets(); err != nil {
		t.Fatalf("ResolveSecrets failed: %v", err)
	}
	if cfg.Auth.Provider.APIKey != "plain-key" {
		t.Errorf("plain value altered: %q", cfg.Auth.Provider.APIKey)
	}
}

func TestResolveSecretsRequiresKey(t *testing.T) {
	os.Unsetenv("SHELLKIT_SECRET_KEY")

	cfg := &ShellConfig{Name: "shell"}
	cfg.Auth.Provider.APIKey = SecretPrefix + "deadbeef"
	if err := cfg.ResolveSecrets(); err == nil {
		t.Error("expected error when secret key env is missing")
	}
}

// Guard: the encryption service itself round-trips through the same
// algorithm the secret resolver uses.
func TestSecretUsesChaCha20(t *testing.T) {
	enc, err := encryption.New("unit-test-key", encryption.WithAlgorithm(encryption.AlgorithmChaCha20))
	if err != nil {
		t.Fatalf("encryption.New failed: %v", err)
	}
	sealed, err := enc.Encrypt("value")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	plain, err := enc.Decrypt(sealed)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if plain != "value" {
		t.Errorf("round trip produced %q", plain)
	}
}

package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// testCredentialsJSON builds a syntactically valid service-account key
// with a freshly generated RSA private key.
func testCredentialsJSON(t *testing.T, projectID string) string {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate RSA key: %v", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("Failed to marshal private key: %v", err)
	}
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

	creds := map[string]string{
		"type":         "service_account",
		"project_id":   projectID,
		"private_key":  string(keyPEM),
		"client_email": "svc@" + projectID + ".iam.gserviceaccount.com",
		"token_uri":    "https://oauth2.googleapis.com/token",
	}
	data, err := json.Marshal(creds)
	if err != nil {
		t.Fatalf("Failed to marshal credentials: %v", err)
	}
	return string(data)
}

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_CREDENTIALS_JSON", "")
	os.Unsetenv("GOOGLE_CREDENTIALS_JSON")
	// Point the file fallback at a path that cannot exist
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", filepath.Join(t.TempDir(), "missing.json"))
}

func TestTranslationServiceDisabledWithoutCredentials(t *testing.T) {
	clearCredentialEnv(t)

	svc := NewTranslationService()
	if svc.IsEnabled() {
		t.Error("Expected translation service to be disabled without credentials")
	}

	if _, err := svc.Translate(context.Background(), "hello", "es"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Translate without credentials = %v, want ErrNotConfigured", err)
	}
	if _, err := svc.SupportedLanguages(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("SupportedLanguages without credentials = %v, want ErrNotConfigured", err)
	}
}

func TestCredentialsFromEnvBlob(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("GOOGLE_CREDENTIALS_JSON", testCredentialsJSON(t, "blob-project"))

	svc := NewTranslationService()
	if !svc.IsEnabled() {
		t.Fatal("Expected translation service to be enabled with env blob credentials")
	}
	if svc.projectID != "blob-project" {
		t.Errorf("projectID = %q, want %q", svc.projectID, "blob-project")
	}
}

func TestCredentialsFileFallback(t *testing.T) {
	clearCredentialEnv(t)

	path := filepath.Join(t.TempDir(), "key.json")
	if err := os.WriteFile(path, []byte(testCredentialsJSON(t, "file-project")), 0600); err != nil {
		t.Fatalf("Failed to write credentials file: %v", err)
	}
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", path)

	svc := NewTranslationService()
	if !svc.IsEnabled() {
		t.Fatal("Expected translation service to be enabled with credentials file")
	}
	if svc.projectID != "file-project" {
		t.Errorf("projectID = %q, want %q", svc.projectID, "file-project")
	}
}

func TestCredentialsBlobTakesPrecedenceOverFile(t *testing.T) {
	clearCredentialEnv(t)

	path := filepath.Join(t.TempDir(), "key.json")
	if err := os.WriteFile(path, []byte(testCredentialsJSON(t, "file-project")), 0600); err != nil {
		t.Fatalf("Failed to write credentials file: %v", err)
	}
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", path)
	t.Setenv("GOOGLE_CREDENTIALS_JSON", testCredentialsJSON(t, "blob-project"))

	svc := NewTranslationService()
	if !svc.IsEnabled() {
		t.Fatal("Expected translation service to be enabled")
	}
	if svc.projectID != "blob-project" {
		t.Errorf("projectID = %q, want blob credentials to win", svc.projectID)
	}
}

func TestCredentialsMissingFieldsDisableService(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("GOOGLE_CREDENTIALS_JSON", `{"type":"service_account","project_id":"p"}`)

	svc := NewTranslationService()
	if svc.IsEnabled() {
		t.Error("Expected service to stay disabled with incomplete credentials")
	}
}

func TestCredentialsInvalidJSONDisableService(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("GOOGLE_CREDENTIALS_JSON", "not json at all")

	svc := NewTranslationService()
	if svc.IsEnabled() {
		t.Error("Expected service to stay disabled with unparseable credentials")
	}
}

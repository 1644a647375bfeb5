package services

import (
	"bytes"
	"context"
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lingoqr/lingoqr/internal/metrics"
)

const (
	// Google Cloud Translation API v3 endpoints
	translateURL = "https://translation.googleapis.com/v3/projects/%s/locations/global:translateText"
	languagesURL = "https://translation.googleapis.com/v3/projects/%s/locations/global/supportedLanguages?displayLanguageCode=en"

	// credentialsEnvJSON carries the service-account key as a JSON blob.
	// It takes precedence over the key file.
	credentialsEnvJSON = "GOOGLE_CREDENTIALS_JSON"

	// credentialsEnvFile points at a service-account key file. Used when
	// the JSON blob is absent.
	credentialsEnvFile = "GOOGLE_APPLICATION_CREDENTIALS"

	// defaultCredentialsFile is the fallback key file location.
	defaultCredentialsFile = "./credentials/key.json"

	translationTimeout = 10 * time.Second
)

// Language is one entry of the provider's supported-language list.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// TranslateResult is a single provider translation.
type TranslateResult struct {
	TranslatedText         string
	DetectedSourceLanguage string
}

// Translator is the provider-facing contract the web layer depends on.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (*TranslateResult, error)
	SupportedLanguages(ctx context.Context) ([]Language, error)
	IsEnabled() bool
}

// TranslationService calls the Google Cloud Translation API with
// service-account credentials. It is constructed once per process and
// shared; the access token is refreshed lazily under a mutex.
//
// When no credentials can be resolved the service stays disabled and every
// call returns ErrNotConfigured. The server keeps running either way.
type TranslationService struct {
	projectID   string
	accessToken string
	tokenExpiry time.Time
	httpClient  *http.Client
	credentials *googleCredentials
	privateKey  *rsa.PrivateKey
	enabled     bool
	mu          sync.Mutex // protects token refresh
}

// googleCredentials is a Google Cloud service account JSON key.
type googleCredentials struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
	ClientID     string `json:"client_id"`
	TokenURI     string `json:"token_uri"`
}

type translateRequest struct {
	TargetLanguageCode string   `json:"targetLanguageCode"`
	Contents           []string `json:"contents"`
	MimeType           string   `json:"mimeType"`
}

type translateResponse struct {
	Translations []struct {
		TranslatedText       string `json:"translatedText"`
		DetectedLanguageCode string `json:"detectedLanguageCode,omitempty"`
	} `json:"translations"`
	Error *apiError `json:"error,omitempty"`
}

type languagesResponse struct {
	Languages []struct {
		LanguageCode  string `json:"languageCode"`
		DisplayName   string `json:"displayName"`
		SupportTarget bool   `json:"supportTarget"`
	} `json:"languages"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
	Error       string `json:"error,omitempty"`
	ErrorDesc   string `json:"error_description,omitempty"`
}

// NewTranslationService creates the translation client. Credentials are
// resolved in order: the GOOGLE_CREDENTIALS_JSON blob, then the key file
// named by GOOGLE_APPLICATION_CREDENTIALS, then ./credentials/key.json.
// With none of those present the service is disabled, not an error.
func NewTranslationService() *TranslationService {
	svc := &TranslationService{
		httpClient: &http.Client{Timeout: translationTimeout},
		enabled:    false,
	}

	data, source := loadCredentialData()
	if data == nil {
		log.Println("Translation service: no credentials found, provider disabled")
		return svc
	}

	var creds googleCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		log.Printf("Translation service: failed to parse credentials from %s: %v", source, err)
		return svc
	}

	if creds.ProjectID == "" || creds.PrivateKey == "" || creds.ClientEmail == "" {
		log.Printf("Translation service: credentials from %s missing required fields", source)
		return svc
	}

	key, err := parsePrivateKey(creds.PrivateKey)
	if err != nil {
		log.Printf("Translation service: %v", err)
		return svc
	}

	svc.credentials = &creds
	svc.privateKey = key
	svc.projectID = creds.ProjectID
	svc.enabled = true

	log.Printf("Translation service: enabled for project %s (credentials from %s)", svc.projectID, source)
	return svc
}

// loadCredentialData returns the raw service-account JSON and a label for
// where it came from, or nil when no source is available.
func loadCredentialData() ([]byte, string) {
	if blob := os.Getenv(credentialsEnvJSON); blob != "" {
		return []byte(blob), "environment"
	}

	path := os.Getenv(credentialsEnvFile)
	if path == "" {
		path = defaultCredentialsFile
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = strings.Replace(path, "~", home, 1)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ""
	}
	return data, path
}

func parsePrivateKey(pemData string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(pemData))
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block from private key")
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		// Older keys use PKCS1
		rsaKey, err1 := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err1 != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}
		return rsaKey, nil
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is not RSA")
	}
	return rsaKey, nil
}

// IsEnabled reports whether usable credentials were found.
func (s *TranslationService) IsEnabled() bool {
	return s.enabled
}

// Translate translates text into targetLang, letting the provider detect
// the source language. One attempt, no retry: provider failures come back
// as *TranslationError and abort the caller's request.
func (s *TranslationService) Translate(ctx context.Context, text, targetLang string) (*TranslateResult, error) {
	if !s.enabled {
		metrics.TranslationErrorsTotal.WithLabelValues("config").Inc()
		return nil, ErrNotConfigured
	}

	start := time.Now()

	if err := s.ensureAccessToken(ctx); err != nil {
		metrics.TranslationErrorsTotal.WithLabelValues("auth").Inc()
		return nil, &TranslationError{Message: err.Error()}
	}

	reqBody := translateRequest{
		TargetLanguageCode: targetLang,
		Contents:           []string{text},
		MimeType:           "text/plain",
	}
	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var result translateResponse
	if err := s.doAPICall(ctx, fmt.Sprintf(translateURL, s.projectID), reqJSON, &result); err != nil {
		return nil, err
	}
	if result.Error != nil {
		metrics.TranslationErrorsTotal.WithLabelValues("api").Inc()
		return nil, &TranslationError{Message: result.Error.Message}
	}
	if len(result.Translations) == 0 {
		metrics.TranslationErrorsTotal.WithLabelValues("api").Inc()
		return nil, &TranslationError{Message: "no translations returned"}
	}

	metrics.TranslationAPILatency.Observe(time.Since(start).Seconds())
	metrics.TranslationRequestsTotal.Inc()

	t := result.Translations[0]
	debugLog("Translated %d chars to %s (detected %s)", len(text), targetLang, t.DetectedLanguageCode)
	return &TranslateResult{
		TranslatedText:         t.TranslatedText,
		DetectedSourceLanguage: t.DetectedLanguageCode,
	}, nil
}

// SupportedLanguages fetches the provider's target-language list with
// English display names.
func (s *TranslationService) SupportedLanguages(ctx context.Context) ([]Language, error) {
	if !s.enabled {
		return nil, ErrNotConfigured
	}

	if err := s.ensureAccessToken(ctx); err != nil {
		metrics.TranslationErrorsTotal.WithLabelValues("auth").Inc()
		return nil, &TranslationError{Message: err.Error()}
	}

	var result languagesResponse
	if err := s.doAPICall(ctx, fmt.Sprintf(languagesURL, s.projectID), nil, &result); err != nil {
		return nil, err
	}
	if result.Error != nil {
		metrics.TranslationErrorsTotal.WithLabelValues("api").Inc()
		return nil, &TranslationError{Message: result.Error.Message}
	}

	languages := make([]Language, 0, len(result.Languages))
	for _, l := range result.Languages {
		if !l.SupportTarget {
			continue
		}
		languages = append(languages, Language{Code: l.LanguageCode, Name: l.DisplayName})
	}
	return languages, nil
}

// doAPICall performs one authenticated request against the translation
// API. A nil body issues a GET. Transport and HTTP-level failures are
// wrapped as *TranslationError for the caller to surface verbatim.
func (s *TranslationService) doAPICall(ctx context.Context, url string, body []byte, out interface{}) error {
	method := http.MethodGet
	var reader io.Reader
	if body != nil {
		method = http.MethodPost
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	s.mu.Lock()
	token := s.accessToken
	s.mu.Unlock()

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		metrics.TranslationErrorsTotal.WithLabelValues("api").Inc()
		return &TranslationError{Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.TranslationErrorsTotal.WithLabelValues("api").Inc()
		return &TranslationError{Message: err.Error()}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		metrics.TranslationErrorsTotal.WithLabelValues("api").Inc()
		if resp.StatusCode != http.StatusOK {
			return &TranslationError{Message: fmt.Sprintf("API returned status %d: %s", resp.StatusCode, string(respBody))}
		}
		return &TranslationError{Message: fmt.Sprintf("failed to parse response: %v", err)}
	}
	return nil
}

// ensureAccessToken gets or refreshes the OAuth2 access token using the
// service account, keeping a one-minute expiry buffer.
func (s *TranslationService) ensureAccessToken(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accessToken != "" && time.Now().Add(time.Minute).Before(s.tokenExpiry) {
		return nil
	}

	jwt, err := s.signJWT()
	if err != nil {
		return fmt.Errorf("failed to create JWT: %w", err)
	}

	data := "grant_type=urn%3Aietf%3Aparams%3Aoauth%3Agrant-type%3Ajwt-bearer&assertion=" + jwt
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.credentials.TokenURI, strings.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read token response: %w", err)
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return fmt.Errorf("failed to parse token response: %w", err)
	}
	if tokenResp.Error != "" {
		return fmt.Errorf("token error: %s - %s", tokenResp.Error, tokenResp.ErrorDesc)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed with status %d: %s", resp.StatusCode, string(body))
	}

	s.accessToken = tokenResp.AccessToken
	s.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)

	return nil
}

// signJWT builds a signed RS256 assertion for the token exchange.
func (s *TranslationService) signJWT() (string, error) {
	header := map[string]string{
		"alg": "RS256",
		"typ": "JWT",
	}
	headerJSON, _ := json.Marshal(header)
	headerB64 := base64.RawURLEncoding.EncodeToString(headerJSON)

	now := time.Now().Unix()
	claims := map[string]interface{}{
		"iss":   s.credentials.ClientEmail,
		"sub":   s.credentials.ClientEmail,
		"aud":   s.credentials.TokenURI,
		"iat":   now,
		"exp":   now + 3600,
		"scope": "https://www.googleapis.com/auth/cloud-translation",
	}
	claimsJSON, _ := json.Marshal(claims)
	claimsB64 := base64.RawURLEncoding.EncodeToString(claimsJSON)

	signInput := headerB64 + "." + claimsB64
	hash := sha256.Sum256([]byte(signInput))
	signature, err := rsa.SignPKCS1v15(nil, s.privateKey, crypto.SHA256, hash[:])
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT: %w", err)
	}

	return signInput + "." + base64.RawURLEncoding.EncodeToString(signature), nil
}

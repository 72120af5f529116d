package service

import (
	"errors"
	"fmt"
	"strings"

	fernet "github.com/fernet/fernet-go"

	"github.com/armyblogger/stock-tracker/internal/apperrors"
	"github.com/armyblogger/stock-tracker/internal/repository"
)

// settingAPIToken is the setting key holding the encrypted Finnhub token.
const settingAPIToken = "finnhub_token"

// SettingsService manages stored configuration values. The Finnhub API
// token is encrypted with fernet before it touches the database, so a copy
// of the database file does not leak the credential.
type SettingsService struct {
	settings *repository.SettingRepository
	keys     []*fernet.Key
}

// NewSettingsService creates a SettingsService.
// fernetKey must be a base64-encoded 32-byte fernet key.
func NewSettingsService(settings *repository.SettingRepository, fernetKey string) (*SettingsService, error) {
	keys, err := fernet.DecodeKeys(fernetKey)
	if err != nil {
		return nil, fmt.Errorf("invalid fernet key: %w", err)
	}

	return &SettingsService{
		settings: settings,
		keys:     keys,
	}, nil
}

// SetAPIToken encrypts and stores the Finnhub API token.
func (s *SettingsService) SetAPIToken(token string) error {
	sealed, err := fernet.EncryptAndSign([]byte(token), s.keys[0])
	if err != nil {
		return fmt.Errorf("failed to encrypt api token: %w", err)
	}

	return s.settings.Put(settingAPIToken, string(sealed))
}

// APIToken retrieves and decrypts the stored Finnhub API token.
// Returns apperrors.ErrNoAPIToken when no token has been stored.
func (s *SettingsService) APIToken() (string, error) {
	sealed, err := s.settings.Get(settingAPIToken)
	if errors.Is(err, apperrors.ErrSettingNotFound) {
		return "", apperrors.ErrNoAPIToken
	}
	if err != nil {
		return "", err
	}

	// ttl 0 disables expiry checking; the token does not age out.
	plain := fernet.VerifyAndDecrypt([]byte(sealed), 0, s.keys)
	if plain == nil {
		return "", fmt.Errorf("failed to decrypt stored api token")
	}

	return string(plain), nil
}

// Token implements finnhub.TokenSource by delegating to APIToken, so the
// quote client can read the stored credential at request time.
func (s *SettingsService) Token() (string, error) {
	return s.APIToken()
}

// MaskedAPIToken returns the stored token with all but the last four
// characters replaced, for display purposes. Returns an empty string when
// no token is stored.
func (s *SettingsService) MaskedAPIToken() (string, error) {
	token, err := s.APIToken()
	if errors.Is(err, apperrors.ErrNoAPIToken) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	if len(token) <= 4 {
		return strings.Repeat("*", len(token)), nil
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:], nil
}

package config

import (
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Service name for OS credential store
	credentialService = "jobcontext"
	// Key for the OpenAI API key
	openaiKeyName = "openai_api_key"
)

// CredentialManager reads the OpenAI API key from the OS credential store.
// The server never writes credentials; users store a key with their
// platform's keychain tooling (`secret-tool`, Keychain Access, etc.) under
// the jobcontext service, or use the config file / environment instead.
type CredentialManager struct {
	service string
}

// NewCredentialManager creates a new credential manager instance
func NewCredentialManager() *CredentialManager {
	return &CredentialManager{
		service: credentialService,
	}
}

// GetOpenAIKey retrieves the stored OpenAI API key from the OS credential store.
func (cm *CredentialManager) GetOpenAIKey() (string, error) {
	key, err := keyring.Get(cm.service, openaiKeyName)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", fmt.Errorf("no OpenAI API key found in credential store")
		}
		return "", fmt.Errorf("failed to retrieve key from credential store: %w", err)
	}

	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("stored key is empty")
	}

	return key, nil
}

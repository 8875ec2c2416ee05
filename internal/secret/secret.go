package secret

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/pkg/logger"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24

	KeyPrompt = "Please enter the application key: "
)

// Key is the operator-held symmetric key.
type Key [keySize]byte

// Prompter reads a secret from the operator without echoing it.
type Prompter interface {
	PromptSecret(prompt string) (string, error)
}

type Options struct {
	KeyEnv              string
	EncryptedJWTSecret  string
	EncryptedDBPassword string
	Prompter            Prompter
	Getenv              func(string) string
}

type Manager struct {
	keyEnv              string
	encryptedJWTSecret  string
	encryptedDBPassword string
	prompter            Prompter
	getenv              func(string) string

	mu  sync.Mutex
	key *Key
}

func NewManager(opts Options) *Manager {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	return &Manager{
		keyEnv:              opts.KeyEnv,
		encryptedJWTSecret:  opts.EncryptedJWTSecret,
		encryptedDBPassword: opts.EncryptedDBPassword,
		prompter:            opts.Prompter,
		getenv:              getenv,
	}
}

// ResolveKey returns the key from the environment or, failing that, from the prompter.
// The result is kept for the rest of the process so the operator is asked at most once.
func (m *Manager) ResolveKey(ctx context.Context) (Key, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.key != nil {
		return *m.key, nil
	}

	raw := strings.TrimSpace(m.getenv(m.keyEnv))
	if raw == "" {
		if m.prompter == nil {
			return Key{}, internal.NewUnauthorizedError(
				fmt.Sprintf("Application key not provided: set %s", m.keyEnv), internal.ErrCodeDecryptionFailed)
		}
		logger.From(ctx).Debug("application key not in environment, prompting", "env", m.keyEnv)
		entered, err := m.prompter.PromptSecret(KeyPrompt)
		if err != nil {
			return Key{}, fmt.Errorf("failed to read application key: %w", err)
		}
		raw = strings.TrimSpace(entered)
	}

	key, err := ParseKey(raw)
	if err != nil {
		return Key{}, err
	}
	m.key = &key
	return key, nil
}

// SigningSecret decrypts the token signing secret with the current key.
func (m *Manager) SigningSecret(ctx context.Context) ([]byte, error) {
	return m.decryptConfigured(ctx, m.encryptedJWTSecret, "signing secret")
}

func (m *Manager) DatabasePassword(ctx context.Context) (string, error) {
	plain, err := m.decryptConfigured(ctx, m.encryptedDBPassword, "database password")
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func (m *Manager) decryptConfigured(ctx context.Context, ciphertext, what string) ([]byte, error) {
	if ciphertext == "" {
		return nil, internal.NewInternalError(fmt.Sprintf("no encrypted %s configured", what), nil)
	}
	key, err := m.ResolveKey(ctx)
	if err != nil {
		return nil, err
	}
	plain, err := Decrypt(ciphertext, key)
	if err != nil {
		logger.From(ctx).Warn("failed to decrypt configured secret", "secret", what)
		return nil, err
	}
	return plain, nil
}

func GenerateKey() (string, error) {
	var k Key
	if _, err := io.ReadFull(rand.Reader, k[:]); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return base64.URLEncoding.EncodeToString(k[:]), nil
}

func ParseKey(raw string) (Key, error) {
	var k Key
	b, err := base64.URLEncoding.DecodeString(raw)
	if err != nil || len(b) != keySize {
		return k, internal.ErrDecryption.WithDetails("application key must be 32 url-safe base64 encoded bytes")
	}
	copy(k[:], b)
	return k, nil
}

func Encrypt(plaintext []byte, key Key) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	k := [keySize]byte(key)
	sealed := secretbox.Seal(nonce[:], plaintext, &nonce, &k)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

// Decrypt fails with internal.ErrDecryption when the key is wrong or the ciphertext is malformed.
func Decrypt(ciphertext string, key Key) ([]byte, error) {
	b, err := base64.URLEncoding.DecodeString(strings.TrimSpace(ciphertext))
	if err != nil || len(b) < nonceSize+secretbox.Overhead {
		return nil, internal.ErrDecryption
	}
	var nonce [nonceSize]byte
	copy(nonce[:], b[:nonceSize])
	k := [keySize]byte(key)
	plain, ok := secretbox.Open(nil, b[nonceSize:], &nonce, &k)
	if !ok {
		return nil, internal.ErrDecryption
	}
	return plain, nil
}

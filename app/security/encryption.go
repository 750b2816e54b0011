package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	keyFileName = "key.bin"
	keySize     = 32 // AES-256

	// sealedPrefix marks values written by Seal
	sealedPrefix = "enc:"
)

// Keyring encrypts configuration secrets with a key stored next to the config file
type Keyring struct {
	path string
}

// NewKeyring returns a keyring whose key lives in dir
func NewKeyring(dir string) *Keyring {
	return &Keyring{path: filepath.Join(dir, keyFileName)}
}

// KeyPath returns the path to the encryption key file
func (k *Keyring) KeyPath() string {
	return k.path
}

// key reads the key file, generating it on first use
func (k *Keyring) key() ([]byte, error) {
	if data, err := os.ReadFile(k.path); err == nil {
		if len(data) != keySize {
			return nil, fmt.Errorf("invalid key size: expected %d bytes, got %d", keySize, len(data))
		}
		return data, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("could not read key file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(k.path), 0755); err != nil {
		return nil, fmt.Errorf("could not create key directory: %w", err)
	}
	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("could not generate random key: %w", err)
	}
	// Owner-only permissions
	if err := os.WriteFile(k.path, key, 0600); err != nil {
		return nil, fmt.Errorf("could not write key file: %w", err)
	}
	return key, nil
}

func (k *Keyring) gcm() (cipher.AEAD, error) {
	key, err := k.key()
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("could not create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("could not create GCM: %w", err)
	}
	return gcm, nil
}

// Sealed reports whether value was produced by Seal
func Sealed(value string) bool {
	return strings.HasPrefix(value, sealedPrefix)
}

// Seal encrypts plaintext with AES-GCM. Empty and already sealed values are returned as is.
func (k *Keyring) Seal(plaintext string) (string, error) {
	if plaintext == "" || Sealed(plaintext) {
		return plaintext, nil
	}

	gcm, err := k.gcm()
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("could not generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return sealedPrefix + base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Open decrypts a sealed value. Plaintext values, such as a hand-edited config
// entry, are returned unchanged.
func (k *Keyring) Open(value string) (string, error) {
	if !Sealed(value) {
		return value, nil
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, sealedPrefix))
	if err != nil {
		return "", fmt.Errorf("could not decode ciphertext: %w", err)
	}

	gcm, err := k.gcm()
	if err != nil {
		return "", err
	}
	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}

	nonce, cipherData := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, cipherData, nil)
	if err != nil {
		return "", fmt.Errorf("could not decrypt: %w", err)
	}
	return string(plaintext), nil
}

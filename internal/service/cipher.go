package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const secretKeySize = 32

var (
	hkdfSalt = []byte("microwave")
	hkdfInfo = []byte("auth/connection-string")
)

var errShortCiphertext = errors.New("ciphertext shorter than nonce size")

// secretBox seals short secrets with AES-256-GCM. The output is base64 of
// nonce || ciphertext.
type secretBox struct {
	key []byte
}

func newSecretBox(seed string) (*secretBox, error) {
	if seed == "" {
		return nil, errors.New("encryption key is empty")
	}
	h := hkdf.New(sha256.New, []byte(seed), hkdfSalt, hkdfInfo)
	key := make([]byte, secretKeySize)
	if _, err := io.ReadFull(h, key); err != nil {
		return nil, fmt.Errorf("reading from HKDF: %w", err)
	}
	return &secretBox{key: key}, nil
}

func (b *secretBox) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(b.key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}
	return gcm, nil
}

func (b *secretBox) Seal(plain string) (string, error) {
	gcm, err := b.gcm()
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}
	sealed := gcm.Seal(nonce, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (b *secretBox) Open(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decoding ciphertext: %w", err)
	}
	gcm, err := b.gcm()
	if err != nil {
		return "", err
	}
	if len(raw) < gcm.NonceSize() {
		return "", errShortCiphertext
	}
	nonce, ct := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, ct, nil)
	if err != nil {
		return "", fmt.Errorf("decrypting ciphertext: %w", err)
	}
	return string(plain), nil
}

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const sealInfo = "backoffice upstream token v1"

func sealKey(secret string) (*[32]byte, error) {
	var key [32]byte
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(sealInfo))
	if _, err := io.ReadFull(r, key[:]); err != nil {
		return nil, fmt.Errorf("anahtar türetilemedi: %w", err)
	}
	return &key, nil
}

func seal(secret, plaintext string) (string, error) {
	key, err := sealKey(secret)
	if err != nil {
		return "", err
	}
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("nonce üretilemedi: %w", err)
	}
	box := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, key)
	return base64.RawURLEncoding.EncodeToString(box), nil
}

func open(secret, sealed string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil || len(raw) < 24+secretbox.Overhead {
		return "", errors.New("mühürlü token bozuk")
	}
	key, err := sealKey(secret)
	if err != nil {
		return "", err
	}
	var nonce [24]byte
	copy(nonce[:], raw[:24])
	plain, ok := secretbox.Open(nil, raw[24:], &nonce, key)
	if !ok {
		return "", errors.New("mühürlü token açılamadı")
	}
	return string(plain), nil
}

// Package crypto implements the at-rest encryption for account passwords.
// Tokens are AES-256-CBC with a fresh random IV per call, stored as
// "hexIV:hexCiphertext" so the IV travels with the record.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrDecryptionFailed is returned for malformed tokens, truncated ciphertext
// or a key that does not match the one the token was produced with.
var ErrDecryptionFailed = errors.New("decryption failed")

// KeySize is the required key length for AES-256.
const KeySize = 32

// Encrypt encrypts plaintext under key and returns an opaque token. A new
// random IV is drawn on every call, so encrypting the same input twice never
// yields the same token.
func Encrypt(key []byte, plaintext string) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	padded := pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ciphertext), nil
}

// Decrypt is the exact inverse of Encrypt.
func Decrypt(key []byte, token string) (string, error) {
	ivHex, dataHex, ok := strings.Cut(token, ":")
	if !ok {
		return "", fmt.Errorf("%w: missing iv separator", ErrDecryptionFailed)
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil || len(iv) != aes.BlockSize {
		return "", fmt.Errorf("%w: bad iv", ErrDecryptionFailed)
	}
	ciphertext, err := hex.DecodeString(dataHex)
	if err != nil || len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: bad ciphertext", ErrDecryptionFailed)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

// pad appends PKCS#7 padding up to the block size.
func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty plaintext", ErrDecryptionFailed)
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("%w: bad padding", ErrDecryptionFailed)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: bad padding", ErrDecryptionFailed)
		}
	}
	return data[:len(data)-n], nil
}

package cryptobox

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/chacha20poly1305"
)

// magic prefixes every ciphertext so foreign files are rejected early.
const magic = "FEv1"

var (
	// ErrDecryption is returned when a ciphertext fails authentication:
	// wrong password, truncated input, or tampered bytes.
	ErrDecryption = errors.New("decryption failed: wrong password or corrupted data")
	// ErrKeyDestroyed is returned when a destroyed key is used.
	ErrKeyDestroyed = errors.New("key has been destroyed")
)

// Key is a 256-bit symmetric key held in guarded memory.
type Key struct {
	buf *memguard.LockedBuffer
}

// DeriveKey hashes password once with SHA-256. The result depends only on
// the password: no salt is stored, so decryption can re-derive the same key
// from the password alone. This is deliberately not a hardened KDF.
func DeriveKey(password string) *Key {
	sum := sha256.Sum256([]byte(password))
	// NewBufferFromBytes wipes sum after copying it into locked memory
	return &Key{buf: memguard.NewBufferFromBytes(sum[:])}
}

// Bytes returns a copy of the key material.
func (k *Key) Bytes() []byte {
	if !k.alive() {
		return nil
	}
	out := make([]byte, k.buf.Size())
	copy(out, k.buf.Bytes())
	return out
}

// Destroy wipes the key. Safe to call more than once.
func (k *Key) Destroy() {
	if k == nil || k.buf == nil {
		return
	}
	k.buf.Destroy()
	k.buf = nil
}

func (k *Key) alive() bool {
	return k != nil && k.buf != nil && k.buf.IsAlive()
}

// Encrypt seals plaintext with XChaCha20-Poly1305 under key.
//
// Output layout: magic || 24-byte random nonce || ciphertext+tag.
func Encrypt(plaintext []byte, key *Key) ([]byte, error) {
	if !key.alive() {
		return nil, ErrKeyDestroyed
	}
	aead, err := chacha20poly1305.NewX(key.buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	out := make([]byte, len(magic)+aead.NonceSize(), len(magic)+aead.NonceSize()+len(plaintext)+aead.Overhead())
	copy(out, magic)
	nonce := out[len(magic):]
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return aead.Seal(out, nonce, plaintext, []byte(magic)), nil
}

// Decrypt opens a ciphertext produced by Encrypt. Any authentication failure
// is reported as ErrDecryption.
func Decrypt(ciphertext []byte, key *Key) ([]byte, error) {
	if !key.alive() {
		return nil, ErrKeyDestroyed
	}
	aead, err := chacha20poly1305.NewX(key.buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	header := len(magic) + aead.NonceSize()
	if len(ciphertext) < header+aead.Overhead() {
		return nil, fmt.Errorf("%w: input too short", ErrDecryption)
	}
	if string(ciphertext[:len(magic)]) != magic {
		return nil, fmt.Errorf("%w: not an encrypted file", ErrDecryption)
	}

	nonce := ciphertext[len(magic):header]
	plaintext, err := aead.Open(nil, nonce, ciphertext[header:], []byte(magic))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	return plaintext, nil
}

package cryptobox

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKeyIsDeterministic(t *testing.T) {
	a := DeriveKey("pw1")
	defer a.Destroy()
	b := DeriveKey("pw1")
	defer b.Destroy()
	c := DeriveKey("pw2")
	defer c.Destroy()

	want := sha256.Sum256([]byte("pw1"))
	assert.Equal(t, want[:], a.Bytes())
	assert.Len(t, a.Bytes(), 32)
	assert.Equal(t, a.Bytes(), b.Bytes())
	assert.NotEqual(t, a.Bytes(), c.Bytes())
}

func TestDestroyedKeyIsUnusable(t *testing.T) {
	k := DeriveKey("pw")
	k.Destroy()
	k.Destroy()

	assert.Nil(t, k.Bytes())
	_, err := Encrypt([]byte("x"), k)
	assert.ErrorIs(t, err, ErrKeyDestroyed)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := DeriveKey("secret")
	defer key.Destroy()

	for _, plain := range [][]byte{nil, []byte("hello"), make([]byte, 64*1024)} {
		sealed, err := Encrypt(plain, key)
		require.NoError(t, err)
		assert.Equal(t, magic, string(sealed[:len(magic)]))

		opened, err := Decrypt(sealed, key)
		require.NoError(t, err)
		assert.Equal(t, len(plain), len(opened))
		if len(plain) > 0 {
			assert.Equal(t, plain, opened)
		}
	}
}

func TestEncryptUsesFreshNonce(t *testing.T) {
	key := DeriveKey("secret")
	defer key.Destroy()

	a, err := Encrypt([]byte("same"), key)
	require.NoError(t, err)
	b, err := Encrypt([]byte("same"), key)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecryptFailures(t *testing.T) {
	key := DeriveKey("pw1")
	defer key.Destroy()
	wrong := DeriveKey("pw2")
	defer wrong.Destroy()

	sealed, err := Encrypt([]byte("hello"), key)
	require.NoError(t, err)

	_, err = Decrypt(sealed, wrong)
	assert.ErrorIs(t, err, ErrDecryption)

	tampered := append([]byte(nil), sealed...)
	tampered[len(tampered)-1] ^= 0xff
	_, err = Decrypt(tampered, key)
	assert.ErrorIs(t, err, ErrDecryption)

	_, err = Decrypt([]byte("short"), key)
	assert.ErrorIs(t, err, ErrDecryption)

	foreign := append([]byte("XXXX"), sealed[len(magic):]...)
	_, err = Decrypt(foreign, key)
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestFileRoundTripAndWrongPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o640))

	require.NoError(t, EncryptFile(path, "pw1"))
	sealed, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, []byte("hello"), sealed)

	err = DecryptFile(path, "pw2")
	assert.ErrorIs(t, err, ErrDecryption)
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sealed, after)

	require.NoError(t, DecryptFile(path, "pw1"))
	plain, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(plain))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestTransformFileRejectsDirectory(t *testing.T) {
	err := TransformFile(t.TempDir(), func(b []byte) ([]byte, error) { return b, nil })
	assert.Error(t, err)
}

func TestTransformFileMissing(t *testing.T) {
	err := EncryptFile(filepath.Join(t.TempDir(), "nope"), "pw")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

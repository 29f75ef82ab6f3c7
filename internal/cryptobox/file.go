package cryptobox

import (
	"fmt"
	"os"
	"path/filepath"
)

// TransformFile rewrites path with fn(original). The new content is written
// to a temporary file in the same directory and renamed over the original,
// so the original is untouched when fn or any write fails.
func TransformFile(path string, fn func([]byte) ([]byte, error)) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out, err := fn(data)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		cleanup()
		return fmt.Errorf("preserve mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

// EncryptFile encrypts path in place with a key derived from password.
func EncryptFile(path, password string) error {
	key := DeriveKey(password)
	defer key.Destroy()

	return TransformFile(path, func(plain []byte) ([]byte, error) {
		return Encrypt(plain, key)
	})
}

// DecryptFile decrypts path in place. On ErrDecryption the file is left
// exactly as it was.
func DecryptFile(path, password string) error {
	key := DeriveKey(password)
	defer key.Destroy()

	return TransformFile(path, func(sealed []byte) ([]byte, error) {
		return Decrypt(sealed, key)
	})
}

package engine

import (
	"errors"
	"fmt"
	"os"

	"github.com/GriffinCanCode/fileengine/internal/cryptobox"
)

func (e *Engine) encryptFile(op EncryptFile) Outcome {
	path, out := e.cryptoTarget(op.Name, op.Password)
	if out != nil {
		return *out
	}
	size := fileSize(path)

	if err := cryptobox.EncryptFile(path, op.Password); err != nil {
		return failed(err, fmt.Sprintf("Encryption error: %v", err))
	}
	e.metrics.RecordCrypto("encrypt", size)
	return done(fmt.Sprintf("File '%s' encrypted.", op.Name))
}

func (e *Engine) decryptFile(op DecryptFile) Outcome {
	path, out := e.cryptoTarget(op.Name, op.Password)
	if out != nil {
		return *out
	}
	size := fileSize(path)

	err := cryptobox.DecryptFile(path, op.Password)
	if errors.Is(err, cryptobox.ErrDecryption) {
		return failed(err, fmt.Sprintf("Decryption failed for '%s': wrong password or corrupted data.", op.Name))
	}
	if err != nil {
		return failed(err, fmt.Sprintf("Decryption error: %v", err))
	}
	e.metrics.RecordCrypto("decrypt", size)
	return done(fmt.Sprintf("File '%s' decrypted.", op.Name))
}

func (e *Engine) cryptoTarget(name, password string) (string, *Outcome) {
	if out := requireName(name, "file name"); out != nil {
		return "", out
	}
	if password == "" {
		out := failed(invalidf("empty password"), "A password is required.")
		return "", &out
	}
	path, out := e.resolveArg(name)
	if out != nil {
		return "", out
	}
	if out := regularFile(path, name); out != nil {
		return "", out
	}
	return path, nil
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

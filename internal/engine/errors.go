package engine

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/GriffinCanCode/fileengine/internal/archive"
	"github.com/GriffinCanCode/fileengine/internal/cryptobox"
	"github.com/GriffinCanCode/fileengine/internal/shared/paths"
)

// Error taxonomy. Outcome.Err wraps exactly one of these.
var (
	// ErrConfinement: a path argument resolves outside the sandbox root.
	ErrConfinement = errors.New("path outside sandbox")
	// ErrUnauthorized: the session role may not run the operation.
	ErrUnauthorized = errors.New("not authorized")
	// ErrNotFound: the target of the operation does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists: the target of a create or rename already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrDecryption: wrong password or corrupted ciphertext.
	ErrDecryption = cryptobox.ErrDecryption
	// ErrInvalid: an argument is malformed or names the wrong kind of entry.
	ErrInvalid = errors.New("invalid argument")
	// ErrIO: any other filesystem failure.
	ErrIO = errors.New("i/o error")
)

// classify wraps err with its taxonomy sentinel, keeping the original chain.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrConfinement), errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrNotFound), errors.Is(err, ErrAlreadyExists),
		errors.Is(err, ErrDecryption), errors.Is(err, ErrInvalid), errors.Is(err, ErrIO):
		return err
	case errors.Is(err, paths.ErrOutsideRoot), errors.Is(err, archive.ErrUnsafeEntry):
		return fmt.Errorf("%w: %w", ErrConfinement, err)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, fs.ErrExist):
		return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	case errors.Is(err, archive.ErrUnsupported), errors.Is(err, archive.ErrNotRegular):
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	default:
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

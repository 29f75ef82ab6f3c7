package scan

import (
	"context"
	"runtime"

	"github.com/GriffinCanCode/fileengine/internal/shared/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Duplicate pairs a file with the earlier file holding the same content.
type Duplicate struct {
	Path     string
	Original string
}

// Scanner computes content digests over a tree.
type Scanner struct {
	hasher  *utils.Hasher
	workers int
	logger  *zap.Logger

	// OnScan, when set, is called after every completed scan with the
	// number of files visited and duplicates found.
	OnScan func(files, duplicates int)
}

// NewScanner creates a scanner hashing with up to workers goroutines.
// workers <= 0 uses GOMAXPROCS.
func NewScanner(hasher *utils.Hasher, workers int, logger *zap.Logger) *Scanner {
	if hasher == nil {
		hasher = utils.DefaultHasher()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{hasher: hasher, workers: workers, logger: logger}
}

// Duplicates reports every regular file under root whose content matches an
// earlier file in canonical order. The earliest file per digest is the
// original; each later one is reported once, paired with it.
func (s *Scanner) Duplicates(ctx context.Context, root string) ([]Duplicate, error) {
	files, err := Files(ctx, root, s.workers)
	if err != nil {
		return nil, err
	}

	digests := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i := range files {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sum, err := s.hasher.HashFile(files[i].Path)
			if err != nil {
				s.logger.Debug("skipping unreadable file", zap.String("path", files[i].Path), zap.Error(err))
				return nil
			}
			digests[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(files))
	var dups []Duplicate
	for i, f := range files {
		sum := digests[i]
		if sum == "" {
			continue
		}
		if original, ok := seen[sum]; ok {
			dups = append(dups, Duplicate{Path: f.Path, Original: original})
			continue
		}
		seen[sum] = f.Path
	}

	s.observe(len(files), len(dups))
	s.logger.Debug("duplicate scan finished",
		zap.String("root", root),
		zap.Int("files", len(files)),
		zap.Int("duplicates", len(dups)))
	return dups, nil
}

// Workers reports the parallelism bound.
func (s *Scanner) Workers() int { return s.workers }

func (s *Scanner) observe(files, duplicates int) {
	if s.OnScan != nil {
		s.OnScan(files, duplicates)
	}
}

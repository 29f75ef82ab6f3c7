package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/GriffinCanCode/fileengine/internal/audit"
	"github.com/GriffinCanCode/fileengine/internal/bookmarks"
	"github.com/GriffinCanCode/fileengine/internal/infrastructure/logging"
	"github.com/GriffinCanCode/fileengine/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/fileengine/internal/permissions"
	"github.com/GriffinCanCode/fileengine/internal/scan"
	"github.com/GriffinCanCode/fileengine/internal/shared/id"
	"github.com/GriffinCanCode/fileengine/internal/shared/paths"
	"github.com/GriffinCanCode/fileengine/internal/shared/types"
	"github.com/GriffinCanCode/fileengine/internal/shared/utils"
	"go.uber.org/zap"
)

// Defaults applied when Options leaves a field zero.
const (
	DefaultPreviewLines = 10
	DefaultRecentCount  = scan.DefaultRecentCount
	DefaultScanWorkers  = 4
)

// Options configures an Engine.
type Options struct {
	// Root is the sandbox root. It is made absolute and created if missing.
	Root    string
	Session types.Session
	Audit   audit.Sink

	// AuditPath is the file summarized by LogDashboard. When empty and
	// Audit is an *audit.Log, its path is used.
	AuditPath string
	Bookmarks *bookmarks.Store

	PreviewLines int
	RecentCount  int
	ScanWorkers  int

	Metrics *monitoring.Metrics
	Logger  *logging.Logger
}

// Engine executes operations for one session inside one sandbox root.
type Engine struct {
	resolver *paths.Resolver
	cursor   string
	session  types.Session

	audit     audit.Sink
	auditPath string
	bookmarks *bookmarks.Store
	scanner   *scan.Scanner

	previewLines int
	recentCount  int

	metrics *monitoring.Metrics
	logger  *logging.Logger
}

// New validates opts, creates the sandbox root if needed and places the
// cursor at the root.
func New(opts Options) (*Engine, error) {
	if opts.Root == "" {
		return nil, fmt.Errorf("sandbox root is required")
	}
	if !opts.Session.Role.Valid() {
		return nil, fmt.Errorf("session has unknown role %q", opts.Session.Role)
	}
	if opts.Session.User == "" {
		return nil, fmt.Errorf("session has no user")
	}
	if opts.Audit == nil {
		return nil, fmt.Errorf("audit sink is required")
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create root: %w", err)
	}
	resolver, err := paths.NewResolver(root)
	if err != nil {
		return nil, err
	}

	if opts.PreviewLines <= 0 {
		opts.PreviewLines = DefaultPreviewLines
	}
	if opts.RecentCount <= 0 {
		opts.RecentCount = DefaultRecentCount
	}
	if opts.ScanWorkers <= 0 {
		opts.ScanWorkers = DefaultScanWorkers
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = monitoring.NewMetrics()
	}
	if opts.AuditPath == "" {
		if l, ok := opts.Audit.(*audit.Log); ok {
			opts.AuditPath = l.Path()
		}
	}

	logger := opts.Logger.Named("engine")
	scanner := scan.NewScanner(utils.DefaultHasher(), opts.ScanWorkers, logger.Logger)
	scanner.OnScan = opts.Metrics.RecordScan

	return &Engine{
		resolver:     resolver,
		cursor:       resolver.Root(),
		session:      opts.Session,
		audit:        opts.Audit,
		auditPath:    opts.AuditPath,
		bookmarks:    opts.Bookmarks,
		scanner:      scanner,
		previewLines: opts.PreviewLines,
		recentCount:  opts.RecentCount,
		metrics:      opts.Metrics,
		logger:       logger,
	}, nil
}

// Root returns the absolute sandbox root.
func (e *Engine) Root() string { return e.resolver.Root() }

// Cursor returns the absolute current directory.
func (e *Engine) Cursor() string { return e.cursor }

// Session returns the session the engine acts for.
func (e *Engine) Session() types.Session { return e.session }

// Metrics returns the engine's metrics collector.
func (e *Engine) Metrics() *monitoring.Metrics { return e.metrics }

// Do runs op and returns its outcome. Exactly one audit record is written
// per call, whatever the result.
func (e *Engine) Do(ctx context.Context, op Operation) Outcome {
	opID := id.NewOperationID()
	kind := permissions.Kind("unknown")
	if op != nil {
		kind = op.Kind()
	}
	timer := monitoring.NewTimer(e.metrics, string(kind))

	out := e.run(ctx, kind, op)
	out.Op = kind

	e.record(ctx, out)
	elapsed := timer.Stop(out.metricLabel())

	fields := []zap.Field{
		zap.String("op_id", opID.String()),
		zap.String("kind", string(kind)),
		zap.String("user", e.session.User),
		zap.String("outcome", out.Kind.String()),
		zap.Duration("duration", elapsed),
	}
	if out.Err != nil {
		fields = append(fields, zap.Error(out.Err))
	}
	if out.Kind == OutcomeError {
		e.logger.Warn("operation failed", fields...)
	} else {
		e.logger.Debug("operation finished", fields...)
	}
	return out
}

func (e *Engine) run(ctx context.Context, kind permissions.Kind, op Operation) Outcome {
	if op == nil {
		return failed(invalidf("no operation"), "No operation given.")
	}
	if !permissions.Authorize(e.session.Role, kind) {
		return Outcome{
			Kind:    OutcomeDenied,
			Message: deniedMessage(kind),
			Err:     fmt.Errorf("%w: %s requires admin", ErrUnauthorized, kind),
		}
	}
	if err := ctx.Err(); err != nil {
		return failed(err, "Operation cancelled.")
	}
	return e.dispatch(ctx, op)
}

func (e *Engine) dispatch(ctx context.Context, op Operation) Outcome {
	switch op := op.(type) {
	case CreateDirectory:
		return e.createDirectory(op)
	case CreateFile:
		return e.createFile(op)
	case ListDirectory:
		return e.listDirectory()
	case DeleteFile:
		return e.deleteFile(op)
	case DeleteDirectory:
		return e.deleteDirectory(op)
	case Move:
		return e.move(op)
	case Rename:
		return e.rename(op)
	case Copy:
		return e.copy(ctx, op)
	case ReadFile:
		return e.readFile(op)
	case WriteFile:
		return e.writeFile(op)
	case Search:
		return e.search(ctx, op)
	case ChangeDirectory:
		return e.changeDirectory(op)
	case CurrentPath:
		return e.currentPath()
	case Compress:
		return e.compress(ctx, op)
	case Decompress:
		return e.decompress(ctx, op)
	case EncryptFile:
		return e.encryptFile(op)
	case DecryptFile:
		return e.decryptFile(op)
	case BatchRename:
		return e.batchRename(op)
	case PreviewFile:
		return e.previewFile(op)
	case Properties:
		return e.properties(op)
	case Tree:
		return e.tree(ctx, op)
	case RecentFiles:
		return e.recentFiles(ctx, op)
	case FindDuplicates:
		return e.findDuplicates(ctx)
	case AddBookmark:
		return e.addBookmark(op)
	case ListBookmarks:
		return e.listBookmarks()
	case LogDashboard:
		return e.logDashboard()
	default:
		return failed(invalidf("unsupported operation %T", op), fmt.Sprintf("Unsupported operation %q.", op.Kind()))
	}
}

// deniedPrefix starts every denial message so denials are greppable in the
// audit log.
const deniedPrefix = "Permission denied: "

func deniedMessage(kind permissions.Kind) string {
	switch kind {
	case permissions.KindCreateDirectory:
		return deniedPrefix + "Only admin can create directories."
	case permissions.KindDeleteFile:
		return deniedPrefix + "Only admin can delete files."
	case permissions.KindDeleteDirectory:
		return deniedPrefix + "Only admin can delete directories."
	default:
		return fmt.Sprintf("%sOnly admin can run %s.", deniedPrefix, kind)
	}
}

func (e *Engine) record(ctx context.Context, out Outcome) {
	entry := audit.Entry{
		Time:    time.Now(),
		Level:   out.level(),
		Command: string(out.Op),
		User:    e.session.User,
		Message: out.Message,
	}
	if err := e.audit.Record(ctx, entry); err != nil {
		e.logger.Error("audit write failed", zap.String("kind", string(out.Op)), zap.Error(err))
	}
}

// resolve maps a user-supplied name onto an absolute path under the root.
func (e *Engine) resolve(name string) (string, error) {
	p, err := e.resolver.Resolve(e.cursor, name)
	if err != nil {
		return "", classify(err)
	}
	return p, nil
}

// display is the root-relative form of an absolute path.
func (e *Engine) display(path string) string {
	return e.resolver.Rel(path)
}

func outsideRoot(name string, err error) Outcome {
	return failed(err, fmt.Sprintf("Access denied: '%s' is outside the managed directory.", name))
}

// resolveArg resolves name, returning a ready-made error outcome when it
// escapes the root.
func (e *Engine) resolveArg(name string) (string, *Outcome) {
	p, err := e.resolve(name)
	if err != nil {
		out := outsideRoot(name, err)
		return "", &out
	}
	return p, nil
}

// requireName rejects empty or malformed entry names.
func requireName(name, what string) *Outcome {
	if err := paths.ValidateName(name); err != nil {
		out := failed(invalidf("%s: %v", what, err), fmt.Sprintf("A %s is required.", what))
		return &out
	}
	return nil
}

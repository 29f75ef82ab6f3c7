package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/GriffinCanCode/fileengine/internal/audit"
	"github.com/GriffinCanCode/fileengine/internal/auth"
	"github.com/GriffinCanCode/fileengine/internal/bookmarks"
	"github.com/GriffinCanCode/fileengine/internal/engine"
	"github.com/GriffinCanCode/fileengine/internal/infrastructure/config"
	"github.com/GriffinCanCode/fileengine/internal/infrastructure/logging"
	"github.com/GriffinCanCode/fileengine/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/fileengine/internal/shared/types"
	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	rootFlag string
	devFlag  bool
	roleFlag string
)

var rootCmd = &cobra.Command{
	Use:   "fileengine",
	Short: "Sandboxed, role-gated file manager",
	Long: `fileengine manages files inside one root directory on behalf of a
logged-in user. Every operation is confined to the root, checked against the
user's role and written to an audit log.

Running without a sub-command starts the interactive shell.`,
	SilenceUsage: true,
	RunE:         runShellCmd,
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Log in and start the interactive menu",
	RunE:  runShellCmd,
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Summarize the audit log",
	RunE:  runDashboardCmd,
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List the accounts in the users file",
	Args:  cobra.NoArgs,
	RunE:  runUsersCmd,
}

var useraddCmd = &cobra.Command{
	Use:   "useradd <username>",
	Short: "Add an account to the users file",
	Args:  cobra.ExactArgs(1),
	RunE:  runUseraddCmd,
}

func main() {
	memguard.CatchInterrupt()
	defer memguard.Purge()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		memguard.SafeExit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Managed root directory (overrides FILEENGINE_ROOT)")
	rootCmd.PersistentFlags().BoolVar(&devFlag, "dev", false, "Development logging (debug level, console output)")
	useraddCmd.Flags().StringVar(&roleFlag, "role", string(types.RoleUser), "Role of the new account (admin or user)")

	rootCmd.AddCommand(shellCmd, dashboardCmd, usersCmd, useraddCmd)
}

// loadConfig reads the environment and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if rootFlag != "" {
		cfg.Engine.Root = rootFlag
	}
	if devFlag {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	lc := logging.DefaultConfig()
	if cfg.Logging.Development {
		lc = logging.DevelopmentConfig()
	}
	lc.Level = cfg.Logging.Level
	lc.File = cfg.Logging.File
	return logging.New(lc)
}

func runShellCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	users, err := auth.Open(cfg.Auth.UsersFile)
	if err != nil {
		return err
	}
	seeded, err := users.SeedAdmin(cfg.Auth.SeedAdmin)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if seeded {
		logger.Info("seeded admin account", zap.String("users_file", cfg.Auth.UsersFile))
	}
	if users.Len() == 0 {
		return fmt.Errorf("no accounts in %s; run 'fileengine useradd' or set FILEENGINE_SEED_ADMIN", cfg.Auth.UsersFile)
	}

	log, err := audit.Open(cfg.Engine.AuditLog)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	c := newConsole(os.Stdin, cmd.OutOrStdout())
	sess, err := login(ctx, c, users, log, logger)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return errors.New("invalid credentials")
		}
		return err
	}

	root, err := cfg.AbsRoot()
	if err != nil {
		return err
	}
	eng, err := engine.New(engine.Options{
		Root:         root,
		Session:      sess,
		Audit:        log,
		Bookmarks:    bookmarks.New(cfg.Engine.Bookmarks),
		PreviewLines: cfg.Engine.PreviewLines,
		RecentCount:  cfg.Engine.RecentCount,
		ScanWorkers:  cfg.Engine.ScanWorkers,
		Metrics:      monitoring.NewMetrics(),
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	logger.Info("session started",
		zap.String("session", sess.ID.String()),
		zap.String("user", sess.User),
		zap.String("role", sess.Role.String()),
		zap.String("root", eng.Root()))

	return runShell(ctx, c, eng, log, logger)
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := audit.SummarizeFile(cfg.Engine.AuditLog)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("--- Log Dashboard ---"))
	fmt.Fprintf(out, "Records: %d\n", s.Total)
	fmt.Fprintf(out, "Most used commands: %s\n", joinCounts(s.TopCommands(10)))
	fmt.Fprintf(out, "Most active users: %s\n", joinCounts(s.TopUsers(10)))
	fmt.Fprintf(out, "Errors: %d\n", s.Errors)
	return nil
}

func runUseraddCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	role, err := types.ParseRole(roleFlag)
	if err != nil {
		return err
	}
	users, err := auth.Open(cfg.Auth.UsersFile)
	if err != nil {
		return err
	}

	c := newConsole(os.Stdin, cmd.OutOrStdout())
	password, err := c.Secret("Password")
	if err != nil {
		return err
	}
	confirm, err := c.Secret("Confirm password")
	if err != nil {
		return err
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	if err := users.Add(args[0], password, role); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("User '%s' added with role %s.", args[0], role)))
	return nil
}

func runUsersCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	users, err := auth.Open(cfg.Auth.UsersFile)
	if err != nil {
		return err
	}
	listUsers(cmd.OutOrStdout(), users)
	return nil
}

// listUsers prints one account name per line.
func listUsers(out io.Writer, users *auth.Store) {
	names := users.Users()
	if len(names) == 0 {
		fmt.Fprintln(out, "No accounts.")
		return
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
}

func joinCounts(counts []audit.Count) string {
	if len(counts) == 0 {
		return "none"
	}
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%s (%d)", c.Name, c.Count)
	}
	return strings.Join(parts, ", ")
}

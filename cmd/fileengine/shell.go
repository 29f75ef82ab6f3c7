package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/GriffinCanCode/fileengine/internal/audit"
	"github.com/GriffinCanCode/fileengine/internal/auth"
	"github.com/GriffinCanCode/fileengine/internal/engine"
	"github.com/GriffinCanCode/fileengine/internal/infrastructure/logging"
	"github.com/GriffinCanCode/fileengine/internal/shared/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

const helpText = `Help: pick an operation by number and answer the prompts.
Names are relative to the current directory and must stay inside the managed root.
Creating and deleting directories and deleting files require the admin role.`

// Audit commands for session events. They sit beside the operation kinds in
// the audit log but never pass through the engine.
const (
	loginCommand  = "login"
	logoutCommand = "logout"
)

// console reads answers from in and writes prompts to out. Passwords are
// read without echo when in is a terminal.
type console struct {
	in     *bufio.Reader
	out    io.Writer
	fd     int
	isTerm bool
}

func newConsole(in io.Reader, out io.Writer) *console {
	c := &console{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok {
		c.fd = int(f.Fd())
		c.isTerm = term.IsTerminal(c.fd)
	}
	return c
}

func (c *console) Ask(label string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", label)
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *console) Secret(label string) (string, error) {
	if !c.isTerm {
		return c.Ask(label)
	}
	fmt.Fprintf(c.out, "%s: ", label)
	b, err := term.ReadPassword(c.fd)
	fmt.Fprintln(c.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// recordSession appends a session event to the audit log. A failed write is
// returned but never stops the shell.
func recordSession(ctx context.Context, sink audit.Sink, level zapcore.Level, command, user, msg string) error {
	return sink.Record(ctx, audit.Entry{
		Time:    time.Now(),
		Level:   level,
		Command: command,
		User:    user,
		Message: msg,
	})
}

// login asks for credentials once and audits the attempt. Failure ends the
// process.
func login(ctx context.Context, c *console, users *auth.Store, sink audit.Sink, logger *logging.Logger) (types.Session, error) {
	fmt.Fprintln(c.out, titleStyle.Render("--- Login ---"))
	user, err := c.Ask("Username")
	if err != nil {
		return types.Session{}, err
	}
	user = strings.TrimSpace(user)
	password, err := c.Secret("Password")
	if err != nil {
		return types.Session{}, err
	}

	sess, err := users.Authenticate(user, password)
	if err != nil {
		if aerr := recordSession(ctx, sink, zapcore.WarnLevel, loginCommand, user, "Failed login attempt."); aerr != nil {
			logger.Error("audit write failed", zap.String("kind", loginCommand), zap.Error(aerr))
		}
		return types.Session{}, err
	}
	if aerr := recordSession(ctx, sink, zapcore.InfoLevel, loginCommand, sess.User, fmt.Sprintf("User '%s' logged in.", sess.User)); aerr != nil {
		logger.Error("audit write failed", zap.String("kind", loginCommand), zap.Error(aerr))
	}
	fmt.Fprintln(c.out, successStyle.Render(fmt.Sprintf("Login successful. Welcome %s (%s).", sess.User, sess.Role)))
	return sess, nil
}

// runShell drives the numbered menu until exit or end of input. The session
// end is audited however the loop stops.
func runShell(ctx context.Context, c *console, eng *engine.Engine, sink audit.Sink, logger *logging.Logger) error {
	defer func() {
		if err := recordSession(ctx, sink, zapcore.InfoLevel, logoutCommand, eng.Session().User, "Session ended."); err != nil {
			logger.Error("audit write failed", zap.String("kind", logoutCommand), zap.Error(err))
		}
	}()

	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, titleStyle.Render(menuText()))

		choice, err := c.Ask("Enter your choice")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		choice = strings.TrimSpace(choice)

		switch choice {
		case "--help", "help":
			fmt.Fprintln(c.out, helpText)
			continue
		case fmt.Sprint(exitChoice), "exit", "quit":
			fmt.Fprintln(c.out, "Goodbye!")
			return nil
		}

		item, ok := choose(choice)
		if !ok {
			fmt.Fprintln(c.out, errorStyle.Render("Invalid choice. Try again."))
			continue
		}
		op, err := item.build(c)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(c.out, errorStyle.Render(err.Error()))
			continue
		}

		fmt.Fprintln(c.out, render(eng.Do(ctx, op)))
	}
}

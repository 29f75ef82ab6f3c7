package engine

import (
	"github.com/GriffinCanCode/fileengine/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/fileengine/internal/permissions"
	"go.uber.org/zap/zapcore"
)

// OutcomeKind classifies the result of an operation.
type OutcomeKind int

const (
	// OutcomeSuccess: the operation did what was asked.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeNotice: nothing to do, reported but not an error (target
	// already exists on create, missing on delete).
	OutcomeNotice
	// OutcomeDenied: the session role lacks the privilege.
	OutcomeDenied
	// OutcomeError: the operation failed; Err says why.
	OutcomeError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeNotice:
		return "notice"
	case OutcomeDenied:
		return "denied"
	default:
		return "error"
	}
}

// Outcome is the result of one Do call.
type Outcome struct {
	Kind OutcomeKind
	Op   permissions.Kind
	// Message is the one-line, human-readable result. It is also the text
	// written to the audit log.
	Message string
	// Lines carries listing output (directory entries, file lines, matches).
	Lines []string
	// Err is set for notices, denials and errors.
	Err error
}

// OK reports whether the operation completed without error or denial.
func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess || o.Kind == OutcomeNotice
}

func (o Outcome) level() zapcore.Level {
	switch o.Kind {
	case OutcomeDenied:
		return zapcore.WarnLevel
	case OutcomeError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (o Outcome) metricLabel() string {
	switch o.Kind {
	case OutcomeDenied:
		return monitoring.OutcomeDenied
	case OutcomeError:
		return monitoring.OutcomeError
	default:
		return monitoring.OutcomeSuccess
	}
}

func done(msg string, lines ...string) Outcome {
	return Outcome{Kind: OutcomeSuccess, Message: msg, Lines: lines}
}

func notice(err error, msg string) Outcome {
	return Outcome{Kind: OutcomeNotice, Message: msg, Err: classify(err)}
}

func failed(err error, msg string) Outcome {
	return Outcome{Kind: OutcomeError, Message: msg, Err: classify(err)}
}

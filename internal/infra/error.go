package infra

import (
	"errors"
	"log/slog"

	"raffle-tickets/internal/pkg/errs"
)

type StoreErrorKind string

type StoreError struct {
	Kind StoreErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e StoreError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e StoreError) Unwrap() error {
	return e.err
}

func WrapStoreErr(slogger *slog.Logger, kind StoreErrorKind, msg string, err error) error {
	slogger.Error("Store error: "+msg, slog.String("kind", string(kind)))

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return StoreError{Kind: kind, msg: msg, err: err}
}

func IsKind(err error, kind StoreErrorKind) bool {
	var e StoreError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	// KindStorageFailure: the durable write (or an unexpected read) could not
	// complete; the in-memory state was left untouched.
	KindStorageFailure StoreErrorKind = "STORAGE_FAILURE"
)

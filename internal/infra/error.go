package infra

import (
	"errors"

	"grillbox/internal/pkg/errs"
	"grillbox/internal/pkg/pgconv"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr classifies a storage failure. The kind defaults to DB_FAILURE;
// NOT_FOUND and CONFLICT also carry the matching errs sentinel so use cases
// can branch with errs.Is without importing this package.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k := KindDBFailure
	if len(kind) > 0 {
		k = kind[0]
	}
	if err != nil {
		err = errs.Wrap(err, msg)
	}

	repoErr := RepositoryError{Kind: k, msg: msg, err: err}
	switch k {
	case KindNotFound:
		return errs.Mark(repoErr, errs.ErrNotFound)
	case KindConflict:
		return errs.Mark(repoErr, errs.ErrConflict)
	case KindDBFailure:
		return errs.Mark(repoErr, errs.ErrDatabaseOperationFailed)
	default:
		return repoErr
	}
}

// NotFoundOr maps a no-rows error to NOT_FOUND and anything else to DB_FAILURE.
func NotFoundOr(msg string, err error) error {
	if pgconv.IsNoRows(err) {
		return WrapRepoErr(msg, err, KindNotFound)
	}
	return WrapRepoErr(msg, err)
}

func IsNoRows(err error) bool {
	return pgconv.IsNoRows(err)
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	KindNotFound     RepositoryErrorKind = "NOT_FOUND"
	KindConflict     RepositoryErrorKind = "CONFLICT"
	KindDBFailure    RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey RepositoryErrorKind = "DUPLICATE_KEY"
)

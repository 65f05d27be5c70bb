package member

import (
	"errors"
	"strconv"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to every error raised by this module.
const (
	CodeNotFound         = "MEMBER_NOT_FOUND"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeCacheUnavailable = "CACHE_UNAVAILABLE"
	CodeInvalid          = "INVALID_MEMBER"
)

// ErrNilMember is wrapped as an Invalid error when a nil member is passed in.
var ErrNilMember = errors.New("member is nil")

// NotFound reports a missing member id.
func NotFound(id int64) error {
	return goerrors.New("member "+strconv.FormatInt(id, 10)+" not found", goerrors.CategoryNotFound).
		WithTextCode(CodeNotFound).
		WithMetadata(map[string]any{"member_id": id})
}

// StoreUnavailable wraps a failure of the system of record.
func StoreUnavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	var existing *goerrors.Error
	if errors.As(err, &existing) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryExternal, "store "+op+" failed").
		WithTextCode(CodeStoreUnavailable)
}

// CacheUnavailable wraps a failure of the cache backend.
func CacheUnavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryExternal, "cache "+op+" failed").
		WithTextCode(CodeCacheUnavailable)
}

// Invalid wraps validation failures.
func Invalid(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid member").
		WithTextCode(CodeInvalid)
}

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsStoreUnavailable reports whether err came from the store.
func IsStoreUnavailable(err error) bool {
	return hasCode(err, CodeStoreUnavailable)
}

// IsCacheUnavailable reports whether err came from the cache backend.
func IsCacheUnavailable(err error) bool {
	return hasCode(err, CodeCacheUnavailable)
}

// IsInvalid reports whether err is a validation error.
func IsInvalid(err error) bool {
	return hasCode(err, CodeInvalid)
}

// Code returns the text code carried by err, or "" for foreign errors.
func Code(err error) string {
	var e *goerrors.Error
	if errors.As(err, &e) {
		return e.TextCode
	}
	return ""
}

func hasCode(err error, code string) bool {
	return err != nil && Code(err) == code
}

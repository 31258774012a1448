package vxerr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a lookup miss. Query methods report absence with a
	// boolean instead; this sentinel is for layers that need an error value.
	ErrNotFound = errors.New("not found")
	// ErrInvalidParameter marks a malformed numeric setting or argument.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Domain labels the layer an error originated in.
type Domain string

const (
	DomainProject  Domain = "project"
	DomainTimeline Domain = "timeline"
	DomainMedia    Domain = "media"
	DomainEffect   Domain = "effect"
	DomainConfig   Domain = "config"
)

// Error carries a descriptive message upward, labeled with its domain.
type Error struct {
	Domain Domain
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Domain, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Domain, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(d Domain, err error, format string, args ...interface{}) *Error {
	return &Error{Domain: d, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Effect builds an effect-domain error.
func Effect(format string, args ...interface{}) error {
	return newError(DomainEffect, nil, format, args...)
}

// Invalid builds an error in domain d that matches ErrInvalidParameter.
func Invalid(d Domain, format string, args ...interface{}) error {
	return newError(d, ErrInvalidParameter, format, args...)
}

// NotFound builds an error in domain d that matches ErrNotFound.
func NotFound(d Domain, format string, args ...interface{}) error {
	return newError(d, ErrNotFound, format, args...)
}

// Wrap attaches a domain label and message to an underlying error.
func Wrap(d Domain, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return newError(d, err, format, args...)
}

// DomainOf reports the domain of the outermost *Error in err's chain.
func DomainOf(err error) (Domain, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Domain, true
	}
	return "", false
}

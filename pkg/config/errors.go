package config

import (
	"errors"
	"fmt"
)

// Sentinel errors for the config package.
var (
	// ErrConfigLoad is wrapped by every error returned while loading configuration.
	ErrConfigLoad = errors.New("config: load failed")

	ErrConfigNotFound = errors.New("config: file not found")
	ErrConfigParse    = errors.New("config: parse error")
	ErrEnvNotFound    = errors.New("config: environment does not exist")
	ErrEnvCycle       = errors.New("config: environment alias cycle")
	ErrEnvParse       = errors.New("config: failed to parse environment variables")
	ErrDecode         = errors.New("config: failed to decode section")
)

// LoadError describes a failure to load a single configuration file.
// It matches ErrConfigLoad, its Kind and its cause with errors.Is.
type LoadError struct {
	Kind error  // One of the sentinel errors above
	Err  error  // Underlying cause, may be nil
	File string // Path of the file relative to the config root
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: `%s`", e.Kind, e.File)
	}
	return fmt.Sprintf("%v: `%s`: %v", e.Kind, e.File, e.Err)
}

func (e *LoadError) Unwrap() []error {
	errs := []error{ErrConfigLoad, e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func loadError(kind error, file string, cause error) error {
	return &LoadError{Kind: kind, File: file, Err: cause}
}

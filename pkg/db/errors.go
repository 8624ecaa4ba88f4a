package db

import "errors"

var (
	ErrConfig            = errors.New("db: invalid database configuration")
	ErrConnect           = errors.New("db: unable to connect")
	ErrInit              = errors.New("db: unable to init database")
	ErrQuery             = errors.New("db: query failed")
	ErrUnsupportedDriver = errors.New("db: unsupported driver")
	ErrHealthcheckFailed = errors.New("db: healthcheck failed")
)

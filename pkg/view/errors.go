package view

import "errors"

var (
	ErrViewNotFound = errors.New("view: template not found")
	ErrViewParse    = errors.New("view: template parse error")
	ErrViewVars     = errors.New("view: invalid view vars file")
	ErrUnknownAsset = errors.New("view: asset type not configured")
	ErrNoURLBuilder = errors.New("view: url builder not bound")
	ErrURLParams    = errors.New("view: url params must be key/value pairs")
)

package ionsrc

import "errors"

// Failure taxonomy. All of these are unrecoverable at the point of
// detection: inputs are deterministic files, so nothing is retried and
// the current pipeline invocation aborts. Each site wraps these with
// the offending path, kind or redshift so a misconfigured run can be
// diagnosed from the message alone.
var (
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrUnimplementedModel = errors.New("stellar model not implemented")
	ErrOutOfRange         = errors.New("redshift outside table range")
	ErrMissingResumeState = errors.New("no recognized resume state")
	ErrMalformedCatalog   = errors.New("malformed halo catalog")
)

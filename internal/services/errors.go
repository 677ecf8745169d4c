package services

import "errors"

// Sentinel errors surfaced to the presentation layer. Callers match with
// errors.Is; handlers map them onto the API error envelope.
var (
	ErrValidation    = errors.New("validation failed")
	ErrUnknownReport = errors.New("unknown report id")
	ErrUnknownMetric = errors.New("unknown metric id")
)

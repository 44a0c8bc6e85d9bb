package handlers

import "errors"

// Query parameter validation errors for the reports endpoint.
var (
	errInvalidFilter = errors.New("filter must be all, income or expense")
	errHalfRange     = errors.New("from and to must be supplied together")
	errInvalidRange  = errors.New("from and to must be in YYYY-MM-DD format")
	errInvalidMonth  = errors.New("month must be between 1 and 12")
	errInvalidYear   = errors.New("year must be a positive number")
)

package flightdb

import "github.com/pkg/errors"

var (
	ErrFlightNotFound     = errors.New("flight not found")
	ErrInsufficientSeats  = errors.New("not enough seats")
	ErrInvalidTicketCount = errors.New("ticket count must be positive")

	// ErrDataFileNotFound is returned by Load when the data file does not exist
	// or could not be opened, callers treat it as "no prior data".
	ErrDataFileNotFound = errors.New("data file not found")
	// ErrIOFailure is returned when the data file could not be written.
	ErrIOFailure = errors.New("data file io failure")
	// ErrMalformedRecord is returned when a line does not hold a valid record,
	// or a record could not be encoded into one line.
	ErrMalformedRecord = errors.New("malformed flight record")
)

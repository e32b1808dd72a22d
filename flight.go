package flightdb

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

const (
	flightFieldCount = 4

	// emptyDestination stands for an empty destination in the data file, so that
	// a soft deleted flight still occupies four fields.
	emptyDestination = "-"
	// destinationEscape prefixes a stored destination that would otherwise read
	// as emptyDestination or begins with the escape itself.
	destinationEscape = `\`
)

// Flight is a single flight record, Number is the unique key.
type Flight struct {
	Number         int
	Destination    string
	AvailableSeats int
	Deleted        bool
}

// Available reports whether the flight can be booked or queried.
func (f *Flight) Available() bool {
	return !f.Deleted
}

// markDeleted flags the flight as deleted and clears the display fields.
func (f *Flight) markDeleted() {
	f.Destination = ""
	f.AvailableSeats = 0
	f.Deleted = true
}

// checkDestination reports whether dest fits in a single field of a line.
func checkDestination(dest string) error {
	if strings.ContainsFunc(dest, unicode.IsSpace) {
		return errors.Wrapf(ErrMalformedRecord, "destination %q contains whitespace", dest)
	}

	return nil
}

// encodeDestination maps a destination to its data file token.
// e.g.
// - ""      -> -
// - "-"     -> \-
// - "\a"    -> \\a
// - "Tokyo" -> Tokyo
func encodeDestination(dest string) string {
	switch {
	case dest == "":
		return emptyDestination
	case dest == emptyDestination, strings.HasPrefix(dest, destinationEscape):
		return destinationEscape + dest
	}

	return dest
}

func decodeDestination(token string) string {
	switch {
	case token == emptyDestination:
		return ""
	case strings.HasPrefix(token, destinationEscape):
		return token[len(destinationEscape):]
	}

	return token
}

// line renders the flight as one data file line, without the line break.
func (f *Flight) line() (string, error) {
	if err := checkDestination(f.Destination); err != nil {
		return "", errors.Wrapf(err, "flight %d", f.Number)
	}
	dest := encodeDestination(f.Destination)

	deleted := "0"
	if f.Deleted {
		deleted = "1"
	}

	return strconv.Itoa(f.Number) + " " + dest + " " + strconv.Itoa(f.AvailableSeats) + " " + deleted, nil
}

// decodeFlight parses one data file line.
// e.g.
// - "1 Tokyo 50 0" -> {1, Tokyo, 50, false}
// - "3 - 0 1"      -> {3, "", 0, true}
// - "4 \- 9 0"     -> {4, "-", 9, false}
func decodeFlight(line string) (*Flight, error) {
	fields := strings.Fields(line)
	if len(fields) != flightFieldCount {
		return nil, errors.Wrapf(ErrMalformedRecord, "want %d fields, got %d", flightFieldCount, len(fields))
	}

	number, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedRecord, "flight number %q", fields[0])
	}

	seats, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedRecord, "available seats %q", fields[2])
	}

	var deleted bool
	switch fields[3] {
	case "0":
	case "1":
		deleted = true
	default:
		return nil, errors.Wrapf(ErrMalformedRecord, "deleted flag %q", fields[3])
	}

	dest := decodeDestination(fields[1])

	return &Flight{
		Number:         number,
		Destination:    dest,
		AvailableSeats: seats,
		Deleted:        deleted,
	}, nil
}

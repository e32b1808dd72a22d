// Package console drives a flightdb.Manager from a numbered text menu. Input
// is read as whitespace separated tokens and every message goes to the
// writer, so a session runs the same on a terminal or on in-memory buffers.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/yeqown/flightdb"
)

// SeedCount is the number of flights asked for when there is no data file.
const SeedCount = 5

// Signal tells the caller of Step whether to keep going.
type Signal int

const (
	SignalContinue Signal = iota
	SignalExit
)

const (
	choiceDisplay = iota + 1
	choiceBook
	choiceStatus
	choiceUpdate
	choiceDelete
	choiceExit
)

var (
	errInvalidInput = errors.New("invalid input")
	errExit         = errors.New("exit")
)

// Session is one interactive menu session over a Manager.
type Session struct {
	m   *flightdb.Manager
	in  *bufio.Scanner
	out io.Writer
}

// NewSession creates a session reading tokens from in and writing to out.
func NewSession(m *flightdb.Manager, in io.Reader, out io.Writer) *Session {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)

	return &Session{
		m:   m,
		in:  scanner,
		out: out,
	}
}

// Run starts the session and serves menu choices until exit is chosen or the
// input ends.
func (s *Session) Run() error {
	if err := s.Start(); err != nil {
		return s.cleanEOF(err)
	}

	for {
		signal, err := s.Step()
		if err != nil {
			return s.cleanEOF(err)
		}
		if signal == SignalExit {
			return nil
		}
	}
}

func (s *Session) cleanEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}

	return err
}

// Start loads the data file. Without one, it asks for the destination and
// seats of flights 1 to SeedCount and inserts them without saving.
func (s *Session) Start() error {
	err := s.m.Load()
	switch {
	case err == nil:
		s.println("Flight data loaded successfully.")
		return nil
	case !errors.Is(err, flightdb.ErrDataFileNotFound):
		return err
	}

	s.println("Initializing flight data manually.")
	seeds := make([]flightdb.SeedFlight, 0, SeedCount)
	for i := 1; i <= SeedCount; i++ {
		dest, err := s.word(fmt.Sprintf("Enter destination for Flight %d: ", i))
		if err != nil {
			return errors.Wrap(err, "read seed destination")
		}
		seats, err := s.mustSeats(fmt.Sprintf("Enter available seats for Flight %d: ", i))
		if err != nil {
			return errors.Wrap(err, "read seed seats")
		}
		seeds = append(seeds, flightdb.SeedFlight{Destination: dest, AvailableSeats: seats})
	}

	return s.m.Seed(seeds)
}

// mustSeats asks again until a non-negative integer is read.
func (s *Session) mustSeats(prompt string) (int, error) {
	for {
		seats, err := s.seats(prompt)
		if errors.Is(err, errInvalidInput) {
			s.println("Invalid input.")
			continue
		}

		return seats, err
	}
}

// Step shows the menu, reads one choice and serves it. Only a failure to read
// input is returned as error, io.EOF when the input ends.
func (s *Session) Step() (Signal, error) {
	s.menu()

	choice, err := s.number("Enter your choice: ")
	if err == nil {
		err = s.dispatch(choice)
	}

	switch {
	case errors.Is(err, errInvalidInput):
		s.println("Invalid input.")
		return SignalContinue, nil
	case errors.Is(err, errExit):
		return SignalExit, nil
	case err != nil:
		return SignalExit, err
	}

	return SignalContinue, nil
}

func (s *Session) menu() {
	s.println("\n || Flight Management System || ")
	s.println("\n1. Display Available Flights")
	s.println("2. Book a Ticket")
	s.println("3. Check Flight Status")
	s.println("4. Update Flight Data")
	s.println("5. Delete Flight Data")
	s.println("6. Exit")
}

func (s *Session) dispatch(choice int) error {
	switch choice {
	case choiceDisplay:
		s.display()
		return nil
	case choiceBook:
		return s.book()
	case choiceStatus:
		return s.status()
	case choiceUpdate:
		return s.update()
	case choiceDelete:
		return s.delete()
	case choiceExit:
		s.println("Thank you for using the Flight Management System.")
		return errExit
	}

	s.println("Invalid choice.")
	return nil
}

func (s *Session) display() {
	s.println("\nFlights:")
	RenderFlights(s.out, s.m.Flights(), ASCII)
}

func (s *Session) book() error {
	number, err := s.number("Enter flight number: ")
	if err != nil {
		return err
	}
	count, err := s.number("Enter number of tickets: ")
	if err != nil {
		return err
	}

	err = s.m.Book(number, count)
	switch {
	case err == nil:
		s.println("Ticket(s) booked successfully.")
	case errors.Is(err, flightdb.ErrFlightNotFound):
		s.println("Flight not found.")
	case errors.Is(err, flightdb.ErrInsufficientSeats):
		s.println("Not enough seats.")
	case errors.Is(err, flightdb.ErrInvalidTicketCount):
		s.println("Number of tickets must be positive.")
	default:
		s.printf("Booking failed: %v\n", err)
	}

	return nil
}

func (s *Session) status() error {
	number, err := s.number("Enter flight number: ")
	if err != nil {
		return err
	}

	seats, err := s.m.Status(number)
	if err != nil {
		s.println("Flight not found.")
		return nil
	}

	s.printf("Flight %d - Available Seats: %d\n", number, seats)
	return nil
}

func (s *Session) update() error {
	number, err := s.number("Enter flight number to update: ")
	if err != nil {
		return err
	}

	// the new values are only asked for a known flight.
	if _, ok := s.m.Find(number); !ok {
		s.println("Flight not found.")
		return nil
	}

	dest, err := s.word("Enter new destination: ")
	if err != nil {
		return err
	}
	seats, err := s.seats("Enter available seats: ")
	if err != nil {
		return err
	}

	err = s.m.Update(number, dest, seats)
	switch {
	case errors.Is(err, flightdb.ErrFlightNotFound):
		s.println("Flight not found.")
		return nil
	case errors.Is(err, flightdb.ErrMalformedRecord):
		s.printf("Invalid destination %q.\n", dest)
		return nil
	}

	s.println("Flight updated.")
	s.saved(err)
	return nil
}

func (s *Session) delete() error {
	number, err := s.number("Enter flight number to delete: ")
	if err != nil {
		return err
	}

	found, err := s.m.Delete(number)
	if found {
		s.println("Flight data removed.")
	} else {
		s.println("Flight number not found.")
	}

	s.saved(err)
	return nil
}

func (s *Session) saved(err error) {
	if err != nil {
		s.printf("Unable to save flight data: %v\n", err)
		return
	}

	s.println("Flight data saved successfully.")
}

// word prints the prompt and reads the next token.
func (s *Session) word(prompt string) (string, error) {
	s.printf("%s", prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", errors.Wrap(err, "read input")
		}
		return "", io.EOF
	}

	return s.in.Text(), nil
}

// number reads the next token as an integer.
func (s *Session) number(prompt string) (int, error) {
	token, err := s.word(prompt)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, errors.Wrapf(errInvalidInput, "%q is not a number", token)
	}

	return n, nil
}

// seats reads the next token as a non-negative integer.
func (s *Session) seats(prompt string) (int, error) {
	n, err := s.number(prompt)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.Wrapf(errInvalidInput, "%d seats", n)
	}

	return n, nil
}

func (s *Session) println(msg string) {
	_, _ = fmt.Fprintln(s.out, msg)
}

func (s *Session) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

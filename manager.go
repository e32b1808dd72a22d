package flightdb

import (
	"github.com/pkg/errors"
)

// Manager is the flight record manager: it owns the Index and persists it
// through a Store. Booking only changes the index, updates and deletions
// rewrite the whole data file right away.
//
// Manager is not safe for concurrent use.
type Manager struct {
	opt *options

	index *Index
	store *Store
}

// Open creates a Manager whose data file is filename. Nothing is read until
// Load is called.
func Open(filename string, options ...Option) *Manager {
	opt := defaultOptions()
	for _, o := range options {
		o.apply(opt)
	}

	return &Manager{
		opt:   opt,
		index: NewIndex(),
		store: newStore(filename, opt),
	}
}

// Filename returns the path of the data file.
func (m *Manager) Filename() string {
	return m.store.Filename()
}

// Load replaces the flights in memory with the content of the data file.
// ErrDataFileNotFound means there is no prior data, and the index is left
// empty.
func (m *Manager) Load() error {
	flights, err := m.store.Load()
	if err != nil {
		return err
	}

	m.index.Reset()
	for _, f := range flights {
		m.index.Put(*f)
	}

	m.opt.logger.Infow("flights loaded", "file", m.store.Filename(), "flights", m.index.Len())
	return nil
}

// Save rewrites the data file with every flight.
func (m *Manager) Save() error {
	return m.store.Save(m.index)
}

// SeedFlight is the initial data of a seeded flight.
type SeedFlight struct {
	Destination    string
	AvailableSeats int
}

// Seed inserts the seeds as flights numbered from 1, without saving. Nothing
// is inserted if any destination can not be stored.
func (m *Manager) Seed(seeds []SeedFlight) error {
	for i, seed := range seeds {
		if err := checkDestination(seed.Destination); err != nil {
			return errors.Wrapf(err, "seed flight %d", i+1)
		}
	}

	for i, seed := range seeds {
		m.index.Put(Flight{
			Number:         i + 1,
			Destination:    seed.Destination,
			AvailableSeats: seed.AvailableSeats,
		})
	}

	m.opt.logger.Debugw("flights seeded", "flights", len(seeds))
	return nil
}

// Insert inserts the flight, or overwrites the flight with the same number.
// A destination that can not be stored is refused with ErrMalformedRecord.
func (m *Manager) Insert(f Flight) error {
	if err := checkDestination(f.Destination); err != nil {
		return errors.Wrapf(err, "flight %d", f.Number)
	}

	m.index.Put(f)
	return nil
}

// Find returns a copy of the flight, soft deleted flights included.
func (m *Manager) Find(number int) (Flight, bool) {
	f := m.index.Get(number)
	if f == nil {
		return Flight{}, false
	}

	return *f, true
}

// Flights returns a copy of every flight in ascending flight number order.
func (m *Manager) Flights() []Flight {
	flights := make([]Flight, 0, m.index.Len())
	for f := range m.index.All() {
		flights = append(flights, *f)
	}

	return flights
}

// available returns the flight if it exists and is not deleted.
func (m *Manager) available(number int) (*Flight, error) {
	f := m.index.Get(number)
	if f == nil || !f.Available() {
		return nil, errors.Wrapf(ErrFlightNotFound, "flight %d", number)
	}

	return f, nil
}

// Book takes count seats from the flight. Nothing is booked unless all the
// seats are available.
func (m *Manager) Book(number, count int) error {
	f, err := m.available(number)
	if err != nil {
		return err
	}

	if count <= 0 {
		return errors.Wrapf(ErrInvalidTicketCount, "count %d", count)
	}
	if count > f.AvailableSeats {
		return errors.Wrapf(ErrInsufficientSeats, "flight %d has %d seats, want %d",
			number, f.AvailableSeats, count)
	}

	f.AvailableSeats -= count
	m.opt.logger.Debugw("tickets booked", "flight", number, "count", count, "left", f.AvailableSeats)
	return nil
}

// Status returns the available seats of the flight.
func (m *Manager) Status(number int) (int, error) {
	f, err := m.available(number)
	if err != nil {
		return 0, err
	}

	return f.AvailableSeats, nil
}

// Update sets the destination and seats of the flight and makes it available
// again if it was deleted, then saves. A destination that can not be stored
// is refused with ErrMalformedRecord before anything changes. The flight keeps
// the new values even if saving fails.
func (m *Manager) Update(number int, destination string, seats int) error {
	f := m.index.Get(number)
	if f == nil {
		return errors.Wrapf(ErrFlightNotFound, "flight %d", number)
	}
	if err := checkDestination(destination); err != nil {
		return errors.Wrapf(err, "flight %d", number)
	}

	f.Destination = destination
	f.AvailableSeats = seats
	f.Deleted = false
	m.opt.logger.Debugw("flight updated", "flight", number, "destination", destination, "seats", seats)

	return m.Save()
}

// Delete soft deletes the flight, then saves whether or not it was found.
// err only reports the save.
func (m *Manager) Delete(number int) (found bool, err error) {
	found = m.index.SoftDelete(number)
	if found {
		m.opt.logger.Debugw("flight deleted", "flight", number)
	}

	return found, m.Save()
}

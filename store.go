package flightdb

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Store reads and writes the flight data file. The whole file is rewritten
// on every Save, and read from the beginning on every Load.
type Store struct {
	filename string

	fs        FileSystem
	malformed MalformedPolicy
	logger    Logger
}

// NewStore creates a Store for the data file filename, an empty filename
// means flight_data.txt in the working directory.
func NewStore(filename string, options ...Option) *Store {
	opt := defaultOptions()
	for _, o := range options {
		o.apply(opt)
	}

	return newStore(filename, opt)
}

func newStore(filename string, opt *options) *Store {
	if filename == "" {
		filename = defaultDataFilename
	}

	return &Store{
		filename:  filename,
		fs:        opt.fs,
		malformed: opt.malformed,
		logger:    opt.logger,
	}
}

// Filename returns the path of the data file.
func (s *Store) Filename() string {
	return s.filename
}

// Save writes every flight of idx, in ascending flight number order. The
// lines are encoded before the file is opened, so a flight that can not be
// encoded leaves the previous file untouched.
func (s *Store) Save(idx *Index) (err error) {
	lines := make([]string, 0, idx.Len())
	for f := range idx.All() {
		line, err := f.line()
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	if err = ensureDir(s.fs, s.filename); err != nil {
		return errors.Wrapf(ErrIOFailure, "create directory of %s: %v", s.filename, err)
	}

	fd, err := s.fs.OpenFile(s.filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(ErrIOFailure, "open %s: %v", s.filename, err)
	}
	defer func() {
		if er := fd.Close(); er != nil && err == nil {
			err = errors.Wrapf(ErrIOFailure, "close %s: %v", s.filename, er)
		}
	}()

	w := bufio.NewWriter(fd)
	for _, line := range lines {
		if _, err = w.WriteString(line + "\n"); err != nil {
			return errors.Wrapf(ErrIOFailure, "write %s: %v", s.filename, err)
		}
	}
	if err = w.Flush(); err != nil {
		return errors.Wrapf(ErrIOFailure, "write %s: %v", s.filename, err)
	}

	s.logger.Debugw("flight data saved", "file", s.filename, "flights", len(lines))
	return nil
}

// Load reads every flight from the data file. If the file does not exist or
// can not be opened, ErrDataFileNotFound is returned. Malformed lines are
// handled by the MalformedPolicy, and logged with their line number.
func (s *Store) Load() ([]*Flight, error) {
	fd, err := s.fs.OpenFile(s.filename, os.O_RDONLY, 0644)
	if err != nil {
		s.logger.Debugw("could not open flight data", "file", s.filename, "error", err)
		return nil, errors.Wrap(ErrDataFileNotFound, s.filename)
	}
	defer fd.Close()

	flights := make([]*Flight, 0, 64)
	// lines have no length limit, an oversize line is one malformed line.
	r := bufio.NewReader(fd)
	lineNo := 0
	for {
		line, rerr := r.ReadString('\n')
		if line == "" && rerr != nil {
			s.readFailed(rerr, lineNo)
			break
		}
		lineNo++

		if !isBlank(line) {
			f, err := decodeFlight(line)
			if err == nil {
				flights = append(flights, f)
			} else {
				s.logger.Warnw("malformed flight record",
					"file", s.filename, "line", lineNo, "policy", s.malformed.String(), "error", err)
				if s.malformed == StopAtMalformed {
					break
				}
			}
		}

		if rerr != nil {
			s.readFailed(rerr, lineNo)
			break
		}
	}

	s.logger.Debugw("flight data loaded", "file", s.filename, "flights", len(flights))
	return flights, nil
}

// readFailed logs a read error other than the end of file, what was read so
// far is kept, like with a malformed line.
func (s *Store) readFailed(err error, lineNo int) {
	if err == io.EOF {
		return
	}

	s.logger.Warnw("could not read flight data", "file", s.filename, "line", lineNo, "error", err)
}

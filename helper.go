package flightdb

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const defaultDataFilename = "flight_data.txt"

// ensureDir makes sure the directory holding filename exists.
// e.g.
// - flight_data.txt          -> nothing to do
// - path/to/flight_data.txt  -> mkdir -p path/to
func ensureDir(fs FileSystem, filename string) error {
	dir := filepath.Dir(filename)
	if dir == "." || dir == "" {
		return nil
	}

	exists, err := afero.DirExists(fs, dir)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	return fs.MkdirAll(dir, 0744)
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

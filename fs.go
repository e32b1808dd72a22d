package flightdb

import (
	"github.com/spf13/afero"
)

// FileSystem is the interface that wraps the basic methods for a file
// system, the Store reads and writes the data file through it, so that
// the default os file system can be replaced by other implementations.
//
// It's useful for testing, since it can be replaced by a memory file system.
type FileSystem = afero.Fs

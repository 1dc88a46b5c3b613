package dataset

import (
	"errors"
	"fmt"
)

// ErrDirectoryNotFound marks a leaf directory that does not exist or could
// not be listed. Permission failures are reported under the same marker.
var ErrDirectoryNotFound = errors.New("directory not found")

func directoryNotFound(dir string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDirectoryNotFound, dir, err)
	}
	return fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
}

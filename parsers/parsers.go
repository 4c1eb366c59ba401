// Package parsers loads CNF and OPB problem instances into a sat.Solver.
package parsers

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
)

func openReader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("error reading file %q: %w", filename, err)
		}
	}
	return rc, nil
}

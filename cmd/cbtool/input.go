package main

import (
	"os"

	"github.com/samcharles93/cbtool/internal/cbfile"
)

// maxStdinBytes bounds input read from a pipe.
const maxStdinBytes = 1 << 30

// openInput loads path, or stdin when path is "-".
func openInput(path string) (*cbfile.File, error) {
	if path != "-" {
		return cbfile.Open(path)
	}
	data, err := cbfile.ReadLimited(os.Stdin, maxStdinBytes)
	if err != nil {
		return nil, err
	}
	return &cbfile.File{Path: path, Data: data}, nil
}

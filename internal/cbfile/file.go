// Package cbfile loads compact binary files for validation.
package cbfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

var (
	ErrTooLarge = errors.New("cbfile: input too large")
	ErrNegative = errors.New("cbfile: negative size")
)

// File is the contents of one input. Data is read-only when mapped.
type File struct {
	Path    string
	Data    []byte
	mmapped bool
}

// Open maps path read-only. If mmap is unavailable, it falls back to
// ReadAt-based loading. The returned file must be closed to release any mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size, err := checkSize(stat.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if size == 0 {
		// mmap rejects zero length mappings.
		return &File{Path: path, Data: []byte{}}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		return &File{Path: path, Data: data, mmapped: true}, nil
	}

	data, err = readAllAt(f, size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &File{Path: path, Data: data}, nil
}

// OpenReaderAt loads size bytes from a random-access reader without mmap.
func OpenReaderAt(r io.ReaderAt, size int64) (*File, error) {
	n, err := checkSize(size)
	if err != nil {
		return nil, err
	}
	data, err := readAllAt(r, n)
	if err != nil {
		return nil, err
	}
	return &File{Data: data}, nil
}

// ReadLimited reads a stream such as stdin or a request body, failing with
// ErrTooLarge when it holds more than limit bytes.
func ReadLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	return data, nil
}

func checkSize(size int64) (int, error) {
	if size < 0 {
		return 0, ErrNegative
	}
	if size > int64(int(^uint(0)>>1)) {
		// cannot index this file safely as []byte on this architecture.
		return 0, ErrTooLarge
	}
	return int(size), nil
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

// Close releases the mapping, if any.
func (f *File) Close() error {
	if f == nil || f.Data == nil {
		return nil
	}
	var err error
	if f.mmapped {
		err = unix.Munmap(f.Data)
	}
	f.Data = nil
	f.mmapped = false
	return err
}

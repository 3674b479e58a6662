// This file is part of Elfpack.
//
// Elfpack is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Elfpack is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Elfpack.  If not, see <https://www.gnu.org/licenses/>.

package storage

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
)

// Sentinel error patterns.
const (
	NotFound      = "storage: not found (%s)"
	StorageError  = "storage: %v"
	OutsideRoot   = "storage: path outside of root (%s)"
	UnknownScheme = "storage: unsupported URI scheme (%s)"
)

// Stream is an open, seekable input.
type Stream interface {
	io.ReadSeeker
	io.Closer

	// Size of the stream in bytes
	Size() int64

	// SHA-1 of the entire stream content, as a hex string
	Hash() string

	// the name of the stream, as it was opened
	Name() string
}

// Provider opens streams by URI.
type Provider interface {
	Open(uri string) (Stream, error)
}

// stream is the Stream implementation for data held in memory.
type stream struct {
	*bytes.Reader
	name   string
	hash   string
	closed bool
}

func newStream(name string, data []byte) *stream {
	return &stream{
		Reader: bytes.NewReader(data),
		name:   name,
		hash:   fmt.Sprintf("%x", sha1.Sum(data)),
	}
}

func (s *stream) Hash() string {
	return s.hash
}

func (s *stream) Name() string {
	return s.name
}

// Close implements the io.Closer interface. Reads after Close() fail.
func (s *stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.Reader = bytes.NewReader(nil)
	return nil
}

// ReadAll returns the content of the stream from the current position.
func ReadAll(s Stream) ([]byte, error) {
	data, err := io.ReadAll(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}
	return data, nil
}

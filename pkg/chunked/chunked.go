/*
Copyright 2024 The Hooya Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package chunked turns a byte source into a lazy, finite sequence of
// bounded, non-empty byte buffers. It is used both at RPC boundaries, to
// shape outgoing data, and locally, to feed a digest while hashing files
// already on disk.
package chunked

import "io"

// Size is the maximum size of a single produced chunk.
const Size = 1 << 20 // 1 MiB

// Reader reads an underlying io.Reader in bounded chunks. It is
// non-restartable: once Next returns io.EOF or an error, the Reader is
// exhausted.
type Reader struct {
	r   io.Reader
	buf []byte
}

// New wraps r so that successive calls to Next yield buffers of at most
// Size bytes.
func New(r io.Reader) *Reader {
	return &Reader{r: r, buf: make([]byte, Size)}
}

// Next returns the next non-empty chunk, io.EOF when the underlying
// reader is exhausted, or any other error encountered while reading.
// The returned slice is only valid until the next call to Next.
func (cr *Reader) Next() ([]byte, error) {
	n, err := io.ReadFull(cr.r, cr.buf)
	if n > 0 {
		// io.ReadFull returns ErrUnexpectedEOF for a short final read;
		// that's a normal last chunk here, not a caller-visible error.
		if err == io.ErrUnexpectedEOF {
			err = nil
		}
		if err != nil && err != io.EOF {
			return cr.buf[:n], err
		}
		return cr.buf[:n], nil
	}
	if err == nil {
		err = io.EOF
	}
	return nil, err
}

// Each calls yield with every chunk read from r in order, stopping at the
// first error (io.EOF is not passed to yield) or when yield returns false.
// It returns the terminating error, or nil on a clean io.EOF.
func Each(r io.Reader, yield func([]byte) bool) error {
	cr := New(r)
	for {
		b, err := cr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if !yield(b) {
			return nil
		}
	}
}

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

// Package cidutil wraps a SHA-256 digest into a self-describing content
// identifier, CIDv1(codec=raw, multihash=sha2-256), and base32-encodes or
// decodes its textual form.
package cidutil

import (
	"crypto/sha256"
	"errors"
	"hash"

	"github.com/ipfs/go-cid"
	mbase "github.com/multiformats/go-multibase"
	mh "github.com/multiformats/go-multihash"
)

// ErrInvalidCid is returned when decoding malformed CID text or bytes.
var ErrInvalidCid = errors.New("hooya: invalid cid")

// ErrEmptyCid is returned when an operation is given a zero-length CID.
var ErrEmptyCid = errors.New("hooya: empty cid")

// TextBase is the multibase used for the canonical textual form: lowercase
// base32, prefixed with 'b'.
const TextBase = mbase.Base32

// NewDigest returns a fresh streaming SHA-256 accumulator.
func NewDigest() hash.Hash {
	return sha256.New()
}

// Wrap wraps a finished SHA-256 digest (32 bytes) into CID bytes:
// CIDv1, codec 0x55 (raw), multihash 0x12 0x20 <digest>.
func Wrap(digest []byte) ([]byte, error) {
	if len(digest) != sha256.Size {
		return nil, errors.New("hooya: digest is not a sha-256 sum")
	}
	mhash, err := mh.Encode(digest, mh.SHA2_256)
	if err != nil {
		return nil, err
	}
	c := cid.NewCidV1(cid.Raw, mhash)
	return c.Bytes(), nil
}

// Encode renders CID bytes in their canonical textual form: lowercase
// base32 with the multibase prefix 'b'.
func Encode(cidBytes []byte) (string, error) {
	if len(cidBytes) == 0 {
		return "", ErrEmptyCid
	}
	c, err := cid.Cast(cidBytes)
	if err != nil {
		return "", ErrInvalidCid
	}
	s, err := c.StringOfBase(TextBase)
	if err != nil {
		return "", ErrInvalidCid
	}
	return s, nil
}

// Decode parses textual CID form and returns the multibase it was encoded
// with along with the raw CID bytes. It fails with ErrInvalidCid on
// malformed input.
func Decode(text string) (mbase.Encoding, []byte, error) {
	if text == "" {
		return 0, nil, ErrEmptyCid
	}
	base, data, err := mbase.Decode(text)
	if err != nil {
		return 0, nil, ErrInvalidCid
	}
	c, err := cid.Cast(data)
	if err != nil {
		return 0, nil, ErrInvalidCid
	}
	return base, c.Bytes(), nil
}

// DecodeBytes is a convenience wrapper around Decode that discards the
// multibase used and returns only the raw CID bytes.
func DecodeBytes(text string) ([]byte, error) {
	_, b, err := Decode(text)
	return b, err
}

// Digest extracts the raw hash digest embedded in well-formed CID bytes
// produced by Wrap.
func Digest(cidBytes []byte) ([]byte, error) {
	if len(cidBytes) == 0 {
		return nil, ErrEmptyCid
	}
	c, err := cid.Cast(cidBytes)
	if err != nil {
		return nil, ErrInvalidCid
	}
	decoded, err := mh.Decode([]byte(c.Hash()))
	if err != nil {
		return nil, ErrInvalidCid
	}
	return decoded.Digest, nil
}

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

// Package filestore derives deterministic on-disk paths for primary
// objects and their thumbnails, and performs the atomic write-then-rename
// commit discipline described in spec §4.3: a new primary is always
// written to a randomly-named file under tmp/ first, then renamed into its
// final, content-addressed location. Thumbnails are not staged under tmp/;
// they are written directly at the path ThumbnailPath returns.
package filestore

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hooya-network/hooya/pkg/cidutil"
)

// ErrBadInput is returned for an empty CID, which is never valid.
var ErrBadInput = errors.New("hooya: bad input")

const (
	storeDirName     = "store"
	thumbsDirName    = "thumbs"
	tmpDirName       = "tmp"
	forgottenDirName = "forgotten"

	// canonicalPrefixLen is the number of leading characters of the
	// encoded CID used to shard the store/ and thumbs/ directories.
	// Earlier hooya builds used the trailing 6 characters instead; see
	// legacyPrefixOf below and DESIGN.md's "Path-prefix compatibility" note.
	canonicalPrefixLen = 11
	legacyPrefixLen    = 6

	randNameLen = 16
)

// Store represents a filestore root on disk: a directory with store/,
// thumbs/, tmp/, and forgotten/ subdirectories.
type Store struct {
	root string
}

// Open validates that root exists and has the four required
// subdirectories, creating any that are missing, and returns a Store
// rooted there.
func Open(root string) (*Store, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("hooya: filestore root %q: %w", root, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("hooya: filestore root %q is not a directory", root)
	}
	s := &Store{root: root}
	for _, dir := range []string{storeDirName, thumbsDirName, tmpDirName, forgottenDirName} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o700); err != nil {
			return nil, fmt.Errorf("hooya: creating %s: %w", dir, err)
		}
	}
	return s, nil
}

// Root returns the filestore's root directory.
func (s *Store) Root() string { return s.root }

func prefixOf(encoded string, n int) string {
	if len(encoded) < n {
		return encoded
	}
	return encoded[:n]
}

func legacyPrefixOf(encoded string) string {
	if len(encoded) < legacyPrefixLen {
		return encoded
	}
	return encoded[len(encoded)-legacyPrefixLen:]
}

// PrimaryPath returns the canonical on-disk path for the primary object
// named by cidBytes: store/<first-11-chars>/<encoded>.
func (s *Store) PrimaryPath(cidBytes []byte) (string, error) {
	if len(cidBytes) == 0 {
		return "", ErrBadInput
	}
	encoded, err := cidutil.Encode(cidBytes)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, storeDirName, prefixOf(encoded, canonicalPrefixLen), encoded), nil
}

// ResolvePrimaryPath returns a path at which the primary object named by
// cidBytes can be read: the canonical first-11-char location if present,
// falling back to the legacy last-6-char location used by older hooya
// stores. It does not itself guarantee the file exists.
func (s *Store) ResolvePrimaryPath(cidBytes []byte) (string, error) {
	canonical, err := s.PrimaryPath(cidBytes)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(canonical); err == nil {
		return canonical, nil
	}
	encoded, err := cidutil.Encode(cidBytes)
	if err != nil {
		return "", err
	}
	legacy := filepath.Join(s.root, storeDirName, legacyPrefixOf(encoded), encoded)
	if _, err := os.Stat(legacy); err == nil {
		return legacy, nil
	}
	return canonical, nil
}

// ThumbnailPath returns the on-disk path for the JPEG thumbnail of
// sourceCid at the given ladder rung (long edge in pixels):
// thumbs/<long_edge>/<first-11-chars>/<encoded>_thumb<long_edge>.
func (s *Store) ThumbnailPath(sourceCid []byte, longEdge int) (string, error) {
	if len(sourceCid) == 0 {
		return "", ErrBadInput
	}
	encoded, err := cidutil.Encode(sourceCid)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(s.root, thumbsDirName, fmt.Sprint(longEdge), prefixOf(encoded, canonicalPrefixLen))
	return filepath.Join(dir, fmt.Sprintf("%s_thumb%d", encoded, longEdge)), nil
}

// NewTempFile creates a new, empty file under tmp/ with a random
// 16-character alphanumeric name, for the caller to write into before
// committing it with Commit.
func (s *Store) NewTempFile() (*os.File, error) {
	name, err := randomName(randNameLen)
	if err != nil {
		return nil, err
	}
	return os.Create(filepath.Join(s.root, tmpDirName, name))
}

// Commit atomically moves a file written under tmp/ (tmpPath, typically
// obtained from NewTempFile) into its final destination, creating any
// missing parent directories first.
func Commit(tmpPath, finalPath string) error {
	if err := os.MkdirAll(filepath.Dir(finalPath), 0o700); err != nil {
		return err
	}
	return os.Rename(tmpPath, finalPath)
}

// Forget moves the primary object named by cidBytes out of store/ and
// into forgotten/. A missing primary is not an error: forgetting is
// idempotent.
func (s *Store) Forget(cidBytes []byte) error {
	path, err := s.ResolvePrimaryPath(cidBytes)
	if err != nil {
		return err
	}
	encoded, err := cidutil.Encode(cidBytes)
	if err != nil {
		return err
	}
	dest := filepath.Join(s.root, forgottenDirName, encoded)
	err = os.Rename(path, dest)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

const randNameAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomName(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = randNameAlphabet[int(b)%len(randNameAlphabet)]
	}
	return string(out), nil
}

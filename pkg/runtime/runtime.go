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

// Package runtime is the only module that combines filesystem and index
// effects. It orchestrates ingestion, tagging, derivative generation, and
// querying over a Store and an Index.
package runtime

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hooya-network/hooya/pkg/chunked"
	"github.com/hooya-network/hooya/pkg/cidutil"
	"github.com/hooya-network/hooya/pkg/filestore"
	"github.com/hooya-network/hooya/pkg/imagepipe"
	"github.com/hooya-network/hooya/pkg/index"
	"github.com/hooya-network/hooya/pkg/magic"
)

// Errors surfaced to RPC and HTTP callers. The RPC layer maps these to
// status codes; the HTTP proxy maps them to HTTP status codes.
var (
	ErrBadInput   = errors.New("hooya: bad input")
	ErrEmptyInput = errors.New("hooya: empty file")
	ErrNotFound   = errors.New("hooya: not found")
	ErrNotIndexed = errors.New("hooya: cid is not indexed")
)

// Runtime is the process-wide handle combining a filestore and an index.
// It is constructed once at startup and torn down at shutdown; no other
// package holds module-level mutable state.
type Runtime struct {
	Store *filestore.Store
	Index *index.Index
}

// New constructs a Runtime over an already-open Store and Index.
func New(store *filestore.Store, idx *index.Index) *Runtime {
	return &Runtime{Store: store, Index: idx}
}

// Ingest consumes a chunked byte stream, commits it to the filestore under
// its content-derived path, indexes a File row, and (for supported raster
// images) runs the derivative subflow. It returns the resulting CID.
//
// next is called repeatedly to pull chunks; it returns io.EOF once the
// stream is exhausted. Callers driving an RPC client-stream or a local
// chunked.Reader both satisfy this shape.
func (rt *Runtime) Ingest(next func() ([]byte, error)) ([]byte, error) {
	tmp, err := rt.Store.NewTempFile()
	if err != nil {
		return nil, fmt.Errorf("hooya: %w", err)
	}
	tmpPath := tmp.Name()
	removeTmp := true
	defer func() {
		if removeTmp {
			os.Remove(tmpPath)
		}
	}()

	digest := cidutil.NewDigest()
	var size int64
	for {
		chunk, err := next()
		if err == io.EOF {
			break
		}
		if err != nil {
			tmp.Close()
			return nil, fmt.Errorf("hooya: reading upload: %w", err)
		}
		if _, err := tmp.Write(chunk); err != nil {
			tmp.Close()
			return nil, fmt.Errorf("hooya: writing temp file: %w", err)
		}
		digest.Write(chunk)
		size += int64(len(chunk))
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("hooya: closing temp file: %w", err)
	}
	if size == 0 {
		return nil, ErrEmptyInput
	}

	cidBytes, err := cidutil.Wrap(digest.Sum(nil))
	if err != nil {
		return nil, fmt.Errorf("hooya: %w", err)
	}

	finalPath, err := rt.Store.PrimaryPath(cidBytes)
	if err != nil {
		return nil, fmt.Errorf("hooya: %w", err)
	}
	if err := filestore.Commit(tmpPath, finalPath); err != nil {
		return nil, fmt.Errorf("hooya: committing upload: %w", err)
	}
	removeTmp = false

	mimetype := sniffMimetype(finalPath)

	encoded, err := cidutil.Encode(cidBytes)
	if err != nil {
		return nil, fmt.Errorf("hooya: %w", err)
	}
	if err := rt.Index.NewFile(index.File{
		Cid:       encoded,
		Size:      size,
		Mimetype:  mimetype,
		IndexedAt: time.Now(),
	}); err != nil {
		// The blob is already committed and discoverable by path; a
		// re-ingest of the same bytes self-heals the missing row via
		// INSERT OR IGNORE.
		log.Printf("hooya: indexing %s: %v", encoded, err)
		return nil, fmt.Errorf("hooya: %w", err)
	}

	if magic.IsSupportedImage(mimetype) {
		if err := rt.importImage(encoded, finalPath); err != nil {
			log.Printf("hooya: image derivative subflow for %s: %v", encoded, err)
		}
	}

	return cidBytes, nil
}

func sniffMimetype(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()
	return magic.MIMETypeFromReaderAt(f)
}

// importImage decodes the committed primary, records its Image row, and
// generates every applicable ladder rung. A failure producing one rung is
// logged and skipped; it never invalidates the primary File row or other
// rungs.
func (rt *Runtime) importImage(cidText, primaryPath string) error {
	decoded, err := imagepipe.Decode(primaryPath)
	if err != nil {
		return fmt.Errorf("decoding image: %w", err)
	}
	b := decoded.Image.Bounds()
	width, height := b.Dx(), b.Dy()
	ratio := float64(width) / float64(height)

	if err := rt.Index.NewImage(index.Image{
		Cid:    cidText,
		Height: height,
		Width:  width,
		Ratio:  ratio,
	}); err != nil {
		return fmt.Errorf("indexing image: %w", err)
	}

	srcLong := width
	if height > srcLong {
		srcLong = height
	}

	sourceCidBytes, err := cidutil.DecodeBytes(cidText)
	if err != nil {
		return fmt.Errorf("decoding source cid: %w", err)
	}

	for _, rung := range imagepipe.RequiredRungs(srcLong) {
		if err := rt.generateThumbnail(decoded, sourceCidBytes, cidText, rung); err != nil {
			log.Printf("hooya: thumbnail rung %d for %s: %v", rung, cidText, err)
		}
	}
	return nil
}

func (rt *Runtime) generateThumbnail(decoded *imagepipe.Decoded, sourceCidBytes []byte, sourceCidText string, rung int) error {
	thumbPath, err := rt.Store.ThumbnailPath(sourceCidBytes, rung)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(thumbPath), 0o700); err != nil {
		return err
	}

	width, height, err := imagepipe.Thumbnail(decoded.Image, thumbPath, rung)
	if err != nil {
		return err
	}

	fi, err := os.Stat(thumbPath)
	if err != nil {
		return err
	}
	thumbCidText, err := hashFileToCid(thumbPath)
	if err != nil {
		return err
	}

	return rt.Index.NewThumbnail(index.Thumbnail{
		Cid:        thumbCidText,
		SourceCid:  sourceCidText,
		Size:       fi.Size(),
		Mimetype:   "image/jpeg",
		Height:     height,
		Width:      width,
		Ratio:      float64(width) / float64(height),
		IsAnimated: false,
	})
}

func hashFileToCid(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	digest := cidutil.NewDigest()
	if err := chunked.Each(f, func(chunk []byte) bool {
		digest.Write(chunk)
		return true
	}); err != nil {
		return "", err
	}
	cidBytes, err := cidutil.Wrap(digest.Sum(nil))
	if err != nil {
		return "", err
	}
	return cidutil.Encode(cidBytes)
}

// TagCid attaches tags to cidText. It fails with ErrNotIndexed if cidText
// has not been committed. Tag resolution is two-phase: the common case of
// an already-known vocabulary resolves in one lookup; only a miss pays for
// an upsert and a second lookup.
func (rt *Runtime) TagCid(cidText string, tags []index.Tag) error {
	if _, err := rt.Index.FileRow(cidText); err != nil {
		if errors.Is(err, index.ErrNotFound) {
			return ErrNotIndexed
		}
		return fmt.Errorf("hooya: %w", err)
	}

	resolved, err := rt.Index.LookupTagID(tags)
	if err != nil {
		return fmt.Errorf("hooya: %w", err)
	}
	if len(resolved) != len(tags) {
		if err := rt.Index.NewTagVocab(tags); err != nil {
			return fmt.Errorf("hooya: %w", err)
		}
		resolved, err = rt.Index.LookupTagID(tags)
		if err != nil {
			return fmt.Errorf("hooya: %w", err)
		}
	}

	now := time.Now()
	rows := make([]index.TagMapRow, len(resolved))
	for i, t := range resolved {
		rows[i] = index.TagMapRow{FileCid: cidText, TagID: t.ID, Added: now, Reason: 0}
	}
	if err := rt.Index.NewTagMap(rows); err != nil {
		return fmt.Errorf("hooya: %w", err)
	}
	return nil
}

// IndexedFile fetches cidText's File row, mapping an absent row to
// ErrNotFound.
func (rt *Runtime) IndexedFile(cidText string) (index.File, error) {
	f, err := rt.Index.FileRow(cidText)
	if errors.Is(err, index.ErrNotFound) {
		return index.File{}, ErrNotFound
	}
	return f, err
}

// Tags returns every tag attached to cidText.
func (rt *Runtime) Tags(cidText string) ([]index.Tag, error) {
	return rt.Index.FileTags(cidText)
}

// ContentAtCid opens the primary object named by cidText for chunked
// reading. The caller is responsible for closing the returned file once
// done driving its chunk sequence.
func (rt *Runtime) ContentAtCid(cidText string) (*os.File, error) {
	cidBytes, err := cidutil.DecodeBytes(cidText)
	if err != nil {
		return nil, ErrBadInput
	}
	path, err := rt.Store.ResolvePrimaryPath(cidBytes)
	if err != nil {
		return nil, fmt.Errorf("hooya: %w", err)
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return f, err
}

// CidThumbnail opens the thumbnail of sourceCidText at the given ladder
// rung for chunked reading. It returns ErrNotFound if no such rung exists.
func (rt *Runtime) CidThumbnail(sourceCidText string, longEdge int) (*os.File, error) {
	cidBytes, err := cidutil.DecodeBytes(sourceCidText)
	if err != nil {
		return nil, ErrBadInput
	}
	path, err := rt.Store.ThumbnailPath(cidBytes, longEdge)
	if err != nil {
		return nil, fmt.Errorf("hooya: %w", err)
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return f, err
}

// LocalFilePage returns a page of Files and the token for the next page.
// pageToken is a decimal offset; a non-numeric token is ErrBadInput.
func (rt *Runtime) LocalFilePage(pageSize int, pageToken string, oldestFirst bool) ([]index.File, string, error) {
	offset, err := index.ParsePageToken(pageToken)
	if err != nil {
		return nil, "", ErrBadInput
	}
	files, err := rt.Index.FilePage(pageSize, offset, oldestFirst)
	if err != nil {
		return nil, "", fmt.Errorf("hooya: %w", err)
	}
	next := fmt.Sprint(offset + pageSize)
	return files, next, nil
}

// RandomLocalFile delegates to the Index's random sampling.
func (rt *Runtime) RandomLocalFile(count int) ([]index.File, error) {
	return rt.Index.RandomFile(count)
}

// ForgetFile moves a primary blob to the filestore's forgotten/ directory
// and cascades the delete through the index. It is an idempotent terminal
// transition: forgetting an already-forgotten or unknown CID is not an
// error.
func (rt *Runtime) ForgetFile(cidText string) error {
	cidBytes, err := cidutil.DecodeBytes(cidText)
	if err != nil {
		return ErrBadInput
	}
	if err := rt.Store.Forget(cidBytes); err != nil {
		return fmt.Errorf("hooya: %w", err)
	}
	return rt.Index.DeleteFile(cidText)
}

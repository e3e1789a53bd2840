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

// Package magic sniffs a mimetype from a file's leading bytes. It is used
// at ingest time to infer File.mimetype from magic numbers, falling back
// to the standard library's content sniffer.
package magic

import (
	"bytes"
	"io"
	"net/http"
	"strings"
)

type prefixEntry struct {
	offset int
	prefix []byte
	mtype  string
}

// Adapted from the well-known file(1) magic-number tables; only the
// entries relevant to a personal media vault (images, a few video/audio
// containers) are kept here. See http://www.garykessler.net/library/file_sigs.html.
var prefixTable = []prefixEntry{
	{0, []byte("GIF87a"), "image/gif"},
	{0, []byte("GIF89a"), "image/gif"},
	{0, []byte("\xff\xd8\xff\xe2"), "image/jpeg"},
	{0, []byte("\xff\xd8\xff\xe1"), "image/jpeg"},
	{0, []byte("\xff\xd8\xff\xe0"), "image/jpeg"},
	{0, []byte("\xff\xd8\xff\xdb"), "image/jpeg"},
	{0, []byte("\x49\x49\x2a\x00\x10\x00\x00\x00\x43\x52\x02"), "image/cr2"},
	{0, []byte{137, 'P', 'N', 'G', '\r', '\n', 26, 10}, "image/png"},
	{0, []byte{0x49, 0x49, 0x2A, 0}, "image/tiff"},
	{0, []byte{0x4D, 0x4D, 0, 0x2A}, "image/tiff"},
	{0, []byte("8BPS"), "image/vnd.adobe.photoshop"},
	{0, []byte{0x1A, 0x45, 0xDF, 0xA3}, "video/webm"},
	{4, []byte("ftyp"), "video/mp4"},
	{8, []byte("mp41"), "video/mp4"},
	{8, []byte("mp42"), "video/mp4"},
	{8, []byte("isom"), "video/mp4"},
	{4, []byte("moov"), "video/quicktime"},
	{4, []byte("mdat"), "video/quicktime"},
	{0, []byte("fLaC\x00\x00\x00"), "audio/x-flac"},
	{0, []byte{'I', 'D', '3'}, "audio/mpeg"},
	{0, []byte("OggS"), "application/ogg"},
}

// MIMEType returns the mimetype of data based on its leading bytes
// ("magic numbers"), or the empty string if it cannot be determined.
func MIMEType(hdr []byte) string {
	hlen := len(hdr)
	for _, pte := range prefixTable {
		plen := pte.offset + len(pte.prefix)
		if hlen >= plen && bytes.Equal(hdr[pte.offset:plen], pte.prefix) {
			return pte.mtype
		}
	}
	t := http.DetectContentType(hdr)
	t = strings.Replace(t, "; charset=utf-8", "", 1)
	if t != "application/octet-stream" && t != "text/plain" {
		return t
	}
	return ""
}

// MIMETypeFromReaderAt sniffs the mimetype of ra by reading its first 1024
// bytes, returning the empty string if it cannot be determined.
func MIMETypeFromReaderAt(ra io.ReaderAt) string {
	var buf [1024]byte
	n, err := ra.ReadAt(buf[:], 0)
	if err != nil && n == 0 {
		return ""
	}
	return MIMEType(buf[:n])
}

// imageMimetypes are the raster formats the image pipeline can decode and
// thumbnail; all others are indexed as plain Files with no Image row.
var imageMimetypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/cr2":  true,
}

// IsSupportedImage reports whether mimetype is a raster image format the
// image pipeline knows how to decode.
func IsSupportedImage(mimetype string) bool {
	return imageMimetypes[mimetype]
}

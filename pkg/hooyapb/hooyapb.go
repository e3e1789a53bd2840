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

// Package hooyapb holds the wire message types for the Control gRPC
// service. There is no protoc-generated code here: the messages are
// plain Go structs, carried over grpc-go's transport using the JSON
// codec registered by pkg/rpc under the "proto" content-subtype name.
// The shapes below mirror what protoc-gen-go would have produced from a
// .proto matching spec.md's operation table.
package hooyapb

// VersionRequest is the empty request for Version.
type VersionRequest struct{}

// VersionReply carries the daemon's fixed, compile-time version.
type VersionReply struct {
	Major int32
	Minor int32
	Patch int32
	Pre   string
}

// FileChunk is one bounded buffer of a streamed file, used for both the
// StreamToFilestore client stream and the ContentAtCid/CidThumbnail
// server streams.
type FileChunk struct {
	Data []byte
}

// StreamToFilestoreReply carries the CID assigned to a completed upload.
type StreamToFilestoreReply struct {
	Cid []byte
}

// TagDescriptor names one (namespace, descriptor) tag pair.
type TagDescriptor struct {
	Namespace  string
	Descriptor string
}

// TagCidRequest attaches Tags to Cid.
type TagCidRequest struct {
	Cid  string
	Tags []TagDescriptor
}

// TagsRequest asks for every tag attached to Cid.
type TagsRequest struct {
	Cid string
}

// TagsReply lists the resolved tags for a TagsRequest.
type TagsReply struct {
	Tags []TagDescriptor
}

// CidRequest names a single CID, used by ContentAtCid and CidInfo.
type CidRequest struct {
	Cid string
}

// CidThumbnailRequest names a source CID and a requested ladder rung.
type CidThumbnailRequest struct {
	SourceCid string
	LongEdge  int32
}

// FileInfo mirrors an index.File row on the wire.
type FileInfo struct {
	Cid       string
	Size      int64
	Mimetype  string
	IndexedAt int64 // unix seconds
}

// LocalFilePageRequest requests one page of locally indexed files.
type LocalFilePageRequest struct {
	PageSize    int32
	PageToken   string
	OldestFirst bool
}

// LocalFilePageReply is one page of Files plus the token for the next.
type LocalFilePageReply struct {
	File          []FileInfo
	NextPageToken string
}

// RandomLocalFileRequest asks for a random sample of indexed files.
type RandomLocalFileRequest struct {
	Count int32
}

// RandomLocalFileReply carries the sampled files.
type RandomLocalFileReply struct {
	File []FileInfo
}

// CidInfoReply carries a single File's metadata.
type CidInfoReply struct {
	File FileInfo
}

// ForgetFileRequest names the CID to forget.
type ForgetFileRequest struct {
	Cid string
}

// Empty is the shared empty message for operations with no payload.
type Empty struct{}

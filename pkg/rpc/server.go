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

package rpc

import (
	"context"
	"errors"
	"io"
	"log"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hooya-network/hooya/pkg/chunked"
	"github.com/hooya-network/hooya/pkg/hooyapb"
	"github.com/hooya-network/hooya/pkg/index"
	"github.com/hooya-network/hooya/pkg/runtime"
)

// Version is the daemon's fixed, compile-time version.
var Version = hooyapb.VersionReply{Major: 0, Minor: 1, Patch: 0, Pre: ""}

// ControlServer is the server-side interface of the Control service, the
// shape a protoc-gen-go-grpc-generated interface would have.
type ControlServer interface {
	Version(context.Context, *hooyapb.VersionRequest) (*hooyapb.VersionReply, error)
	StreamToFilestore(hooyapb.Control_StreamToFilestoreServer) error
	TagCid(context.Context, *hooyapb.TagCidRequest) (*hooyapb.Empty, error)
	Tags(context.Context, *hooyapb.TagsRequest) (*hooyapb.TagsReply, error)
	ContentAtCid(*hooyapb.CidRequest, hooyapb.Control_ContentAtCidServer) error
	CidThumbnail(*hooyapb.CidThumbnailRequest, hooyapb.Control_CidThumbnailServer) error
	LocalFilePage(context.Context, *hooyapb.LocalFilePageRequest) (*hooyapb.LocalFilePageReply, error)
	RandomLocalFile(context.Context, *hooyapb.RandomLocalFileRequest) (*hooyapb.RandomLocalFileReply, error)
	CidInfo(context.Context, *hooyapb.CidRequest) (*hooyapb.CidInfoReply, error)
	ForgetFile(context.Context, *hooyapb.ForgetFileRequest) (*hooyapb.Empty, error)
}

// server implements ControlServer over a *runtime.Runtime.
type server struct {
	rt *runtime.Runtime
}

// NewServer adapts rt into a ControlServer for registration with
// RegisterControlServer.
func NewServer(rt *runtime.Runtime) ControlServer {
	return &server{rt: rt}
}

func (s *server) Version(context.Context, *hooyapb.VersionRequest) (*hooyapb.VersionReply, error) {
	v := Version
	return &v, nil
}

func (s *server) StreamToFilestore(stream hooyapb.Control_StreamToFilestoreServer) error {
	next := func() ([]byte, error) {
		chunk, err := stream.Recv()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}
		return chunk.Data, nil
	}

	cidBytes, err := s.rt.Ingest(next)
	if err != nil {
		return toStatusError(err)
	}
	return stream.SendAndClose(&hooyapb.StreamToFilestoreReply{Cid: cidBytes})
}

func (s *server) TagCid(ctx context.Context, req *hooyapb.TagCidRequest) (*hooyapb.Empty, error) {
	tags := make([]index.Tag, len(req.Tags))
	for i, t := range req.Tags {
		tags[i] = index.Tag{Namespace: t.Namespace, Descriptor: t.Descriptor}
	}
	if err := s.rt.TagCid(req.Cid, tags); err != nil {
		return nil, toStatusError(err)
	}
	return &hooyapb.Empty{}, nil
}

func (s *server) Tags(ctx context.Context, req *hooyapb.TagsRequest) (*hooyapb.TagsReply, error) {
	tags, err := s.rt.Tags(req.Cid)
	if err != nil {
		return nil, toStatusError(err)
	}
	reply := &hooyapb.TagsReply{Tags: make([]hooyapb.TagDescriptor, len(tags))}
	for i, t := range tags {
		reply.Tags[i] = hooyapb.TagDescriptor{Namespace: t.Namespace, Descriptor: t.Descriptor}
	}
	return reply, nil
}

func (s *server) ContentAtCid(req *hooyapb.CidRequest, stream hooyapb.Control_ContentAtCidServer) error {
	f, err := s.rt.ContentAtCid(req.Cid)
	if err != nil {
		return toStatusError(err)
	}
	defer f.Close()
	return streamFile(f, func(data []byte) error {
		return stream.Send(&hooyapb.FileChunk{Data: data})
	})
}

func (s *server) CidThumbnail(req *hooyapb.CidThumbnailRequest, stream hooyapb.Control_CidThumbnailServer) error {
	f, err := s.rt.CidThumbnail(req.SourceCid, int(req.LongEdge))
	if err != nil {
		return toStatusError(err)
	}
	defer f.Close()
	return streamFile(f, func(data []byte) error {
		return stream.Send(&hooyapb.FileChunk{Data: data})
	})
}

func (s *server) LocalFilePage(ctx context.Context, req *hooyapb.LocalFilePageRequest) (*hooyapb.LocalFilePageReply, error) {
	files, next, err := s.rt.LocalFilePage(int(req.PageSize), req.PageToken, req.OldestFirst)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &hooyapb.LocalFilePageReply{File: toFileInfos(files), NextPageToken: next}, nil
}

func (s *server) RandomLocalFile(ctx context.Context, req *hooyapb.RandomLocalFileRequest) (*hooyapb.RandomLocalFileReply, error) {
	files, err := s.rt.RandomLocalFile(int(req.Count))
	if err != nil {
		return nil, toStatusError(err)
	}
	return &hooyapb.RandomLocalFileReply{File: toFileInfos(files)}, nil
}

func (s *server) CidInfo(ctx context.Context, req *hooyapb.CidRequest) (*hooyapb.CidInfoReply, error) {
	f, err := s.rt.IndexedFile(req.Cid)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &hooyapb.CidInfoReply{File: toFileInfo(f)}, nil
}

func (s *server) ForgetFile(ctx context.Context, req *hooyapb.ForgetFileRequest) (*hooyapb.Empty, error) {
	if err := s.rt.ForgetFile(req.Cid); err != nil {
		return nil, toStatusError(err)
	}
	return &hooyapb.Empty{}, nil
}

func toFileInfo(f index.File) hooyapb.FileInfo {
	return hooyapb.FileInfo{Cid: f.Cid, Size: f.Size, Mimetype: f.Mimetype, IndexedAt: f.IndexedAt.Unix()}
}

func toFileInfos(files []index.File) []hooyapb.FileInfo {
	out := make([]hooyapb.FileInfo, len(files))
	for i, f := range files {
		out[i] = toFileInfo(f)
	}
	return out
}

// streamFile drives a chunked read of f, sending each chunk via send.
func streamFile(f io.Reader, send func([]byte) error) error {
	var sendErr error
	readErr := chunked.Each(f, func(b []byte) bool {
		sendErr = send(b)
		return sendErr == nil
	})
	if sendErr != nil {
		return sendErr
	}
	if readErr != nil {
		return status.Errorf(codes.Internal, "%v", readErr)
	}
	return nil
}

// toStatusError maps a Runtime error to the transport's native status
// codes, per spec.md §7's propagation rule.
func toStatusError(err error) error {
	switch {
	case errors.Is(err, runtime.ErrBadInput):
		return status.Errorf(codes.InvalidArgument, "%v", err)
	case errors.Is(err, runtime.ErrEmptyInput):
		return status.Errorf(codes.InvalidArgument, "Empty file")
	case errors.Is(err, runtime.ErrNotFound):
		return status.Errorf(codes.NotFound, "%v", err)
	case errors.Is(err, runtime.ErrNotIndexed):
		return status.Errorf(codes.Internal, "CID is not indexed: %v", err)
	default:
		log.Printf("hooya rpc: internal error: %v", err)
		return status.Errorf(codes.Internal, "%v", err)
	}
}

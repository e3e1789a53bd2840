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

package hooyapb

import "google.golang.org/grpc"

// Control_StreamToFilestoreServer is the server side of the
// StreamToFilestore client-streaming RPC: the server reads FileChunks
// until the client closes the stream, then sends one reply.
type Control_StreamToFilestoreServer interface {
	Recv() (*FileChunk, error)
	SendAndClose(*StreamToFilestoreReply) error
	grpc.ServerStream
}

type controlStreamToFilestoreServer struct {
	grpc.ServerStream
}

func (s *controlStreamToFilestoreServer) Recv() (*FileChunk, error) {
	m := new(FileChunk)
	if err := s.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *controlStreamToFilestoreServer) SendAndClose(m *StreamToFilestoreReply) error {
	return s.ServerStream.SendMsg(m)
}

// Control_StreamToFilestoreClient is the client side of
// StreamToFilestore.
type Control_StreamToFilestoreClient interface {
	Send(*FileChunk) error
	CloseAndRecv() (*StreamToFilestoreReply, error)
	grpc.ClientStream
}

type controlStreamToFilestoreClient struct {
	grpc.ClientStream
}

func (c *controlStreamToFilestoreClient) Send(m *FileChunk) error {
	return c.ClientStream.SendMsg(m)
}

func (c *controlStreamToFilestoreClient) CloseAndRecv() (*StreamToFilestoreReply, error) {
	if err := c.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	m := new(StreamToFilestoreReply)
	if err := c.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// NewStreamToFilestoreServer wraps a raw grpc.ServerStream with the typed
// StreamToFilestore server interface. Used by pkg/rpc's ServiceDesc.
func NewStreamToFilestoreServer(s grpc.ServerStream) Control_StreamToFilestoreServer {
	return &controlStreamToFilestoreServer{s}
}

// NewStreamToFilestoreClient wraps a raw grpc.ClientStream with the typed
// StreamToFilestore client interface. Used by pkg/rpc's client.
func NewStreamToFilestoreClient(s grpc.ClientStream) Control_StreamToFilestoreClient {
	return &controlStreamToFilestoreClient{s}
}

// Control_ContentAtCidServer is the server side of the ContentAtCid
// server-streaming RPC.
type Control_ContentAtCidServer interface {
	Send(*FileChunk) error
	grpc.ServerStream
}

type controlContentAtCidServer struct {
	grpc.ServerStream
}

func (s *controlContentAtCidServer) Send(m *FileChunk) error {
	return s.ServerStream.SendMsg(m)
}

// NewContentAtCidServer wraps a raw grpc.ServerStream with the typed
// ContentAtCid server interface.
func NewContentAtCidServer(s grpc.ServerStream) Control_ContentAtCidServer {
	return &controlContentAtCidServer{s}
}

// Control_ContentAtCidClient is the client side of ContentAtCid.
type Control_ContentAtCidClient interface {
	Recv() (*FileChunk, error)
	grpc.ClientStream
}

type controlContentAtCidClient struct {
	grpc.ClientStream
}

func (c *controlContentAtCidClient) Recv() (*FileChunk, error) {
	m := new(FileChunk)
	if err := c.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// NewContentAtCidClient wraps a raw grpc.ClientStream with the typed
// ContentAtCid client interface.
func NewContentAtCidClient(s grpc.ClientStream) Control_ContentAtCidClient {
	return &controlContentAtCidClient{s}
}

// Control_CidThumbnailServer is the server side of the CidThumbnail
// server-streaming RPC.
type Control_CidThumbnailServer interface {
	Send(*FileChunk) error
	grpc.ServerStream
}

type controlCidThumbnailServer struct {
	grpc.ServerStream
}

func (s *controlCidThumbnailServer) Send(m *FileChunk) error {
	return s.ServerStream.SendMsg(m)
}

// NewCidThumbnailServer wraps a raw grpc.ServerStream with the typed
// CidThumbnail server interface.
func NewCidThumbnailServer(s grpc.ServerStream) Control_CidThumbnailServer {
	return &controlCidThumbnailServer{s}
}

// Control_CidThumbnailClient is the client side of CidThumbnail.
type Control_CidThumbnailClient interface {
	Recv() (*FileChunk, error)
	grpc.ClientStream
}

type controlCidThumbnailClient struct {
	grpc.ClientStream
}

func (c *controlCidThumbnailClient) Recv() (*FileChunk, error) {
	m := new(FileChunk)
	if err := c.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// NewCidThumbnailClient wraps a raw grpc.ClientStream with the typed
// CidThumbnail client interface.
func NewCidThumbnailClient(s grpc.ClientStream) Control_CidThumbnailClient {
	return &controlCidThumbnailClient{s}
}

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

	"google.golang.org/grpc"

	"github.com/hooya-network/hooya/pkg/hooyapb"
)

// ControlClient is the client-side interface of the Control service, used
// by cmd/hooya and pkg/webproxy.
type ControlClient interface {
	Version(ctx context.Context, in *hooyapb.VersionRequest) (*hooyapb.VersionReply, error)
	StreamToFilestore(ctx context.Context) (hooyapb.Control_StreamToFilestoreClient, error)
	TagCid(ctx context.Context, in *hooyapb.TagCidRequest) (*hooyapb.Empty, error)
	Tags(ctx context.Context, in *hooyapb.TagsRequest) (*hooyapb.TagsReply, error)
	ContentAtCid(ctx context.Context, in *hooyapb.CidRequest) (hooyapb.Control_ContentAtCidClient, error)
	CidThumbnail(ctx context.Context, in *hooyapb.CidThumbnailRequest) (hooyapb.Control_CidThumbnailClient, error)
	LocalFilePage(ctx context.Context, in *hooyapb.LocalFilePageRequest) (*hooyapb.LocalFilePageReply, error)
	RandomLocalFile(ctx context.Context, in *hooyapb.RandomLocalFileRequest) (*hooyapb.RandomLocalFileReply, error)
	CidInfo(ctx context.Context, in *hooyapb.CidRequest) (*hooyapb.CidInfoReply, error)
	ForgetFile(ctx context.Context, in *hooyapb.ForgetFileRequest) (*hooyapb.Empty, error)
}

type controlClient struct {
	cc *grpc.ClientConn
}

// NewClient returns a ControlClient that issues RPCs over cc.
func NewClient(cc *grpc.ClientConn) ControlClient {
	return &controlClient{cc: cc}
}

func (c *controlClient) Version(ctx context.Context, in *hooyapb.VersionRequest) (*hooyapb.VersionReply, error) {
	out := new(hooyapb.VersionReply)
	if err := c.cc.Invoke(ctx, fullMethod("Version"), in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controlClient) StreamToFilestore(ctx context.Context) (hooyapb.Control_StreamToFilestoreClient, error) {
	stream, err := c.cc.NewStream(ctx, &controlServiceDesc.Streams[0], fullMethod("StreamToFilestore"))
	if err != nil {
		return nil, err
	}
	return hooyapb.NewStreamToFilestoreClient(stream), nil
}

func (c *controlClient) TagCid(ctx context.Context, in *hooyapb.TagCidRequest) (*hooyapb.Empty, error) {
	out := new(hooyapb.Empty)
	if err := c.cc.Invoke(ctx, fullMethod("TagCid"), in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controlClient) Tags(ctx context.Context, in *hooyapb.TagsRequest) (*hooyapb.TagsReply, error) {
	out := new(hooyapb.TagsReply)
	if err := c.cc.Invoke(ctx, fullMethod("Tags"), in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controlClient) ContentAtCid(ctx context.Context, in *hooyapb.CidRequest) (hooyapb.Control_ContentAtCidClient, error) {
	stream, err := c.cc.NewStream(ctx, &controlServiceDesc.Streams[1], fullMethod("ContentAtCid"))
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return hooyapb.NewContentAtCidClient(stream), nil
}

func (c *controlClient) CidThumbnail(ctx context.Context, in *hooyapb.CidThumbnailRequest) (hooyapb.Control_CidThumbnailClient, error) {
	stream, err := c.cc.NewStream(ctx, &controlServiceDesc.Streams[2], fullMethod("CidThumbnail"))
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return hooyapb.NewCidThumbnailClient(stream), nil
}

func (c *controlClient) LocalFilePage(ctx context.Context, in *hooyapb.LocalFilePageRequest) (*hooyapb.LocalFilePageReply, error) {
	out := new(hooyapb.LocalFilePageReply)
	if err := c.cc.Invoke(ctx, fullMethod("LocalFilePage"), in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controlClient) RandomLocalFile(ctx context.Context, in *hooyapb.RandomLocalFileRequest) (*hooyapb.RandomLocalFileReply, error) {
	out := new(hooyapb.RandomLocalFileReply)
	if err := c.cc.Invoke(ctx, fullMethod("RandomLocalFile"), in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controlClient) CidInfo(ctx context.Context, in *hooyapb.CidRequest) (*hooyapb.CidInfoReply, error) {
	out := new(hooyapb.CidInfoReply)
	if err := c.cc.Invoke(ctx, fullMethod("CidInfo"), in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controlClient) ForgetFile(ctx context.Context, in *hooyapb.ForgetFileRequest) (*hooyapb.Empty, error) {
	out := new(hooyapb.Empty)
	if err := c.cc.Invoke(ctx, fullMethod("ForgetFile"), in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

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

// ServiceName is the fully-qualified Control service name used in method
// paths, matching what a "service Control" .proto would generate.
const ServiceName = "hooya.Control"

// RegisterControlServer registers srv with s under the Control service
// descriptor, the hand-written equivalent of a generated
// RegisterControlServer call.
func RegisterControlServer(s grpc.ServiceRegistrar, srv ControlServer) {
	s.RegisterService(&controlServiceDesc, srv)
}

func _Control_Version_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(hooyapb.VersionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControlServer).Version(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ServiceName + "/Version"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ControlServer).Version(ctx, req.(*hooyapb.VersionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Control_TagCid_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(hooyapb.TagCidRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControlServer).TagCid(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ServiceName + "/TagCid"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ControlServer).TagCid(ctx, req.(*hooyapb.TagCidRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Control_Tags_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(hooyapb.TagsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControlServer).Tags(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ServiceName + "/Tags"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ControlServer).Tags(ctx, req.(*hooyapb.TagsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Control_LocalFilePage_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(hooyapb.LocalFilePageRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControlServer).LocalFilePage(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ServiceName + "/LocalFilePage"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ControlServer).LocalFilePage(ctx, req.(*hooyapb.LocalFilePageRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Control_RandomLocalFile_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(hooyapb.RandomLocalFileRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControlServer).RandomLocalFile(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ServiceName + "/RandomLocalFile"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ControlServer).RandomLocalFile(ctx, req.(*hooyapb.RandomLocalFileRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Control_CidInfo_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(hooyapb.CidRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControlServer).CidInfo(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ServiceName + "/CidInfo"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ControlServer).CidInfo(ctx, req.(*hooyapb.CidRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Control_ForgetFile_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(hooyapb.ForgetFileRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControlServer).ForgetFile(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ServiceName + "/ForgetFile"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ControlServer).ForgetFile(ctx, req.(*hooyapb.ForgetFileRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Control_StreamToFilestore_Handler(srv interface{}, stream grpc.ServerStream) error {
	return srv.(ControlServer).StreamToFilestore(hooyapb.NewStreamToFilestoreServer(stream))
}

func _Control_ContentAtCid_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(hooyapb.CidRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ControlServer).ContentAtCid(m, hooyapb.NewContentAtCidServer(stream))
}

func _Control_CidThumbnail_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(hooyapb.CidThumbnailRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ControlServer).CidThumbnail(m, hooyapb.NewCidThumbnailServer(stream))
}

// controlServiceDesc is the hand-written equivalent of the ServiceDesc a
// protoc-gen-go-grpc run would emit for a "service Control" matching
// spec.md §6's operation table.
var controlServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ControlServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Version", Handler: _Control_Version_Handler},
		{MethodName: "TagCid", Handler: _Control_TagCid_Handler},
		{MethodName: "Tags", Handler: _Control_Tags_Handler},
		{MethodName: "LocalFilePage", Handler: _Control_LocalFilePage_Handler},
		{MethodName: "RandomLocalFile", Handler: _Control_RandomLocalFile_Handler},
		{MethodName: "CidInfo", Handler: _Control_CidInfo_Handler},
		{MethodName: "ForgetFile", Handler: _Control_ForgetFile_Handler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "StreamToFilestore",
			Handler:       _Control_StreamToFilestore_Handler,
			ClientStreams: true,
		},
		{
			StreamName:    "ContentAtCid",
			Handler:       _Control_ContentAtCid_Handler,
			ServerStreams: true,
		},
		{
			StreamName:    "CidThumbnail",
			Handler:       _Control_CidThumbnail_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "hooya/control.proto",
}

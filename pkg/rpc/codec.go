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

// Package rpc is the Control gRPC service: the streaming RPC surface
// described in spec.md §4.7/§6, built on grpc-go's transport without a
// protobuf toolchain. Wire messages (pkg/hooyapb) are plain Go structs;
// this file supplies the codec that lets grpc-go marshal them.
package rpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// codecName is registered under grpc-go's default content-subtype so
// that a bare "application/grpc" request, which assumes the "proto"
// codec, finds this one instead of grpc-go's real protobuf codec. Every
// other part of the transport (framing, status codes, streaming,
// interceptors, compression) is untouched.
const codecName = "proto"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec implements encoding.Codec by marshaling hooyapb messages as
// JSON rather than protobuf wire bytes.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("hooya rpc: marshal %T: %w", v, err)
	}
	return b, nil
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("hooya rpc: unmarshal into %T: %w", v, err)
	}
	return nil
}

func (jsonCodec) Name() string { return codecName }

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

// Package webproxy is a read-only HTTP façade over the Control gRPC
// service, for browsers that cannot speak gRPC directly: spec.md §4.8.
package webproxy

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hooya-network/hooya/pkg/hooyapb"
	"github.com/hooya-network/hooya/pkg/imagepipe"
	"github.com/hooya-network/hooya/pkg/rpc"
)

var extensionByMimetype = map[string]string{
	"image/jpeg": "jpeg",
	"image/png":  "png",
	"image/gif":  "gif",
	"video/mp4":  "mp4",
}

const mediumLongEdge = 1280
const smallLongEdge = 640

// Handler serves the three read-only content routes over a ControlClient.
type Handler struct {
	Client rpc.ControlClient
}

// NewHandler constructs a Handler over client.
func NewHandler(client rpc.ControlClient) *Handler {
	return &Handler{Client: client}
}

// RegisterRoutes wires the handler's three endpoints onto mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/cid-content/", h.serveContent)
	mux.HandleFunc("/cid-thumbnail/", h.serveThumbnail)
}

// serveContent handles GET /cid-content/:cid.
func (h *Handler) serveContent(w http.ResponseWriter, r *http.Request) {
	cid := strings.TrimPrefix(r.URL.Path, "/cid-content/")
	if cid == "" {
		httpError(w, codes.InvalidArgument, "missing cid")
		return
	}

	ctx := r.Context()
	info, err := h.Client.CidInfo(ctx, &hooyapb.CidRequest{Cid: cid})
	if err != nil {
		writeRPCError(w, err)
		return
	}

	stream, err := h.Client.ContentAtCid(ctx, &hooyapb.CidRequest{Cid: cid})
	if err != nil {
		writeRPCError(w, err)
		return
	}

	ext := extensionOf(info.File.Mimetype)
	filename := cid
	if ext != "" {
		filename = fmt.Sprintf("%s.%s", cid, ext)
	}
	setCommonHeaders(w, info.File.Mimetype, info.File.Size, filename)
	copyStream(w, stream)
}

// serveThumbnail handles GET /cid-thumbnail/:cid/:long_edge (or the
// "medium"/"small" shortcuts).
func (h *Handler) serveThumbnail(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/cid-thumbnail/")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		httpError(w, codes.InvalidArgument, "bad path")
		return
	}
	cid, rungText := parts[0], parts[1]

	candidates, err := resolveRungCandidates(rungText)
	if err != nil {
		httpError(w, codes.InvalidArgument, err.Error())
		return
	}

	// The thumbnail's own mimetype is always JPEG per spec.md §3; its
	// size isn't known up front from a streaming read, so Content-Length
	// is set only once the full body has been buffered.
	ctx := r.Context()
	var buf strings.Builder
	var n, longEdge int
	var rpcErr error
	for _, candidate := range candidates {
		stream, err := h.Client.CidThumbnail(ctx, &hooyapb.CidThumbnailRequest{SourceCid: cid, LongEdge: int32(candidate)})
		if err != nil {
			rpcErr = err
			break
		}
		buf.Reset()
		n, err = copyStreamToBuffer(&buf, stream)
		if err == nil {
			longEdge, rpcErr = candidate, nil
			break
		}
		rpcErr = err
		if status.Code(err) != codes.NotFound {
			break
		}
	}
	if rpcErr != nil {
		writeRPCError(w, rpcErr)
		return
	}

	filename := fmt.Sprintf("%s_thumb%d.jpeg", cid, longEdge)
	setCommonHeaders(w, "image/jpeg", int64(n), filename)
	io.WriteString(w, buf.String())
}

// resolveRungCandidates maps a path segment to an ordered list of ladder
// long edges to try against CidThumbnail, closest to the target first. A
// literal integer is tried as-is. The "medium"/"small" shortcuts fall
// back through every smaller ladder rung, per spec.md §4.8's "select the
// thumbnail whose long edge is closest to the target": a source image
// smaller than the shortcut's own target has no thumbnail at that rung,
// so the nearest smaller one that was actually generated is served.
func resolveRungCandidates(text string) ([]int, error) {
	switch text {
	case "medium":
		return laddersAtOrBelow(mediumLongEdge), nil
	case "small":
		return laddersAtOrBelow(smallLongEdge), nil
	}
	n, err := strconv.Atoi(text)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("bad long_edge %q", text)
	}
	return []int{n}, nil
}

// laddersAtOrBelow returns imagepipe.Ladder's rungs that are <= target,
// ordered from closest to target down to the smallest.
func laddersAtOrBelow(target int) []int {
	var out []int
	for i := len(imagepipe.Ladder) - 1; i >= 0; i-- {
		if imagepipe.Ladder[i] <= target {
			out = append(out, imagepipe.Ladder[i])
		}
	}
	return out
}

func extensionOf(mimetype string) string {
	return extensionByMimetype[mimetype]
}

func setCommonHeaders(w http.ResponseWriter, mimetype string, size int64, filename string) {
	h := w.Header()
	h.Set("Cache-Control", "max-age=31536000, immutable")
	if size > 0 {
		h.Set("Content-Length", strconv.FormatInt(size, 10))
	}
	if mimetype != "" {
		h.Set("Content-Type", mimetype)
	}
	h.Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
}

func copyStream(w http.ResponseWriter, stream hooyapb.Control_ContentAtCidClient) {
	for {
		chunk, err := stream.Recv()
		if err == io.EOF {
			return
		}
		if err != nil {
			log.Printf("hooya webproxy: stream read: %v", err)
			return
		}
		if _, err := w.Write(chunk.Data); err != nil {
			return
		}
	}
}

func copyStreamToBuffer(buf *strings.Builder, stream hooyapb.Control_CidThumbnailClient) (int, error) {
	total := 0
	for {
		chunk, err := stream.Recv()
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
		buf.Write(chunk.Data)
		total += len(chunk.Data)
	}
}

func httpError(w http.ResponseWriter, code codes.Code, msg string) {
	http.Error(w, msg, statusFor(code))
}

func writeRPCError(w http.ResponseWriter, err error) {
	st, ok := status.FromError(err)
	if !ok {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Error(w, st.Message(), statusFor(st.Code()))
}

// statusFor maps the RPC surface's native status codes to HTTP status
// codes per spec.md §7: BadInput->400, NotFound->404, everything else->500.
func statusFor(code codes.Code) int {
	switch code {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

package runtime

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hooya-network/hooya/pkg/cidutil"
	"github.com/hooya-network/hooya/pkg/filestore"
	"github.com/hooya-network/hooya/pkg/index"
)

func newTestRuntime(t *testing.T) *Runtime {
	t.Helper()
	store, err := filestore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("filestore.Open: %v", err)
	}
	idx, err := index.Open(":memory:")
	if err != nil {
		t.Fatalf("index.Open: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return New(store, idx)
}

func chunksOf(data []byte, chunkSize int) func() ([]byte, error) {
	pos := 0
	return func() ([]byte, error) {
		if pos >= len(data) {
			return nil, io.EOF
		}
		end := pos + chunkSize
		if end > len(data) {
			end = len(data)
		}
		chunk := data[pos:end]
		pos = end
		return chunk, nil
	}
}

func TestIngestEmptyRejected(t *testing.T) {
	rt := newTestRuntime(t)
	_, err := rt.Ingest(chunksOf(nil, 64))
	if err != ErrEmptyInput {
		t.Fatalf("Ingest(empty) = %v, want ErrEmptyInput", err)
	}
	entries, _ := os.ReadDir(filepath.Join(rt.Store.Root(), "tmp"))
	if len(entries) != 0 {
		t.Fatalf("tmp/ has %d residual entries, want 0", len(entries))
	}
}

func TestIngestRoundTripsAbc(t *testing.T) {
	rt := newTestRuntime(t)
	cidBytes, err := rt.Ingest(chunksOf([]byte("abc"), 64))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	encoded, _ := cidutil.Encode(cidBytes)
	const want = "bafkreif2pall7dybz7vecqka3zo24irdwabwdi4wc55jznaq4hya6htzni"
	if encoded != want {
		t.Fatalf("cid = %q, want %q", encoded, want)
	}

	f, err := rt.ContentAtCid(encoded)
	if err != nil {
		t.Fatalf("ContentAtCid: %v", err)
	}
	defer f.Close()
	data, _ := io.ReadAll(f)
	if string(data) != "abc" {
		t.Fatalf("content = %q, want %q", data, "abc")
	}
}

func TestIngestIsIdempotent(t *testing.T) {
	rt := newTestRuntime(t)
	cid1, err := rt.Ingest(chunksOf([]byte("hello"), 64))
	if err != nil {
		t.Fatalf("Ingest #1: %v", err)
	}
	cid2, err := rt.Ingest(chunksOf([]byte("hello"), 64))
	if err != nil {
		t.Fatalf("Ingest #2: %v", err)
	}
	if !bytes.Equal(cid1, cid2) {
		t.Fatalf("cids differ across identical ingests")
	}
	files, err := rt.RandomLocalFile(10)
	if err != nil {
		t.Fatalf("RandomLocalFile: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("file count = %d, want 1", len(files))
	}
}

func TestTagCidBeforeIngestFails(t *testing.T) {
	rt := newTestRuntime(t)
	err := rt.TagCid("bafkreiarbitrarynotindexed", []index.Tag{{Namespace: "general", Descriptor: "foo"}})
	if err != ErrNotIndexed {
		t.Fatalf("TagCid(unindexed) = %v, want ErrNotIndexed", err)
	}
}

func TestTagCidIdempotent(t *testing.T) {
	rt := newTestRuntime(t)
	cidBytes, err := rt.Ingest(chunksOf([]byte("tag me"), 64))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	encoded, _ := cidutil.Encode(cidBytes)

	tags := []index.Tag{{Namespace: "general", Descriptor: "foo"}}
	for i := 0; i < 2; i++ {
		if err := rt.TagCid(encoded, tags); err != nil {
			t.Fatalf("TagCid #%d: %v", i, err)
		}
	}
	got, err := rt.Tags(encoded)
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Tags = %+v, want exactly one tag", got)
	}
}

func TestIngestImageProducesLadder(t *testing.T) {
	rt := newTestRuntime(t)
	jpegBytes := encodeTestJPEG(t, 2000, 1000)

	cidBytes, err := rt.Ingest(chunksOf(jpegBytes, 1<<16))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	encoded, _ := cidutil.Encode(cidBytes)

	for _, rung := range []int{320, 640, 960, 1280, 1920} {
		f, err := rt.CidThumbnail(encoded, rung)
		if err != nil {
			t.Fatalf("CidThumbnail(%d): %v", rung, err)
		}
		f.Close()
	}
}

func TestLocalFilePagePagination(t *testing.T) {
	rt := newTestRuntime(t)
	rt.Ingest(chunksOf([]byte("A content"), 64))
	rt.Ingest(chunksOf([]byte("B content"), 64))
	rt.Ingest(chunksOf([]byte("C content"), 64))

	page1, next1, err := rt.LocalFilePage(2, "0", false)
	if err != nil {
		t.Fatalf("LocalFilePage page1: %v", err)
	}
	if len(page1) != 2 || next1 != "2" {
		t.Fatalf("page1 = %d files, next=%q, want 2 files, next=2", len(page1), next1)
	}

	page2, next2, err := rt.LocalFilePage(2, next1, false)
	if err != nil {
		t.Fatalf("LocalFilePage page2: %v", err)
	}
	if len(page2) != 1 || next2 != "4" {
		t.Fatalf("page2 = %d files, next=%q, want 1 file, next=4", len(page2), next2)
	}
}

func TestLocalFilePageBadToken(t *testing.T) {
	rt := newTestRuntime(t)
	if _, _, err := rt.LocalFilePage(2, "not-a-number", false); err != ErrBadInput {
		t.Fatalf("LocalFilePage(bad token) = %v, want ErrBadInput", err)
	}
}

func TestForgetFileIsIdempotent(t *testing.T) {
	rt := newTestRuntime(t)
	cidBytes, err := rt.Ingest(chunksOf([]byte("forget me"), 64))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	encoded, _ := cidutil.Encode(cidBytes)

	if err := rt.ForgetFile(encoded); err != nil {
		t.Fatalf("ForgetFile: %v", err)
	}
	if _, err := rt.IndexedFile(encoded); err != ErrNotFound {
		t.Fatalf("IndexedFile after forget = %v, want ErrNotFound", err)
	}
	if err := rt.ForgetFile(encoded); err != nil {
		t.Fatalf("second ForgetFile: %v", err)
	}
}

func encodeTestJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	return buf.Bytes()
}

package index

import (
	"testing"
	"time"
)

func openTest(t *testing.T) *Index {
	t.Helper()
	idx, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestNewFileAndFileRow(t *testing.T) {
	idx := openTest(t)
	now := time.Now().Truncate(time.Second)
	if err := idx.NewFile(File{Cid: "cid1", Size: 3, Mimetype: "text/plain", IndexedAt: now}); err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	f, err := idx.FileRow("cid1")
	if err != nil {
		t.Fatalf("FileRow: %v", err)
	}
	if f.Size != 3 || f.Mimetype != "text/plain" {
		t.Fatalf("FileRow = %+v", f)
	}
}

func TestFileRowNotFound(t *testing.T) {
	idx := openTest(t)
	if _, err := idx.FileRow("nope"); err != ErrNotFound {
		t.Fatalf("FileRow(missing) = %v, want ErrNotFound", err)
	}
}

func TestNewFileIdempotent(t *testing.T) {
	idx := openTest(t)
	now := time.Now()
	for i := 0; i < 2; i++ {
		if err := idx.NewFile(File{Cid: "dup", Size: 3, IndexedAt: now}); err != nil {
			t.Fatalf("NewFile #%d: %v", i, err)
		}
	}
	rows, err := idx.FilePage(10, 0, false)
	if err != nil {
		t.Fatalf("FilePage: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("FilePage = %d rows, want 1", len(rows))
	}
}

func TestFilePagePaginationOrder(t *testing.T) {
	idx := openTest(t)
	base := time.Now()
	for i, cid := range []string{"A", "B", "C"} {
		if err := idx.NewFile(File{Cid: cid, Size: 1, IndexedAt: base.Add(time.Duration(i) * time.Second)}); err != nil {
			t.Fatalf("NewFile(%s): %v", cid, err)
		}
	}

	page1, err := idx.FilePage(2, 0, false)
	if err != nil {
		t.Fatalf("FilePage page1: %v", err)
	}
	if len(page1) != 2 || page1[0].Cid != "C" || page1[1].Cid != "B" {
		t.Fatalf("page1 = %+v, want [C, B]", page1)
	}

	page2, err := idx.FilePage(2, 2, false)
	if err != nil {
		t.Fatalf("FilePage page2: %v", err)
	}
	if len(page2) != 1 || page2[0].Cid != "A" {
		t.Fatalf("page2 = %+v, want [A]", page2)
	}

	page3, err := idx.FilePage(2, 4, false)
	if err != nil {
		t.Fatalf("FilePage page3: %v", err)
	}
	if len(page3) != 0 {
		t.Fatalf("page3 = %+v, want empty", page3)
	}
}

func TestTagLookupAndMapIdempotent(t *testing.T) {
	idx := openTest(t)
	now := time.Now()
	if err := idx.NewFile(File{Cid: "cid1", Size: 1, IndexedAt: now}); err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	want := []Tag{{Namespace: "general", Descriptor: "foo"}}
	resolved, err := idx.LookupTagID(want)
	if err != nil {
		t.Fatalf("LookupTagID: %v", err)
	}
	if len(resolved) != 0 {
		t.Fatalf("expected no tags resolved before vocab insert, got %+v", resolved)
	}

	if err := idx.NewTagVocab(want); err != nil {
		t.Fatalf("NewTagVocab: %v", err)
	}
	resolved, err = idx.LookupTagID(want)
	if err != nil {
		t.Fatalf("LookupTagID after vocab: %v", err)
	}
	if len(resolved) != 1 {
		t.Fatalf("resolved = %+v, want 1 tag", resolved)
	}

	row := TagMapRow{FileCid: "cid1", TagID: resolved[0].ID, Added: now, Reason: 0}
	for i := 0; i < 2; i++ {
		if err := idx.NewTagMap([]TagMapRow{row}); err != nil {
			t.Fatalf("NewTagMap #%d: %v", i, err)
		}
	}

	tags, err := idx.FileTags("cid1")
	if err != nil {
		t.Fatalf("FileTags: %v", err)
	}
	if len(tags) != 1 {
		t.Fatalf("FileTags = %+v, want exactly one tag", tags)
	}
}

func TestImageAndThumbnailInsert(t *testing.T) {
	idx := openTest(t)
	now := time.Now()
	if err := idx.NewFile(File{Cid: "imgcid", Size: 100, Mimetype: "image/jpeg", IndexedAt: now}); err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if err := idx.NewImage(Image{Cid: "imgcid", Height: 1000, Width: 2000, Ratio: 2.0}); err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	if err := idx.NewThumbnail(Thumbnail{
		Cid: "thumbcid", SourceCid: "imgcid", Size: 10, Mimetype: "image/jpeg",
		Height: 320, Width: 640, Ratio: 2.0,
	}); err != nil {
		t.Fatalf("NewThumbnail: %v", err)
	}
}

func TestDeleteFileCascades(t *testing.T) {
	idx := openTest(t)
	now := time.Now()
	idx.NewFile(File{Cid: "c", Size: 1, IndexedAt: now})
	idx.NewImage(Image{Cid: "c", Height: 1, Width: 1, Ratio: 1})
	idx.NewThumbnail(Thumbnail{Cid: "t", SourceCid: "c", Size: 1, Mimetype: "image/jpeg", Height: 1, Width: 1, Ratio: 1})

	if err := idx.DeleteFile("c"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := idx.FileRow("c"); err != ErrNotFound {
		t.Fatalf("FileRow after delete = %v, want ErrNotFound", err)
	}
	var images, thumbs int
	if err := idx.DB().QueryRow(`SELECT COUNT(*) FROM Images WHERE cid = ?`, "c").Scan(&images); err != nil || images != 0 {
		t.Fatalf("Images rows after delete = %d, %v; want 0", images, err)
	}
	if err := idx.DB().QueryRow(`SELECT COUNT(*) FROM Thumbnails WHERE source_cid = ?`, "c").Scan(&thumbs); err != nil || thumbs != 0 {
		t.Fatalf("Thumbnails rows after delete = %d, %v; want 0", thumbs, err)
	}
}

func TestParsePageToken(t *testing.T) {
	if n, err := ParsePageToken(""); err != nil || n != 0 {
		t.Fatalf("ParsePageToken(\"\") = %d, %v", n, err)
	}
	if n, err := ParsePageToken("4"); err != nil || n != 4 {
		t.Fatalf("ParsePageToken(\"4\") = %d, %v", n, err)
	}
	if _, err := ParsePageToken("abc"); err == nil {
		t.Fatal("ParsePageToken(\"abc\") succeeded, want error")
	}
}

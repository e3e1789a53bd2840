package filestore

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hooya-network/hooya/pkg/cidutil"
)

func testCid(t *testing.T, data string) []byte {
	t.Helper()
	d := cidutil.NewDigest()
	d.Write([]byte(data))
	c, err := cidutil.Wrap(d.Sum(nil))
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	return c
}

func TestOpenCreatesSubdirs(t *testing.T) {
	root := t.TempDir()
	s, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for _, dir := range []string{storeDirName, thumbsDirName, tmpDirName, forgottenDirName} {
		if fi, err := os.Stat(filepath.Join(root, dir)); err != nil || !fi.IsDir() {
			t.Errorf("missing subdir %s", dir)
		}
	}
}

func TestPrimaryPathEmptyRejected(t *testing.T) {
	s, _ := Open(t.TempDir())
	if _, err := s.PrimaryPath(nil); err != ErrBadInput {
		t.Fatalf("PrimaryPath(nil) = %v, want ErrBadInput", err)
	}
}

func TestPrimaryPathShardsByPrefix(t *testing.T) {
	s, _ := Open(t.TempDir())
	c := testCid(t, "abc")
	encoded, _ := cidutil.Encode(c)
	path, err := s.PrimaryPath(c)
	if err != nil {
		t.Fatalf("PrimaryPath: %v", err)
	}
	want := filepath.Join(s.Root(), storeDirName, encoded[:canonicalPrefixLen], encoded)
	if path != want {
		t.Fatalf("PrimaryPath = %q, want %q", path, want)
	}
}

func TestThumbnailPath(t *testing.T) {
	s, _ := Open(t.TempDir())
	c := testCid(t, "abc")
	encoded, _ := cidutil.Encode(c)
	path, err := s.ThumbnailPath(c, 640)
	if err != nil {
		t.Fatalf("ThumbnailPath: %v", err)
	}
	want := filepath.Join(s.Root(), thumbsDirName, "640", encoded[:canonicalPrefixLen], encoded+"_thumb640")
	if path != want {
		t.Fatalf("ThumbnailPath = %q, want %q", path, want)
	}
}

func TestCommitAndResolve(t *testing.T) {
	s, _ := Open(t.TempDir())
	c := testCid(t, "hello world")

	tmp, err := s.NewTempFile()
	if err != nil {
		t.Fatalf("NewTempFile: %v", err)
	}
	if _, err := tmp.WriteString("hello world"); err != nil {
		t.Fatalf("write: %v", err)
	}
	tmp.Close()

	final, err := s.PrimaryPath(c)
	if err != nil {
		t.Fatalf("PrimaryPath: %v", err)
	}
	if err := Commit(tmp.Name(), final); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	resolved, err := s.ResolvePrimaryPath(c)
	if err != nil {
		t.Fatalf("ResolvePrimaryPath: %v", err)
	}
	if resolved != final {
		t.Fatalf("ResolvePrimaryPath = %q, want %q", resolved, final)
	}

	f, err := os.Open(resolved)
	if err != nil {
		t.Fatalf("open committed file: %v", err)
	}
	defer f.Close()
	data, _ := io.ReadAll(f)
	if string(data) != "hello world" {
		t.Fatalf("committed content = %q", data)
	}
}

func TestResolvePrimaryPathLegacyFallback(t *testing.T) {
	s, _ := Open(t.TempDir())
	c := testCid(t, "legacy case")
	encoded, _ := cidutil.Encode(c)

	legacyDir := filepath.Join(s.Root(), storeDirName, legacyPrefixOf(encoded))
	if err := os.MkdirAll(legacyDir, 0o700); err != nil {
		t.Fatalf("mkdir legacy: %v", err)
	}
	legacyPath := filepath.Join(legacyDir, encoded)
	if err := os.WriteFile(legacyPath, []byte("legacy content"), 0o600); err != nil {
		t.Fatalf("write legacy: %v", err)
	}

	resolved, err := s.ResolvePrimaryPath(c)
	if err != nil {
		t.Fatalf("ResolvePrimaryPath: %v", err)
	}
	if resolved != legacyPath {
		t.Fatalf("ResolvePrimaryPath = %q, want legacy path %q", resolved, legacyPath)
	}
}

func TestForgetIsIdempotent(t *testing.T) {
	s, _ := Open(t.TempDir())
	c := testCid(t, "forget me")

	tmp, _ := s.NewTempFile()
	tmp.WriteString("forget me")
	tmp.Close()
	final, _ := s.PrimaryPath(c)
	if err := Commit(tmp.Name(), final); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if err := s.Forget(c); err != nil {
		t.Fatalf("Forget: %v", err)
	}
	if _, err := os.Stat(final); !os.IsNotExist(err) {
		t.Fatalf("primary still exists after Forget")
	}
	encoded, _ := cidutil.Encode(c)
	if _, err := os.Stat(filepath.Join(s.Root(), forgottenDirName, encoded)); err != nil {
		t.Fatalf("forgotten copy missing: %v", err)
	}

	// Forgetting again is a no-op, not an error.
	if err := s.Forget(c); err != nil {
		t.Fatalf("second Forget: %v", err)
	}
}

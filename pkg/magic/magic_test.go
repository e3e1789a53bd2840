package magic

import "testing"

func TestMIMEType(t *testing.T) {
	cases := []struct {
		hdr  []byte
		want string
	}{
		{[]byte("GIF89a stuff after"), "image/gif"},
		{[]byte{0xff, 0xd8, 0xff, 0xe0, 0, 0, 0, 0}, "image/jpeg"},
		{append([]byte{137, 'P', 'N', 'G', '\r', '\n', 26, 10}, 0, 0, 0, 0), "image/png"},
		{[]byte("not a known format"), ""},
	}
	for _, c := range cases {
		if got := MIMEType(c.hdr); got != c.want {
			t.Errorf("MIMEType(%q) = %q, want %q", c.hdr, got, c.want)
		}
	}
}

func TestIsSupportedImage(t *testing.T) {
	if !IsSupportedImage("image/jpeg") {
		t.Error("image/jpeg should be supported")
	}
	if IsSupportedImage("video/mp4") {
		t.Error("video/mp4 should not be supported")
	}
}

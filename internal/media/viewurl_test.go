package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewURLDriveShapes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "share page",
			in:   "https://drive.google.com/file/d/1AbCdEfG/view?usp=sharing",
			out:  "https://drive.google.com/uc?export=view&id=1AbCdEfG",
		},
		{
			name: "open link",
			in:   "https://drive.google.com/open?id=1AbCdEfG",
			out:  "https://drive.google.com/uc?export=view&id=1AbCdEfG",
		},
		{
			name: "already inline",
			in:   "https://drive.google.com/uc?export=view&id=1AbCdEfG",
			out:  "https://drive.google.com/uc?export=view&id=1AbCdEfG",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.out, ViewURL(tc.in))
		})
	}
}

func TestViewURLPassthrough(t *testing.T) {
	unchanged := []string{
		"",
		"   ",
		"not a url",
		"/relative/path.jpg",
		"https://cdn.example.com/photos/1.jpg",
		"https://storage.googleapis.com/bucket/uploads/before_1700000000000_ab12cdef.jpg",
		"https://storage.googleapis.com/bucket/obj?X-Goog-Algorithm=GOOG4-RSA-SHA256&X-Goog-Signature=deadbeef",
		"https://drive.google.com/drive/folders/1AbCdEfG",
	}

	for _, raw := range unchanged {
		assert.Equal(t, raw, ViewURL(raw), "input %q must pass through unchanged", raw)
	}
}

func TestViewURLIdempotent(t *testing.T) {
	inputs := []string{
		"https://drive.google.com/file/d/1AbCdEfG/view",
		"https://drive.google.com/open?id=1AbCdEfG",
		"https://storage.googleapis.com/bucket/uploads/x.png",
		"garbage",
	}

	for _, raw := range inputs {
		once := ViewURL(raw)
		assert.Equal(t, once, ViewURL(once))
	}
}

func TestViewURLNeverErrorsOnHostileInput(t *testing.T) {
	hostile := []string{
		"http://%zz",
		"https://drive.google.com/file/d/",
		"https://drive.google.com/uc",
		"\x00\x01",
	}
	for _, raw := range hostile {
		assert.NotPanics(t, func() { _ = ViewURL(raw) })
	}
}

func TestDriveInlineURLEscapesID(t *testing.T) {
	assert.Equal(t,
		"https://drive.google.com/uc?export=view&id=a%2Fb%26c",
		DriveInlineURL("a/b&c"))
}

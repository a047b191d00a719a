package application

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var objectPathPattern = regexp.MustCompile(`^uploads/[a-z]+_\d{13}_[0-9a-f]{8}(\.[a-z0-9]+)?$`)

func TestNewObjectPathShape(t *testing.T) {
	path := NewObjectPath("before", "IMG_0042.JPG")
	require.Regexp(t, objectPathPattern, path)
	assert.True(t, strings.HasPrefix(path, "uploads/before_"))
	assert.True(t, strings.HasSuffix(path, ".jpg"), "extension is lowercased: %s", path)
}

func TestNewObjectPathDefaultsKind(t *testing.T) {
	path := NewObjectPath("", "photo.png")
	assert.True(t, strings.HasPrefix(path, "uploads/image_"), path)
}

func TestNewObjectPathExtensionEdgeCases(t *testing.T) {
	cases := []struct {
		filename string
		suffix   string
	}{
		{"noextension", ""},
		{".hidden", ""},
		{"trailingdot.", ""},
		{"archive.tar.gz", ".gz"},
	}
	for _, tc := range cases {
		path := NewObjectPath("after", tc.filename)
		if tc.suffix == "" {
			assert.Regexp(t, `_[0-9a-f]{8}$`, path, "filename %q", tc.filename)
		} else {
			assert.True(t, strings.HasSuffix(path, tc.suffix), "filename %q gave %s", tc.filename, path)
		}
	}
}

func TestNewObjectPathUniqueWithinMillisecond(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		path := NewObjectPath("before", "a.jpg")
		_, dup := seen[path]
		require.False(t, dup, "duplicate path %s", path)
		seen[path] = struct{}{}
	}
}

package application

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewObjectPath builds a globally-unique storage path for an attachment:
// base name from the requested kind, millisecond timestamp, random
// disambiguator and the original file extension. Two requests within the
// same millisecond still yield distinct paths.
func NewObjectPath(kind, filename string) string {
	base := strings.TrimSpace(kind)
	if base == "" {
		base = "image"
	}
	disambiguator := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("uploads/%s_%d_%s%s", base, time.Now().UnixMilli(), disambiguator, fileExtension(filename))
}

func fileExtension(filename string) string {
	name := strings.TrimSpace(filename)
	idx := strings.LastIndex(name, ".")
	if idx <= 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx:])
}

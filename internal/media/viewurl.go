// Package media rewrites stored attachment references of unknown
// provenance into directly viewable URLs.
package media

import (
	"net/url"
	"strings"
)

const (
	objectStorageHost = "storage.googleapis.com"
	sharedDriveHost   = "drive.google.com"
)

// DriveInlineURL is the canonical inline-view form for a shared-drive file.
// The default share-page URL does not render inline in an <img> tag.
func DriveInlineURL(fileID string) string {
	return "https://" + sharedDriveHost + "/uc?export=view&id=" + url.QueryEscape(fileID)
}

// ViewURL classifies a stored URL by provenance and returns a directly
// viewable form. Unrecognized input is returned unchanged rather than
// rejected, so the admin view degrades gracefully. The function is
// idempotent: ViewURL(ViewURL(u)) == ViewURL(u).
func ViewURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" {
		return raw
	}

	// An already-signed object-storage URL carries its read capability in
	// the query string; rewriting it would break the signature.
	query := parsed.Query()
	if query.Has("X-Goog-Algorithm") || query.Has("X-Goog-Signature") {
		return raw
	}

	switch parsed.Hostname() {
	case objectStorageHost:
		// Public object paths are directly viewable.
		return raw
	case sharedDriveHost:
		if id := driveFileID(parsed); id != "" {
			return DriveInlineURL(id)
		}
		return raw
	default:
		return raw
	}
}

// driveFileID extracts the file identifier from the known shared-drive URL
// shapes: /file/d/<id>/..., /uc?id=<id> and /open?id=<id>.
func driveFileID(u *url.URL) string {
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+1 < len(segments); i++ {
		if segments[i] == "d" {
			return segments[i+1]
		}
	}
	return u.Query().Get("id")
}

package common

import "regexp"

// GenericCredentialMessage replaces any error detail that might leak
// secret names or credential material.
const GenericCredentialMessage = "Server credentials are invalid or missing."

// GenericConfigMessage hides which server-side setting is absent.
const GenericConfigMessage = "Server is missing storage configuration."

var credentialHintPattern = regexp.MustCompile(`(?i)(invalid_grant|unauthorized|credential|private[ _]?key|secret|token)`)

// ScrubCredentialHints rewrites a message to a generic phrase when it
// contains credential-pattern substrings; other messages pass through.
func ScrubCredentialHints(message string) string {
	if credentialHintPattern.MatchString(message) {
		return GenericCredentialMessage
	}
	return message
}

package api

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// SupportedMajor is the service API major version this client speaks.
const SupportedMajor = "v1"

// VersionMismatchError reports a service whose major version differs from
// SupportedMajor.
type VersionMismatchError struct {
	Reported string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("service reports version %s, client supports %s.x", e.Reported, SupportedMajor)
}

// CheckVersion compares the /health version against SupportedMajor.
// Missing or unparseable versions are accepted.
func CheckVersion(h *Health) error {
	if h == nil || h.Version == "" {
		return nil
	}
	v := h.Version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return nil
	}
	if semver.Major(v) != SupportedMajor {
		return &VersionMismatchError{Reported: h.Version}
	}
	return nil
}

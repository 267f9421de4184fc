// Package runname derives a human-readable run name from an Ion Torrent
// run directory path.
//
// Automated runs are named by the Torrent Server as
// "Auto_user_<name>_<counter>_<id>"; the <name> portion is what belongs
// in the case list. Directories that do not follow the convention fall
// back to the raw path.
package runname

import (
	"path/filepath"
	"regexp"
	"strings"
)

// autoRunRegex captures the operator-chosen run name out of the
// Torrent Server directory convention. The name capture is lazy but
// must end in at least three word characters so the trailing counter
// and run id are not swallowed.
var autoRunRegex = regexp.MustCompile(`^Auto_user_(.*?\w{3})_\d+_\d+$`)

// Extract returns the run name for the given run directory.
// When the basename does not follow the Auto_user convention the full
// input path is returned unchanged and matched is false; the caller
// decides how to report the fallback. Extract never fails.
func Extract(runDir string) (name string, matched bool) {
	base := filepath.Base(strings.TrimRight(runDir, "/"))

	m := autoRunRegex.FindStringSubmatch(base)
	if m == nil {
		return runDir, false
	}
	return m[1], true
}

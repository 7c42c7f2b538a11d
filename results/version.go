package results

import "strings"

// Version is the active result-table schema version, stamped on outgoing
// acknowledgments.
const Version = "1.0.0"

// IsCompatible reports whether a remote result-table version can be trusted
// against the local one. Major and minor must match exactly; patch is
// ignored. Anything that does not split into exactly three dot-separated
// components is incompatible by definition: a malformed remote version is
// not trustworthy, so the answer is false rather than an error.
func IsCompatible(remote string) bool {
	rp := strings.Split(remote, ".")
	lp := strings.Split(Version, ".")
	if len(rp) != 3 || len(lp) != 3 {
		return false
	}
	return rp[0] == lp[0] && rp[1] == lp[1]
}

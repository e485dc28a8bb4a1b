package pkgmgr

import "strings"

// parseNevra splits a name-[epoch:]version-release.arch string into a Package.
// dnf and yum print these with the epoch omitted when it is zero, so the
// result is normalized through Package.EVR before being used as a map key.
func parseNevra(s string) (Package, bool) {
	archIdx := strings.LastIndex(s, ".")
	if archIdx <= 0 || archIdx == len(s)-1 {
		return Package{}, false
	}
	arch := s[archIdx+1:]
	rest := s[:archIdx]

	relIdx := strings.LastIndex(rest, "-")
	if relIdx <= 0 || relIdx == len(rest)-1 {
		return Package{}, false
	}
	release := rest[relIdx+1:]
	rest = rest[:relIdx]

	verIdx := strings.LastIndex(rest, "-")
	if verIdx <= 0 || verIdx == len(rest)-1 {
		return Package{}, false
	}
	name := rest[:verIdx]
	epoch, version, found := strings.Cut(rest[verIdx+1:], ":")
	if !found {
		version = epoch
		epoch = "0"
	}

	return Package{
		Name:    name,
		Epoch:   epoch,
		Version: version,
		Release: release,
		Arch:    arch,
	}, true
}

// splitEVR breaks an [epoch:]version-release string into its parts.
// Used for the version column of yum check-update output.
func splitEVR(s string) (epoch, version, release string, ok bool) {
	epoch, rest, found := strings.Cut(s, ":")
	if !found {
		rest = epoch
		epoch = "0"
	}

	relIdx := strings.LastIndex(rest, "-")
	if relIdx <= 0 || relIdx == len(rest)-1 {
		return "", "", "", false
	}
	return epoch, rest[:relIdx], rest[relIdx+1:], true
}

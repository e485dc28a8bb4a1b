package pkgmgr

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// rpm helpers shared by both adapters. The rpm database is the source of
// truth for installed packages regardless of which frontend manages updates.

func installedPackages(ctx context.Context) ([]Package, error) {
	cmd := exec.CommandContext(ctx, "rpm", "-qa", "--queryformat",
		"%{NAME}\t%{EPOCHNUM}\t%{VERSION}\t%{RELEASE}\t%{ARCH}\n")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("rpm query failed: %w", err)
	}
	return parseRpmPackages(output), nil
}

func parseRpmPackages(output []byte) []Package {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	pkgs := []Package{}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) != 5 {
			continue
		}
		// gpg-pubkey pseudo-packages have arch "(none)" and can never
		// have updates.
		if parts[4] == "(none)" {
			continue
		}
		pkgs = append(pkgs, Package{
			Name:    parts[0],
			Epoch:   parts[1],
			Version: parts[2],
			Release: parts[3],
			Arch:    parts[4],
		})
	}
	return pkgs
}

// detectReleasever resolves the distribution release the same way dnf does:
// from the version of whatever package provides system-release.
func detectReleasever(ctx context.Context) string {
	cmd := exec.CommandContext(ctx, "rpm", "-q", "--queryformat", "%{VERSION}\n",
		"--whatprovides", "system-release")
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	first, _, _ := strings.Cut(strings.TrimSpace(string(output)), "\n")
	return first
}

// detectBasearch resolves the repository base architecture from rpm's view
// of the machine arch, falling back to the Go runtime arch when rpm is
// unavailable.
func detectBasearch(ctx context.Context) string {
	cmd := exec.CommandContext(ctx, "rpm", "--eval", "%{_arch}")
	output, err := cmd.Output()
	if err != nil {
		switch runtime.GOARCH {
		case "amd64":
			return "x86_64"
		case "arm64":
			return "aarch64"
		case "386":
			return "i386"
		default:
			return runtime.GOARCH
		}
	}
	return basearchFor(strings.TrimSpace(string(output)))
}

// basearchFor folds a machine architecture into the base architecture used
// in repository paths, mirroring dnf's arch table.
func basearchFor(arch string) string {
	switch arch {
	case "i386", "i486", "i586", "i686", "athlon", "geode":
		return "i386"
	case "x86_64", "amd64", "ia32e":
		return "x86_64"
	case "armv5tel", "armv6l", "armv7l":
		return "arm"
	case "armv6hl", "armv7hl", "armv7hnl", "armv8hl":
		return "armhfp"
	case "ppc64le":
		return "ppc64le"
	case "ppc64", "ppc64p7":
		return "ppc64"
	case "sparc64", "sparc64v", "sparcv9", "sparcv9v":
		return "sparc"
	default:
		return arch
	}
}

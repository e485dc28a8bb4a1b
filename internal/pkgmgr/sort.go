package pkgmgr

import (
	"sort"

	rpmver "github.com/knqyf263/go-rpm-version"
)

// comparePackages orders candidates by name, then rpm EVR semantics, then
// repository id. The EVR comparison is delegated to the rpm version library;
// it is never reimplemented here.
func comparePackages(a, b Package) int {
	if a.Name != b.Name {
		if a.Name < b.Name {
			return -1
		}
		return 1
	}
	if c := rpmver.NewVersion(a.EVR()).Compare(rpmver.NewVersion(b.EVR())); c != 0 {
		return c
	}
	if a.Repo != b.Repo {
		if a.Repo < b.Repo {
			return -1
		}
		return 1
	}
	return 0
}

func sortPackages(pkgs []Package) []Package {
	out := make([]Package, len(pkgs))
	copy(out, pkgs)
	sort.SliceStable(out, func(i, j int) bool {
		return comparePackages(out[i], out[j]) < 0
	})
	return out
}

// evrGreater reports whether candidate carries a strictly newer EVR than
// installed. Packages equal to or older than the installed copy never
// qualify as updates.
func evrGreater(candidate, installed Package) bool {
	candidateVer := rpmver.NewVersion(candidate.EVR())
	return candidateVer.GreaterThan(rpmver.NewVersion(installed.EVR()))
}

func indexByNA(pkgs []Package) map[string][]Package {
	index := make(map[string][]Package, len(pkgs))
	for _, pkg := range pkgs {
		index[pkg.NA()] = append(index[pkg.NA()], pkg)
	}
	return index
}

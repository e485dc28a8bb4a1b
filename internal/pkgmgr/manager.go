package pkgmgr

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ErrNoPackageManager indicates the host has neither dnf nor yum installed.
var ErrNoPackageManager = errors.New("no supported package manager found (dnf or yum)")

// Package identifies a single rpm package, installed or available.
type Package struct {
	Name    string
	Epoch   string
	Version string
	Release string
	Arch    string
	Repo    string
}

// EVR renders the epoch:version-release triple used for rpm comparisons.
// A missing epoch is rendered as 0, matching rpm semantics.
func (p Package) EVR() string {
	epoch := p.Epoch
	if epoch == "" {
		epoch = "0"
	}
	return fmt.Sprintf("%s:%s-%s", epoch, p.Version, p.Release)
}

// NEVRA renders the canonical name-epoch:version-release.arch identifier.
func (p Package) NEVRA() string {
	return fmt.Sprintf("%s-%s.%s", p.Name, p.EVR(), p.Arch)
}

// NA is the name.arch key used to match installed packages with update candidates.
func (p Package) NA() string {
	return p.Name + "." + p.Arch
}

// Manager is implemented by the dnf and yum adapters. It hides the
// differences between the two command line surfaces behind one contract:
// load metadata, enumerate installed packages, resolve update candidates,
// sort them, and attach advisory info.
type Manager interface {
	ID() string
	Name() string

	// Load reads repository metadata and resolves releasever/basearch.
	// Must be called before any of the query methods below.
	Load(ctx context.Context) error

	Releasever() string
	Basearch() string
	EnabledRepos() []string

	// Installed enumerates the packages currently present in the rpm database.
	Installed(ctx context.Context) ([]Package, error)

	// Updates returns the installed package's NEVRA and every available
	// package with the same name and arch and a strictly greater EVR.
	Updates(pkg Package) (string, []Package)

	// SortedUpdates orders candidates deterministically (name, EVR, repo)
	// and drops entries that are not real updates for this adapter.
	SortedUpdates(pkgs []Package) []Package

	// Advisory returns the erratum id for an update candidate, or "".
	Advisory(pkg Package) string

	// LastRefresh is the newest enabled-repo metadata timestamp. Adapters
	// that cannot determine it return the zero time.
	LastRefresh() time.Time
}

// Options control how the adapters invoke the package manager.
type Options struct {
	// CacheOnly makes the adapters operate on the existing metadata cache
	// instead of refreshing from the network.
	CacheOnly bool
}

// Detect picks the adapter for this host. dnf wins when both are present.
func Detect(opts Options) (Manager, error) {
	if _, err := exec.LookPath("dnf"); err == nil {
		return NewDnfManager(opts), nil
	}
	if _, err := exec.LookPath("yum"); err == nil {
		return NewYumManager(opts), nil
	}
	return nil, ErrNoPackageManager
}

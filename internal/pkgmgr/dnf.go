package pkgmgr

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const dnfCacheDir = "/var/cache/dnf"

// DnfManager resolves package updates through the dnf command line tools.
type DnfManager struct {
	opts Options

	releasever  string
	basearch    string
	repos       []string
	available   map[string][]Package // update candidates keyed by name.arch
	advisories  map[string]string    // erratum id keyed by canonical NEVRA
	lastRefresh time.Time
}

func NewDnfManager(opts Options) *DnfManager {
	return &DnfManager{
		opts:       opts,
		available:  map[string][]Package{},
		advisories: map[string]string{},
	}
}

func (m *DnfManager) ID() string {
	return "dnf"
}

func (m *DnfManager) Name() string {
	return "DNF"
}

// Load queries dnf for every available package and the advisories covering
// them, and resolves releasever/basearch from the rpm database.
func (m *DnfManager) Load(ctx context.Context) error {
	m.releasever = detectReleasever(ctx)
	m.basearch = detectBasearch(ctx)

	output, err := m.run(ctx, "repoquery", "--queryformat",
		"%{name}\t%{epoch}\t%{version}\t%{release}\t%{arch}\t%{reponame}\n")
	if err != nil {
		return fmt.Errorf("dnf repoquery failed: %w", err)
	}
	m.available = indexByNA(parseDnfRepoquery(output))

	repoOutput, err := m.run(ctx, "repolist", "--enabled")
	if err != nil {
		return fmt.Errorf("dnf repolist failed: %w", err)
	}
	m.repos = parseRepolist(repoOutput)

	// updateinfo is best effort: repos without updateinfo metadata just
	// leave the advisory index empty.
	if advOutput, err := m.run(ctx, "updateinfo", "list"); err == nil {
		m.advisories = parseUpdateinfo(advOutput)
	}

	m.lastRefresh = newestRepomdTime(dnfCacheDir)
	return nil
}

func (m *DnfManager) run(ctx context.Context, args ...string) ([]byte, error) {
	full := []string{"-q"}
	if m.opts.CacheOnly {
		full = append(full, "--cacheonly")
	}
	full = append(full, args...)
	return exec.CommandContext(ctx, "dnf", full...).Output()
}

func (m *DnfManager) Releasever() string {
	return m.releasever
}

func (m *DnfManager) Basearch() string {
	return m.basearch
}

func (m *DnfManager) EnabledRepos() []string {
	return m.repos
}

func (m *DnfManager) Installed(ctx context.Context) ([]Package, error) {
	return installedPackages(ctx)
}

func (m *DnfManager) Updates(pkg Package) (string, []Package) {
	var updates []Package
	for _, candidate := range m.available[pkg.NA()] {
		if evrGreater(candidate, pkg) {
			updates = append(updates, candidate)
		}
	}
	return pkg.NEVRA(), updates
}

// SortedUpdates drops @System entries so that a package installed more than
// once (e.g. kernel) is never reported as an update of itself.
func (m *DnfManager) SortedUpdates(pkgs []Package) []Package {
	filtered := make([]Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		if pkg.Repo == "@System" {
			continue
		}
		filtered = append(filtered, pkg)
	}
	return sortPackages(filtered)
}

func (m *DnfManager) Advisory(pkg Package) string {
	return m.advisories[pkg.NEVRA()]
}

func (m *DnfManager) LastRefresh() time.Time {
	return m.lastRefresh
}

func parseDnfRepoquery(output []byte) []Package {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	pkgs := []Package{}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) != 6 {
			continue
		}
		pkgs = append(pkgs, Package{
			Name:    parts[0],
			Epoch:   parts[1],
			Version: parts[2],
			Release: parts[3],
			Arch:    parts[4],
			Repo:    parts[5],
		})
	}
	return pkgs
}

// parseRepolist extracts repo ids from `repolist` output, which prints a
// "repo id / repo name" header followed by one repo per line. yum prefixes
// disabled-but-listed repos with '!' and appends /$releasever/$basearch to
// the id; both decorations are stripped.
func parseRepolist(output []byte) []string {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	repos := []string{}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "repo id") {
			continue
		}
		id := strings.Fields(line)[0]
		id = strings.TrimPrefix(id, "!")
		if idx := strings.Index(id, "/"); idx > 0 {
			id = id[:idx]
		}
		repos = append(repos, id)
	}
	return repos
}

// parseUpdateinfo indexes `updateinfo list` output by canonical NEVRA.
// Lines look like "FEDORA-2024-abcdef0123 Important/Sec. bind-32:9.18.24-1.fc39.x86_64".
// When several advisories cover the same package the first one wins.
func parseUpdateinfo(output []byte) map[string]string {
	advisories := map[string]string{}
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		pkg, ok := parseNevra(fields[len(fields)-1])
		if !ok {
			continue
		}
		nevra := pkg.NEVRA()
		if _, seen := advisories[nevra]; !seen {
			advisories[nevra] = fields[0]
		}
	}
	return advisories
}

// newestRepomdTime finds the most recently written repomd.xml under the
// metadata cache, standing in for the per-repo revision timestamp.
func newestRepomdTime(cacheDir string) time.Time {
	matches, err := filepath.Glob(filepath.Join(cacheDir, "*", "repodata", "repomd.xml"))
	if err != nil {
		return time.Time{}
	}
	var newest time.Time
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
	}
	return newest
}

package pkgmgr

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// YumManager resolves package updates through the legacy yum command line
// tools on hosts that predate dnf.
type YumManager struct {
	opts Options

	releasever string
	basearch   string
	repos      []string
	updates    map[string][]Package // update candidates keyed by name.arch
	advisories map[string]string    // erratum id keyed by canonical NEVRA
}

func NewYumManager(opts Options) *YumManager {
	return &YumManager{
		opts:       opts,
		updates:    map[string][]Package{},
		advisories: map[string]string{},
	}
}

func (m *YumManager) ID() string {
	return "yum"
}

func (m *YumManager) Name() string {
	return "YUM"
}

func (m *YumManager) Load(ctx context.Context) error {
	m.releasever = detectReleasever(ctx)
	m.basearch = detectBasearch(ctx)

	output, err := m.checkUpdate(ctx)
	if err != nil {
		return err
	}
	m.updates = indexByNA(parseCheckUpdate(output))

	repoOutput, err := m.run(ctx, "repolist", "enabled")
	if err != nil {
		return fmt.Errorf("yum repolist failed: %w", err)
	}
	m.repos = parseRepolist(repoOutput)

	if advOutput, err := m.run(ctx, "updateinfo", "list"); err == nil {
		m.advisories = parseUpdateinfo(advOutput)
	}

	return nil
}

func (m *YumManager) checkUpdate(ctx context.Context) ([]byte, error) {
	output, runErr := m.run(ctx, "check-update")
	if runErr != nil {
		// yum exits 100 when updates are available, 0 when none are.
		if exitErr, ok := runErr.(*exec.ExitError); !ok || exitErr.ExitCode() != 100 {
			return nil, fmt.Errorf("yum check-update failed: %w", runErr)
		}
	}
	return output, nil
}

func (m *YumManager) run(ctx context.Context, args ...string) ([]byte, error) {
	full := []string{"-q"}
	if m.opts.CacheOnly {
		full = append(full, "-C")
	}
	full = append(full, args...)
	return exec.CommandContext(ctx, "yum", full...).Output()
}

func (m *YumManager) Releasever() string {
	return m.releasever
}

func (m *YumManager) Basearch() string {
	return m.basearch
}

func (m *YumManager) EnabledRepos() []string {
	return m.repos
}

func (m *YumManager) Installed(ctx context.Context) ([]Package, error) {
	return installedPackages(ctx)
}

func (m *YumManager) Updates(pkg Package) (string, []Package) {
	var updates []Package
	for _, candidate := range m.updates[pkg.NA()] {
		if evrGreater(candidate, pkg) {
			updates = append(updates, candidate)
		}
	}
	return pkg.NEVRA(), updates
}

func (m *YumManager) SortedUpdates(pkgs []Package) []Package {
	return sortPackages(pkgs)
}

func (m *YumManager) Advisory(pkg Package) string {
	return m.advisories[pkg.NEVRA()]
}

// LastRefresh is unknowable through the yum CLI; callers treat the zero
// time as "omit the metadata timestamp".
func (m *YumManager) LastRefresh() time.Time {
	return time.Time{}
}

// parseCheckUpdate reads `check-update` output. Each row is
// "name.arch  [epoch:]version-release  repo"; long package names wrap onto
// their own line with the remaining columns on the next one. Parsing stops
// at the "Obsoleting Packages" trailer.
func parseCheckUpdate(output []byte) []Package {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	pkgs := []Package{}
	pending := ""
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "Last metadata") {
			continue
		}
		if strings.HasPrefix(line, "Obsoleting Packages") {
			break
		}

		fields := strings.Fields(line)
		switch {
		case len(fields) == 1:
			pending = fields[0]
			continue
		case len(fields) == 2 && pending != "":
			fields = append([]string{pending}, fields...)
		case len(fields) != 3:
			pending = ""
			continue
		}
		pending = ""

		naIdx := strings.LastIndex(fields[0], ".")
		if naIdx <= 0 {
			continue
		}
		epoch, version, release, ok := splitEVR(fields[1])
		if !ok {
			continue
		}
		pkgs = append(pkgs, Package{
			Name:    fields[0][:naIdx],
			Epoch:   epoch,
			Version: version,
			Release: release,
			Arch:    fields[0][naIdx+1:],
			Repo:    fields[2],
		})
	}
	return pkgs
}

package collectors

import (
	"context"
	"fmt"
	"time"

	"github.com/breeze-rmm/updates-collector/internal/logging"
	"github.com/breeze-rmm/updates-collector/internal/pkgmgr"
)

var log = logging.L("collectors")

// AvailableUpdate describes one update candidate for an installed package.
type AvailableUpdate struct {
	Package    string `json:"package" yaml:"package"`
	Repository string `json:"repository" yaml:"repository"`
	Basearch   string `json:"basearch" yaml:"basearch"`
	Releasever string `json:"releasever" yaml:"releasever"`
	Erratum    string `json:"erratum,omitempty" yaml:"erratum,omitempty"`
}

// PackageUpdates groups the update candidates for one installed NEVRA.
type PackageUpdates struct {
	AvailableUpdates []AvailableUpdate `json:"available_updates" yaml:"available_updates"`
}

// UpdatesReport is the document handed to the fact-collection pipeline.
// Only installed packages that actually have updates appear in UpdateList.
type UpdatesReport struct {
	Releasever   string                    `json:"releasever" yaml:"releasever"`
	Basearch     string                    `json:"basearch" yaml:"basearch"`
	UpdateList   map[string]PackageUpdates `json:"update_list" yaml:"update_list"`
	MetadataTime string                    `json:"metadata_time,omitempty" yaml:"metadata_time,omitempty"`
}

// Report is the full output document: the canonical updates report plus
// optional host facts.
type Report struct {
	UpdatesReport `yaml:",inline"`
	Host          *HostFacts `json:"host,omitempty" yaml:"host,omitempty"`
}

// UpdatesCollector drives a package manager adapter to build the report.
type UpdatesCollector struct {
	mgr pkgmgr.Manager
}

func NewUpdatesCollector(mgr pkgmgr.Manager) *UpdatesCollector {
	return &UpdatesCollector{mgr: mgr}
}

// Collect loads package metadata and resolves the available updates for
// every installed package.
func (c *UpdatesCollector) Collect(ctx context.Context) (*UpdatesReport, error) {
	start := time.Now()

	if err := c.mgr.Load(ctx); err != nil {
		return nil, fmt.Errorf("%s metadata load failed: %w", c.mgr.ID(), err)
	}

	installed, err := c.mgr.Installed(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s installed package query failed: %w", c.mgr.ID(), err)
	}

	report := &UpdatesReport{
		Releasever: c.mgr.Releasever(),
		Basearch:   c.mgr.Basearch(),
		UpdateList: map[string]PackageUpdates{},
	}

	for _, pkg := range installed {
		nevra, candidates := c.mgr.Updates(pkg)
		if len(candidates) == 0 {
			continue
		}

		sorted := c.mgr.SortedUpdates(candidates)
		updates := make([]AvailableUpdate, 0, len(sorted))
		for _, candidate := range sorted {
			update := AvailableUpdate{
				Package:    candidate.NEVRA(),
				Repository: candidate.Repo,
				Basearch:   report.Basearch,
				Releasever: report.Releasever,
			}
			if erratum := c.mgr.Advisory(candidate); erratum != "" {
				update.Erratum = erratum
			}
			updates = append(updates, update)
		}
		if len(updates) == 0 {
			continue
		}

		report.UpdateList[nevra] = PackageUpdates{AvailableUpdates: updates}
	}

	if ts := c.mgr.LastRefresh(); !ts.IsZero() {
		report.MetadataTime = ts.UTC().Format("2006-01-02T15:04:05Z")
	}

	log.Debug("updates collected",
		"manager", c.mgr.ID(),
		"installed", len(installed),
		"withUpdates", len(report.UpdateList),
		logging.KeyDurationMs, time.Since(start).Milliseconds())

	return report, nil
}

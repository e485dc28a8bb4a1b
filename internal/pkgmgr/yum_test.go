package pkgmgr

import "testing"

func TestParseCheckUpdate(t *testing.T) {
	output := []byte(
		"bash.x86_64         5.1.8-9.el9       baseos\n" +
			"bind.x86_64         32:9.16.23-18.el9 appstream\n" +
			"\n" +
			"Obsoleting Packages\n" +
			"old-package.x86_64  1.0-1             baseos\n")

	pkgs := parseCheckUpdate(output)
	if len(pkgs) != 2 {
		t.Fatalf("expected 2 packages before the obsoleting trailer, got %d", len(pkgs))
	}
	if pkgs[0].Name != "bash" || pkgs[0].Arch != "x86_64" || pkgs[0].Repo != "baseos" {
		t.Errorf("unexpected first package: %+v", pkgs[0])
	}
	if pkgs[1].Epoch != "32" || pkgs[1].Version != "9.16.23" || pkgs[1].Release != "18.el9" {
		t.Errorf("unexpected epoch parsing: %+v", pkgs[1])
	}
}

func TestParseCheckUpdateJoinsWrappedLines(t *testing.T) {
	// Long package names push the version/repo columns onto the next line.
	output := []byte(
		"some-package-with-a-very-long-name.noarch\n" +
			"                    2.0.1-4.el9       updates\n" +
			"bash.x86_64         5.1.8-9.el9       baseos\n")

	pkgs := parseCheckUpdate(output)
	if len(pkgs) != 2 {
		t.Fatalf("expected 2 packages, got %d: %+v", len(pkgs), pkgs)
	}
	if pkgs[0].Name != "some-package-with-a-very-long-name" || pkgs[0].Arch != "noarch" {
		t.Errorf("wrapped line not joined: %+v", pkgs[0])
	}
	if pkgs[0].Version != "2.0.1" || pkgs[0].Repo != "updates" {
		t.Errorf("wrapped line columns wrong: %+v", pkgs[0])
	}
}

func TestYumUpdatesGuardsAgainstStaleCandidates(t *testing.T) {
	mgr := NewYumManager(Options{})
	mgr.updates = indexByNA([]Package{
		{Name: "bash", Epoch: "0", Version: "5.1.8", Release: "9.el9", Arch: "x86_64", Repo: "baseos"},
	})

	// The candidate equals the installed EVR, so it is not an update.
	installed := Package{Name: "bash", Epoch: "0", Version: "5.1.8", Release: "9.el9", Arch: "x86_64"}
	nevra, updates := mgr.Updates(installed)
	if nevra != "bash-0:5.1.8-9.el9.x86_64" {
		t.Errorf("unexpected nevra: %s", nevra)
	}
	if len(updates) != 0 {
		t.Errorf("expected no updates, got %+v", updates)
	}
}

func TestYumLastRefreshIsZero(t *testing.T) {
	mgr := NewYumManager(Options{})
	if !mgr.LastRefresh().IsZero() {
		t.Error("yum adapter should report an unknown refresh time")
	}
}

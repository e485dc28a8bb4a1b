package pkgmgr

import "testing"

func TestParseNevraWithoutEpoch(t *testing.T) {
	pkg, ok := parseNevra("kernel-core-5.14.0-70.el9.x86_64")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if pkg.Name != "kernel-core" {
		t.Errorf("expected name kernel-core, got %q", pkg.Name)
	}
	if pkg.Epoch != "0" {
		t.Errorf("expected implicit epoch 0, got %q", pkg.Epoch)
	}
	if pkg.Version != "5.14.0" || pkg.Release != "70.el9" || pkg.Arch != "x86_64" {
		t.Errorf("unexpected fields: %+v", pkg)
	}
}

func TestParseNevraWithEpoch(t *testing.T) {
	pkg, ok := parseNevra("bind-32:9.18.24-1.fc39.x86_64")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if pkg.Name != "bind" || pkg.Epoch != "32" || pkg.Version != "9.18.24" {
		t.Errorf("unexpected fields: %+v", pkg)
	}
	if pkg.NEVRA() != "bind-32:9.18.24-1.fc39.x86_64" {
		t.Errorf("round trip mismatch: %s", pkg.NEVRA())
	}
}

func TestParseNevraNormalizesZeroEpoch(t *testing.T) {
	pkg, ok := parseNevra("vim-enhanced-8.2.2637-20.el9.x86_64")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if pkg.NEVRA() != "vim-enhanced-0:8.2.2637-20.el9.x86_64" {
		t.Errorf("expected canonical NEVRA with explicit epoch, got %s", pkg.NEVRA())
	}
}

func TestParseNevraRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "noarch", "name.x86_64", "a-b"} {
		if _, ok := parseNevra(s); ok {
			t.Errorf("expected parse of %q to fail", s)
		}
	}
}

func TestSplitEVR(t *testing.T) {
	epoch, version, release, ok := splitEVR("1:2.4.57-5.el9")
	if !ok {
		t.Fatal("expected split to succeed")
	}
	if epoch != "1" || version != "2.4.57" || release != "5.el9" {
		t.Errorf("unexpected parts: %s %s %s", epoch, version, release)
	}

	epoch, version, release, ok = splitEVR("9.18.24-1.fc39")
	if !ok {
		t.Fatal("expected split to succeed")
	}
	if epoch != "0" || version != "9.18.24" || release != "1.fc39" {
		t.Errorf("unexpected parts: %s %s %s", epoch, version, release)
	}

	if _, _, _, ok := splitEVR("noversion"); ok {
		t.Error("expected split of release-less string to fail")
	}
}

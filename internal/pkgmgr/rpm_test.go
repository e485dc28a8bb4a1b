package pkgmgr

import "testing"

func TestParseRpmPackages(t *testing.T) {
	output := []byte(
		"bash\t0\t5.1.8\t9.el9\tx86_64\n" +
			"bind\t32\t9.16.23\t18.el9\tx86_64\n" +
			"gpg-pubkey\t0\tfd431d51\t4ae0493b\t(none)\n" +
			"\n" +
			"malformed line without tabs\n")

	pkgs := parseRpmPackages(output)
	if len(pkgs) != 2 {
		t.Fatalf("expected 2 packages, got %d: %+v", len(pkgs), pkgs)
	}
	if pkgs[0].NEVRA() != "bash-0:5.1.8-9.el9.x86_64" {
		t.Errorf("unexpected first package: %s", pkgs[0].NEVRA())
	}
	if pkgs[1].Epoch != "32" {
		t.Errorf("expected epoch 32, got %q", pkgs[1].Epoch)
	}
}

func TestBasearchFolding(t *testing.T) {
	cases := map[string]string{
		"i686":    "i386",
		"athlon":  "i386",
		"x86_64":  "x86_64",
		"amd64":   "x86_64",
		"armv7hl": "armhfp",
		"armv7l":  "arm",
		"aarch64": "aarch64",
		"ppc64le": "ppc64le",
		"s390x":   "s390x",
	}
	for arch, want := range cases {
		if got := basearchFor(arch); got != want {
			t.Errorf("basearchFor(%q) = %q, want %q", arch, got, want)
		}
	}
}

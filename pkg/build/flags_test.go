package build

import "testing"

func TestInitializeDefaults(t *testing.T) {
	// No ldflags in test builds: Initialize must leave the dev defaults.
	Initialize()

	flags := GetBuildFlags()
	if flags.Name != "cascade" {
		t.Errorf("expected default name cascade, got %q", flags.Name)
	}
	if flags.Version != "dev" {
		t.Errorf("expected dev version, got %q", flags.Version)
	}
}

func TestInitializeOverrides(t *testing.T) {
	buildName = "cascade-test"
	buildVersion = "1.2.3"
	defer func() {
		buildName = ""
		buildVersion = ""
		buildFlags.Name = "cascade"
		buildFlags.Version = "dev"
	}()

	Initialize()

	flags := GetBuildFlags()
	if flags.Name != "cascade-test" {
		t.Errorf("ldflags name not applied, got %q", flags.Name)
	}
	if flags.Version != "1.2.3" {
		t.Errorf("ldflags version not applied, got %q", flags.Version)
	}
	if flags.Commit != "dev" {
		t.Errorf("unset commit should stay dev, got %q", flags.Commit)
	}
}

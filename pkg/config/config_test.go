package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, yamlBody string) string {
	t.Helper()
	path := filepath.Join(dir, "oasgen.yaml")
	if err := os.WriteFile(path, []byte(yamlBody), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadRequiresSpec(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "output:\n  path: ./out\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a missing spec field")
	}
}

func TestLoadAbsolutizesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "spec: ./openapi.yaml\noutput:\n  path: ./out\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !filepath.IsAbs(cfg.Spec) {
		t.Errorf("cfg.Spec = %q, want an absolute path", cfg.Spec)
	}
	if !filepath.IsAbs(cfg.Output.Path) {
		t.Errorf("cfg.Output.Path = %q, want an absolute path", cfg.Output.Path)
	}
}

func TestLoadKeepsRemoteSpecAsIs(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "spec: https://example.com/openapi.yaml\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Spec != "https://example.com/openapi.yaml" {
		t.Errorf("cfg.Spec = %q, want the URL unchanged", cfg.Spec)
	}
}

func TestLoadRejectsIncompleteClient(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `spec: ./openapi.yaml
clients:
  - type: typescript
    outDir: ./sdk
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a client missing packageName/name")
	}
}

func TestShouldExcludeFileMatchesPrefixAndExact(t *testing.T) {
	c := &Client{OutDir: "/out", ExcludeFiles: []string{"internal", "models/secret.ts"}}

	if !c.ShouldExcludeFile("/out/internal/helper.ts") {
		t.Error("expected a file under the excluded internal/ directory to be excluded")
	}
	if !c.ShouldExcludeFile("/out/models/secret.ts") {
		t.Error("expected an exact exclude match to be excluded")
	}
	if c.ShouldExcludeFile("/out/models/public.ts") {
		t.Error("expected a non-matching file to be kept")
	}
}

func TestShouldExcludeFileWithNoPatternsExcludesNothing(t *testing.T) {
	c := &Client{OutDir: "/out"}
	if c.ShouldExcludeFile("/out/anything.ts") {
		t.Error("expected no exclude patterns to exclude nothing")
	}
}

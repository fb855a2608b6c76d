package staticcatalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFallsBackToBuiltinTables(t *testing.T) {
	p := &Provider{Root: t.TempDir()}

	c, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Weather) == 0 || len(c.Events) == 0 || len(c.Animals) == 0 {
		t.Fatalf("expected built-in tables, got %+v", c)
	}

	lms, err := p.Landmarks(context.Background())
	if err != nil {
		t.Fatalf("landmarks: %v", err)
	}
	if len(lms) == 0 {
		t.Fatalf("expected built-in route")
	}
}

func TestLoadOverridesOnlyDeclaredSections(t *testing.T) {
	dir := t.TempDir()
	catalogYAML := `
weather:
  - id: always-clear
    name: Clear
    weight: 1
`
	if err := os.WriteFile(filepath.Join(dir, "catalogs.yaml"), []byte(catalogYAML), 0o644); err != nil {
		t.Fatalf("write catalogs.yaml: %v", err)
	}

	p := &Provider{Root: dir}
	c, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Weather) != 1 || c.Weather[0].ID != "always-clear" {
		t.Fatalf("expected weather override, got %+v", c.Weather)
	}
	if len(c.Events) == 0 {
		t.Fatalf("expected built-in events to survive a weather-only override")
	}
}

func TestLoadRouteFile(t *testing.T) {
	dir := t.TempDir()
	routeYAML := `
landmarks:
  - id: test-ford
    name: Test Ford
    mile: 50
    hazard:
      kind: river
      depth_ft: 2.0
      width_ft: 300
      current: slow
`
	if err := os.WriteFile(filepath.Join(dir, "route.yaml"), []byte(routeYAML), 0o644); err != nil {
		t.Fatalf("write route.yaml: %v", err)
	}

	p := &Provider{Root: dir}
	lms, err := p.Landmarks(context.Background())
	if err != nil {
		t.Fatalf("landmarks: %v", err)
	}
	if len(lms) != 1 || lms[0].ID != "test-ford" {
		t.Fatalf("expected authored route, got %+v", lms)
	}
	if lms[0].Hazard == nil || lms[0].Hazard.DepthFt != 2.0 {
		t.Fatalf("expected hazard params to decode, got %+v", lms[0].Hazard)
	}
}

func TestLoadIsMemoized(t *testing.T) {
	dir := t.TempDir()
	routeYAML := "landmarks:\n  - id: one\n    name: One\n    mile: 10\n"
	path := filepath.Join(dir, "route.yaml")
	if err := os.WriteFile(path, []byte(routeYAML), 0o644); err != nil {
		t.Fatalf("write route.yaml: %v", err)
	}

	p := &Provider{Root: dir}
	first, _ := p.Landmarks(context.Background())

	// Rewriting the file after the first load must not change results.
	if err := os.WriteFile(path, []byte("landmarks:\n  - id: two\n    name: Two\n    mile: 20\n"), 0o644); err != nil {
		t.Fatalf("rewrite route.yaml: %v", err)
	}
	second, _ := p.Landmarks(context.Background())
	if len(first) != 1 || len(second) != 1 || first[0].ID != second[0].ID {
		t.Fatalf("expected memoized load, got %+v then %+v", first, second)
	}
}

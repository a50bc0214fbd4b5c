package study

import "testing"

func TestCatalogModules(t *testing.T) {
	c := NewCatalog()
	modules := c.Modules()

	if len(modules) != 6 {
		t.Fatalf("expected 6 modules, got %d", len(modules))
	}

	// The catalog follows the recommended study order.
	wantOrder := []string{
		"introduction",
		"risk_categories",
		"prohibited_uses",
		"high-risk_obligations",
		"gpai_models",
		"penalties_and_enforcement",
	}
	for i, key := range wantOrder {
		if modules[i].Key != key {
			t.Errorf("module %d key = %q, want %q", i, modules[i].Key, key)
		}
	}

	for _, m := range modules {
		if m.Name == "" || m.Summary == "" || m.Question == "" {
			t.Errorf("module %q has empty fields", m.Key)
		}
	}
}

func TestCatalogLookup(t *testing.T) {
	c := NewCatalog()

	m, err := c.Lookup("gpai_models")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if m.Name != "GPAI Models" {
		t.Errorf("unexpected module name %q", m.Name)
	}

	if _, err := c.Lookup("nonexistent"); err == nil {
		t.Error("expected error for unknown module key")
	}
}

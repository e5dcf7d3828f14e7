package config

import (
	"strings"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	doc := `
store:
  root: hfs:///var/lib/batchvault
  name: test
`
	c, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Store.Algorithm != "sha1" {
		t.Fatalf("Algorithm = %q, want sha1 default", c.Store.Algorithm)
	}
	if c.Log.Level != "info" {
		t.Fatalf("Log.Level = %q, want info default", c.Log.Level)
	}
}

func TestParseMissingRoot(t *testing.T) {
	doc := `
store:
  name: test
`
	if _, err := Parse(strings.NewReader(doc)); err == nil {
		t.Fatal("expected error for missing store.root")
	}
}

func TestParseEnvOverride(t *testing.T) {
	t.Setenv("BATCHVAULT_STORE_NAME", "from-env")

	doc := `
store:
  root: memory://
  name: from-yaml
`
	c, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Store.Name != "from-env" {
		t.Fatalf("Store.Name = %q, want from-env", c.Store.Name)
	}
}

func TestParseInvalidLoglevel(t *testing.T) {
	doc := `
log:
  level: verbose
store:
  root: memory://
  name: test
`
	if _, err := Parse(strings.NewReader(doc)); err == nil {
		t.Fatal("expected error for invalid loglevel")
	}
}


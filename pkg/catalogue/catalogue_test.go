package catalogue

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leapview/pkg/scenario"
)

func TestLoadEmptyPathReturnsBuiltin(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("builtin catalogue should not be empty")
	}

	want := map[string]bool{"Row": true, "Column": true, "Text": true, "List": true}
	for _, name := range got {
		delete(want, name)
	}
	if len(want) != 0 {
		t.Errorf("builtin catalogue missing %v", want)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogue.yaml")
	content := "components:\n  - Text\n  - Row\n  - Chart.Line\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 || got[2] != "Chart.Line" {
		t.Errorf("Load = %v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var cerr *scenario.Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *scenario.Error, got %T", err)
	}
	if cerr.Code != scenario.CodeIO {
		t.Errorf("code = %q, want %q", cerr.Code, scenario.CodeIO)
	}
}

func TestLoadEmptyCatalogue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogue.yaml")
	if err := os.WriteFile(path, []byte("components: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty catalogue")
	}
}

package web

import (
	"io/fs"
	"testing"
)

func TestEmbeddedAssets(t *testing.T) {
	for _, name := range []string{"client.js", "style.css"} {
		if _, err := fs.Stat(Static(), name); err != nil {
			t.Errorf("expected static/%s to be embedded: %v", name, err)
		}
	}

	matches, err := fs.Glob(Templates(), "templates/*.html")
	if err != nil || len(matches) == 0 {
		t.Fatalf("expected embedded templates, got %v (%v)", matches, err)
	}
}

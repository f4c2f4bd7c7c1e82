package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/chartgeom/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct {
		name string
		xdg  string
		want string
	}{
		{"default", "", filepath.Join(home, ".cache", appName)},
		{"xdg", "/tmp/custom-cache", filepath.Join("/tmp/custom-cache", appName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			dir, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if dir != tt.want {
				t.Errorf("cacheDir() = %q, want %q", dir, tt.want)
			}
		})
	}
}

func TestOpenCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	ctx := context.Background()

	c, err := openCache(ctx, cacheFlags{noCache: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("--no-cache gave %T, want *cache.NullCache", c)
	}

	c, err = openCache(ctx, cacheFlags{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("default cache is %T, want *cache.FileCache", c)
	}
}

func TestCacheKeyer(t *testing.T) {
	opts := cache.GeometryKeyOpts{Version: "v1"}
	plain := cacheFlags{}.keyer().GeometryKey("abc", opts)
	scoped := cacheFlags{scope: "staging"}.keyer().GeometryKey("abc", opts)
	if scoped != "staging:"+plain {
		t.Errorf("scoped key = %q, want %q", scoped, "staging:"+plain)
	}
}

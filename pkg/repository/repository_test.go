package repository

import (
	"os"
	"path/filepath"
	"testing"
)

func rpMkdirs(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.MkdirAll(filepath.Join(root, n), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", n, err)
		}
	}
}

func TestListMissingDirectory(t *testing.T) {
	themes, err := List(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if themes == nil || len(themes) != 0 {
		t.Errorf("List() = %v, want empty non-nil slice", themes)
	}
}

func TestListSortsCaseInsensitively(t *testing.T) {
	root := t.TempDir()
	rpMkdirs(t, root, "Zeta", "alpha", "Beta")

	themes, err := List(root)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := []string{"alpha", "Beta", "Zeta"}
	if len(themes) != len(want) {
		t.Fatalf("got %d themes, want %d", len(themes), len(want))
	}
	for i, name := range want {
		if themes[i].Name != name {
			t.Errorf("themes[%d].Name = %q, want %q", i, themes[i].Name, name)
		}
		if themes[i].Path != filepath.Join(root, name) {
			t.Errorf("themes[%d].Path = %q", i, themes[i].Path)
		}
	}
}

func TestListSkipsFiles(t *testing.T) {
	root := t.TempDir()
	rpMkdirs(t, root, "Dark")
	if err := os.WriteFile(filepath.Join(root, ".theme"), []byte("current = Dark\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "stray.zip"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	themes, err := List(root)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(themes) != 1 || themes[0].Name != "Dark" {
		t.Errorf("List() = %v, want only Dark", themes)
	}
}

func TestListFollowsDirectorySymlinks(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(t.TempDir(), "shared")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, filepath.Join(root, "Linked")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	themes, err := List(root)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(themes) != 1 || themes[0].Name != "Linked" {
		t.Errorf("List() = %v, want Linked", themes)
	}
}

func TestFindIgnoresCase(t *testing.T) {
	themes := []Theme{{Path: "/t/Dark", Name: "Dark"}, {Path: "/t/light", Name: "light"}}

	th, ok := Find(themes, "dARK")
	if !ok {
		t.Fatal("expected to find Dark")
	}
	if th.Name != "Dark" {
		t.Errorf("Find().Name = %q, want %q", th.Name, "Dark")
	}

	if _, ok := Find(themes, "solarized"); ok {
		t.Error("expected miss for unknown theme")
	}
}

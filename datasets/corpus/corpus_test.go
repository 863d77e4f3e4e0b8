package corpus

import "bytes"
import "os"
import "path/filepath"
import "testing"

import "github.com/plushed/classifier/config"

func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func makeTree(t *testing.T, root string, counts map[string]int) {
	t.Helper()
	for dir, n := range counts {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		for i := 0; i < n; i++ {
			mustWrite(t, filepath.Join(root, dir, "img"+string(rune('a'+i))+".jpg"))
		}
	}
}

func TestInspectCountsEveryClass(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]int{
		"train/android":      7,
		"train/other":        5,
		"validation/android": 2,
		"validation/other":   3,
	})
	mustWrite(t, filepath.Join(root, "train", "android", "notes.txt"))
	mustWrite(t, filepath.Join(root, "train", "other", "nested", "deep.jpg"))

	cfg := config.Default()
	cfg.Root = root
	c, err := Inspect(cfg)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if c.Train != (Counts{A: 7, B: 5, Total: 12}) {
		t.Errorf("train counts %+v", c.Train)
	}
	if c.Validation != (Counts{A: 2, B: 3, Total: 5}) {
		t.Errorf("validation counts %+v", c.Validation)
	}
	if c.TrainDir != filepath.Join(root, "train") || c.ValidationDir != filepath.Join(root, "validation") {
		t.Errorf("dirs %q %q", c.TrainDir, c.ValidationDir)
	}

	var buf bytes.Buffer
	c.Print(&buf)
	want := "Training: 7 Android, 5 other, 12 total\nValidation: 2 Android, 3 other, 5 total\n"
	if buf.String() != want {
		t.Errorf("Print = %q, want %q", buf.String(), want)
	}
}

func TestInspectMissingTree(t *testing.T) {
	cfg := config.Default()
	cfg.Root = filepath.Join(t.TempDir(), "nothing")
	if _, err := Inspect(cfg); err == nil {
		t.Errorf("expected error for missing corpus")
	}
}

func TestInspectMissingClass(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]int{
		"train/android":      1,
		"validation/android": 1,
		"validation/other":   1,
	})
	cfg := config.Default()
	cfg.Root = root
	if _, err := Inspect(cfg); err == nil {
		t.Errorf("expected error for missing class directory")
	}
}

func TestClassesRoundTrip(t *testing.T) {
	c, err := NewClasses([]string{"other", "android"})
	if err != nil {
		t.Fatalf("NewClasses: %v", err)
	}
	if c[0] != "android" || c[1] != "other" {
		t.Errorf("classes not sorted: %v", c)
	}
	for _, name := range []string{"android", "other"} {
		i, ok := c.Index(name)
		if !ok || c.Name(i) != name {
			t.Errorf("round trip of %q gave %d %q", name, i, c.Name(i))
		}
	}
	if _, ok := c.Index("cat"); ok {
		t.Errorf("unknown class resolved")
	}
	var hot [2]float32
	c.OneHot(1, hot[:])
	if hot != [2]float32{0, 1} {
		t.Errorf("one hot %v", hot)
	}
	if _, err := NewClasses([]string{"a"}); err == nil {
		t.Errorf("expected error for one class")
	}
}

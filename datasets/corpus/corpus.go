// Package corpus implements the inspection of the labeled image directory tree
package corpus

import "fmt"
import "io"
import "os"
import "path/filepath"
import "sort"
import "unicode"
import "unicode/utf8"

import "github.com/plushed/classifier/config"

// Counts is the number of images of each class in one split. A counts the
// first class (android), B the second (other).
type Counts struct {
	A, B  int
	Total int
}

// Corpus describes the training and validation splits on disk.
type Corpus struct {
	TrainDir      string
	ValidationDir string
	Train         Counts
	Validation    Counts
	Classes       Classes
}

// Inspect counts the images of both classes in both splits. A missing split
// or class directory is an error.
func Inspect(cfg *config.Config) (Corpus, error) {
	classes, err := NewClasses(cfg.Classes)
	if err != nil {
		return Corpus{}, err
	}
	c := Corpus{
		TrainDir:      cfg.TrainPath(),
		ValidationDir: cfg.ValidationPath(),
		Classes:       classes,
	}
	if c.Train, err = Count(c.TrainDir, classes, cfg.Pattern); err != nil {
		return Corpus{}, err
	}
	if c.Validation, err = Count(c.ValidationDir, classes, cfg.Pattern); err != nil {
		return Corpus{}, err
	}
	return c, nil
}

// Count counts the images of each class below one split directory.
func Count(dir string, classes Classes, pattern string) (Counts, error) {
	var n [2]int
	for i, class := range classes {
		files, err := List(filepath.Join(dir, class), pattern)
		if err != nil {
			return Counts{}, err
		}
		n[i] = len(files)
	}
	return Counts{A: n[0], B: n[1], Total: n[0] + n[1]}, nil
}

// List returns the sorted paths of the regular files directly inside dir
// whose names match pattern.
func List(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", dir, err)
		}
		if ok {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Print writes the per split summary lines. The first class is capitalized,
// as in "Training: 7 Android, 5 other, 12 total".
func (c Corpus) Print(w io.Writer) {
	first := capitalize(c.Classes[0])
	fmt.Fprintf(w, "Training: %d %s, %d %s, %d total\n", c.Train.A, first, c.Train.B, c.Classes[1], c.Train.Total)
	fmt.Fprintf(w, "Validation: %d %s, %d %s, %d total\n", c.Validation.A, first, c.Validation.B, c.Classes[1], c.Validation.Total)
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

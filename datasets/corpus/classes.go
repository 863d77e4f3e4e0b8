package corpus

import "fmt"
import "sort"

// Classes is the two-class taxonomy. Index order is the sorted order of the
// names, which is the order a directory listing yields, so every loader that
// receives the same Classes agrees on the label of each directory.
type Classes [2]string

// NewClasses validates and orders two class names.
func NewClasses(names []string) (Classes, error) {
	if len(names) != 2 {
		return Classes{}, fmt.Errorf("corpus: need exactly two classes, got %d", len(names))
	}
	if names[0] == "" || names[1] == "" || names[0] == names[1] {
		return Classes{}, fmt.Errorf("corpus: classes must be two distinct names, got %q", names)
	}
	var c Classes
	copy(c[:], names)
	sort.Strings(c[:])
	return c, nil
}

// Len is always 2.
func (c Classes) Len() int {
	return len(c)
}

// Index returns the label index of a class name.
func (c Classes) Index(name string) (int, bool) {
	for i, v := range c {
		if v == name {
			return i, true
		}
	}
	return -1, false
}

// Name returns the class name of a label index.
func (c Classes) Name(index int) string {
	if index < 0 || index >= len(c) {
		return ""
	}
	return c[index]
}

// OneHot writes the one-hot encoding of index into dst, which must hold Len values.
func (c Classes) OneHot(index int, dst []float32) {
	for i := range c {
		dst[i] = 0
	}
	dst[index] = 1
}

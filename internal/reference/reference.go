package reference

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
)

// Category identifies a reference word-list such as "gluten" or "dairy".
type Category string

const (
	RedMeat Category = "red_meat"
	Seafood Category = "seafood"
	Eggs    Category = "eggs"
	Dairy   Category = "dairy"
	Gluten  Category = "gluten"
	Nuts    Category = "nuts"
)

// Categories returns every category the diet rules depend on.
func Categories() []Category {
	return []Category{RedMeat, Seafood, Eggs, Dairy, Gluten, Nuts}
}

// FileName returns the backing file name for the category.
func (c Category) FileName() string {
	return string(c) + ".txt"
}

// MissingReferenceFileError is returned when the backing list for a category
// cannot be found. Classification cannot proceed without it.
type MissingReferenceFileError struct {
	Category Category
	Location string
	Err      error
}

func (e *MissingReferenceFileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("reference list for %q not found at %s: %v", e.Category, e.Location, e.Err)
	}
	return fmt.Sprintf("reference list for %q not found at %s", e.Category, e.Location)
}

func (e *MissingReferenceFileError) Unwrap() error {
	return e.Err
}

// ReferenceData holds the normalized phrase lists for every loaded category.
// It is built once and never modified, so it may be shared across goroutines.
type ReferenceData struct {
	lists       map[Category][]string
	fingerprint string
}

// New builds ReferenceData from raw lists. Phrases are lowercased and trimmed,
// and empty phrases are dropped.
func New(lists map[Category][]string) *ReferenceData {
	d := &ReferenceData{lists: make(map[Category][]string, len(lists))}
	for category, phrases := range lists {
		normalized := make([]string, 0, len(phrases))
		for _, p := range phrases {
			if p = Normalize(p); p != "" {
				normalized = append(normalized, p)
			}
		}
		d.lists[category] = normalized
	}
	d.fingerprint = d.computeFingerprint()
	return d
}

// Normalize lowercases a phrase and trims surrounding whitespace.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// Phrases returns a copy of the phrases for a category, in file order.
func (d *ReferenceData) Phrases(c Category) []string {
	return slices.Clone(d.lists[c])
}

// Has reports whether the category was loaded.
func (d *ReferenceData) Has(c Category) bool {
	_, ok := d.lists[c]
	return ok
}

// Contains reports whether any phrase of the category is a substring of text.
// text is expected to be lowercased already.
func (d *ReferenceData) Contains(c Category, text string) bool {
	for _, phrase := range d.lists[c] {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// Fingerprint identifies the exact content of the loaded lists.
func (d *ReferenceData) Fingerprint() string {
	return d.fingerprint
}

func (d *ReferenceData) computeFingerprint() string {
	keys := make([]string, 0, len(d.lists))
	for c := range d.lists {
		keys = append(keys, string(c))
	}
	slices.Sort(keys)

	h := sha256.New()
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{0})
		for _, p := range d.lists[Category(k)] {
			h.Write([]byte(p))
			h.Write([]byte{'\n'})
		}
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

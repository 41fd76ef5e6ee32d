package collector

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Membership lists the facets a recipe appears under, by group.
type Membership struct {
	Courses    []string
	FoodGroups []string
	Cuisines   []string
}

// CategoryIndex maps recipe links to the facets they were listed under.
type CategoryIndex struct {
	groups map[Group]map[string]map[string]struct{}
}

// LoadCategoryIndex reads <dir>/<group>/<name>.txt for every group. A missing
// group directory leaves that group empty.
func LoadCategoryIndex(dir string) (*CategoryIndex, error) {
	idx := &CategoryIndex{groups: map[Group]map[string]map[string]struct{}{}}

	for _, group := range Groups() {
		idx.groups[group] = map[string]map[string]struct{}{}

		groupDir := filepath.Join(dir, string(group))
		entries, err := os.ReadDir(groupDir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", groupDir, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
				continue
			}
			links, err := ReadLinks(filepath.Join(groupDir, entry.Name()))
			if err != nil {
				return nil, err
			}
			set := make(map[string]struct{}, len(links))
			for _, link := range links {
				set[link] = struct{}{}
			}
			idx.groups[group][strings.TrimSuffix(entry.Name(), ".txt")] = set
		}
	}
	return idx, nil
}

// Lookup returns the facets that list the link, sorted by name.
func (idx *CategoryIndex) Lookup(link string) Membership {
	return Membership{
		Courses:    idx.names(Courses, link),
		FoodGroups: idx.names(FoodGroups, link),
		Cuisines:   idx.names(Cuisines, link),
	}
}

func (idx *CategoryIndex) names(group Group, link string) []string {
	names := []string{}
	if idx == nil {
		return names
	}
	for name, links := range idx.groups[group] {
		if _, ok := links[link]; ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

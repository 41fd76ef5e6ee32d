package collector

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// maxListingPages stops a listing that never runs out of pages
const maxListingPages = 500

// PageGetter is the part of Fetcher the collector needs
type PageGetter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// CollectLinks walks the listing from page 0 until a page has no results.
// listURL must end where the page number goes.
func CollectLinks(ctx context.Context, getter PageGetter, listURL, baseURL string) ([]string, error) {
	var all []string
	for page := 0; page < maxListingPages; page++ {
		pageURL := listURL + strconv.Itoa(page)
		body, err := getter.Get(ctx, pageURL)
		if err != nil {
			return all, err
		}

		links, err := ParseListing(bytes.NewReader(body), baseURL)
		if errors.Is(err, ErrEndOfListing) {
			log.Printf("[Collector] %d recipe links from %s", len(all), listURL)
			return all, nil
		}
		if err != nil {
			return all, fmt.Errorf("page %d: %w", page, err)
		}
		all = append(all, links...)
	}
	return all, fmt.Errorf("listing %s did not end after %d pages", listURL, maxListingPages)
}

// CollectFacetLinks collects the links of every facet and writes them to
// <dir>/<group>/<facet name>.txt
func CollectFacetLinks(ctx context.Context, getter PageGetter, baseURL, dir string) error {
	for _, facet := range Facets() {
		links, err := CollectLinks(ctx, getter, facet.ListingURL(baseURL), baseURL)
		if err != nil {
			return fmt.Errorf("%s %q: %w", facet.Group, facet.Name, err)
		}
		path := filepath.Join(dir, string(facet.Group), facet.Name+".txt")
		if err := WriteLinks(path, links); err != nil {
			return err
		}
	}
	return nil
}

// WriteLinks writes one link per line, creating parent directories.
func WriteLinks(path string, links []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	var buf bytes.Buffer
	for _, link := range links {
		buf.WriteString(link)
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write links to %s: %w", path, err)
	}
	return nil
}

// ReadLinks reads a link file written by WriteLinks, ignoring blank lines.
func ReadLinks(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var links []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			links = append(links, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return links, nil
}

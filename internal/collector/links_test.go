package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGetter serves canned bodies by URL
type fakeGetter struct {
	pages map[string][]byte
	err   error
}

func (g *fakeGetter) Get(_ context.Context, url string) ([]byte, error) {
	if body, ok := g.pages[url]; ok {
		return body, nil
	}
	if g.err != nil {
		return nil, g.err
	}
	return nil, &StatusError{URL: url, StatusCode: http.StatusNotFound}
}

func TestCollectLinksPaginates(t *testing.T) {
	listURL := AllRecipesURL(testBaseURL)
	getter := &fakeGetter{pages: map[string][]byte{
		listURL + "0": readFixture(t, "listing.html"),
		listURL + "1": readFixture(t, "listing.html"),
		listURL + "2": readFixture(t, "listing_end.html"),
	}}

	links, err := CollectLinks(context.Background(), getter, listURL, testBaseURL)
	require.NoError(t, err)
	assert.Len(t, links, 4)
	assert.Equal(t, "https://www.myplate.gov/recipes/black-bean-soup", links[0])
}

func TestCollectLinksStopsOnFetchError(t *testing.T) {
	listURL := AllRecipesURL(testBaseURL)
	getter := &fakeGetter{
		pages: map[string][]byte{listURL + "0": readFixture(t, "listing.html")},
		err:   errors.New("connection reset"),
	}

	links, err := CollectLinks(context.Background(), getter, listURL, testBaseURL)
	assert.Error(t, err)
	assert.Len(t, links, 2)
}

func TestCollectFacetLinks(t *testing.T) {
	pages := map[string][]byte{}
	for _, facet := range Facets() {
		pages[facet.ListingURL(testBaseURL)+"0"] = readFixture(t, "listing_end.html")
	}
	breakfast := Facet{Group: Courses, Name: "Breakfast", Filter: "course", ID: "119"}
	pages[breakfast.ListingURL(testBaseURL)+"0"] = readFixture(t, "listing.html")
	pages[breakfast.ListingURL(testBaseURL)+"1"] = readFixture(t, "listing_end.html")

	dir := t.TempDir()
	require.NoError(t, CollectFacetLinks(context.Background(), &fakeGetter{pages: pages}, testBaseURL, dir))

	links, err := ReadLinks(filepath.Join(dir, "courses", "Breakfast.txt"))
	require.NoError(t, err)
	assert.Len(t, links, 2)

	idx, err := LoadCategoryIndex(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Breakfast"}, idx.Lookup("https://www.myplate.gov/recipes/shrimp-tacos").Courses)
}

func TestFacetListingURL(t *testing.T) {
	f := Facet{Group: Cuisines, Name: "Southern", Filter: "cuisine", ID: "138"}
	assert.Equal(t, "https://www.myplate.gov/myplate-kitchen/recipes?f%5B0%5D=cuisine%3A138&page=", f.ListingURL(testBaseURL))
}

func TestWriteAndReadLinks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "links.txt")
	require.NoError(t, WriteLinks(path, []string{"a", "b"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(data))

	require.NoError(t, os.WriteFile(path, []byte("a\n\n  b  \n"), 0o644))
	links, err := ReadLinks(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, links)
}

func TestFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		assert.Contains(t, r.UserAgent(), "Mozilla")
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	fetcher := NewFetcher(5 * time.Second)

	body, err := fetcher.Get(context.Background(), srv.URL+"/recipes/x")
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", string(body))

	_, err = fetcher.Get(context.Background(), srv.URL+"/missing")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

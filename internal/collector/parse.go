package collector

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

// ErrEndOfListing is returned by ParseListing when the page has no result
// block, which is how the listing signals the page after the last one.
var ErrEndOfListing = errors.New("end of listing")

// Page is the content extracted from one recipe page.
type Page struct {
	Title         string
	URL           string
	ImageURL      string
	Servings      string
	Description   string
	Ingredients   []string
	Instructions  []string
	NutritionInfo map[string]string
}

// ParseListing returns the absolute recipe links of one listing page.
func ParseListing(r io.Reader, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing: %w", err)
	}

	results := doc.Find(".view-content").First()
	if results.Length() == 0 {
		return nil, ErrEndOfListing
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}

	links := []string{}
	results.Find(".mp-recipe-teaser__title a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		links = append(links, base.ResolveReference(ref).String())
	})
	return links, nil
}

// ParseRecipePage extracts a recipe from its page. Missing optional parts are
// left empty; a page without a recipe article or title is an error.
func ParseRecipePage(r io.Reader, pageURL string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recipe page: %w", err)
	}

	article := doc.Find("article.mp-recipe-full__article").First()
	if article.Length() == 0 {
		return nil, fmt.Errorf("no recipe article on %s", pageURL)
	}

	page := &Page{
		URL:           pageURL,
		Title:         cleanText(article.Find("h1.mp-recipe-full__title").First().Text()),
		Description:   cleanText(article.Find(".mp-recipe-full__description").First().Text()),
		Ingredients:   []string{},
		Instructions:  []string{},
		NutritionInfo: map[string]string{},
	}
	if page.Title == "" {
		return nil, fmt.Errorf("no recipe title on %s", pageURL)
	}

	servings := cleanText(article.Find(".mp-recipe-full__overview .mp-recipe-full__detail--data").First().Text())
	if fields := strings.Fields(servings); len(fields) > 0 {
		page.Servings = fields[0]
	}

	if src, ok := article.Find("img.image-style-recipe-525-x-350-").First().Attr("src"); ok {
		page.ImageURL = resolve(pageURL, src)
	}

	details := article.Find(".mp-recipe-full__details")
	details.Find(".field--name-field-ingredients li").Each(func(_ int, li *goquery.Selection) {
		if line := cleanText(li.Text()); line != "" {
			page.Ingredients = append(page.Ingredients, line)
		}
	})
	details.Find(".field--name-field-instructions li").Each(func(_ int, li *goquery.Selection) {
		if step := cleanText(li.Text()); step != "" {
			page.Instructions = append(page.Instructions, step)
		}
	})

	rows := doc.Find(".panel.panel-expanded tbody tr")
	if rows.Length() == 0 {
		rows = doc.Find(".nutrition tbody tr")
	}
	rows.Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < 2 {
			return
		}
		name := cleanText(cells.Eq(0).Text())
		value := cleanText(cells.Eq(1).Text())
		if name != "" && value != "" {
			page.NutritionInfo[name] = value
		}
	})

	return page, nil
}

// cleanText composes accented characters so "crème" always has one spelling
// and collapses every run of whitespace, including non-breaking spaces, into a
// single space.
func cleanText(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

func resolve(pageURL, ref string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}

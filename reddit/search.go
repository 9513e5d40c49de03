package reddit

import (
	"log"
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// SearchPath returns the site-wide search path for term, or the
// subreddit-restricted one when subreddit is set.
func SearchPath(term, subreddit string) string {
	q := url.QueryEscape(term)
	if subreddit == "" {
		return "/search?q=" + q
	}
	return "/r/" + url.PathEscape(subreddit) + "/search?q=" + q + "&restrict_sr=on"
}

// ExtractResultLinks returns the result links of a search page in document
// order. Relative links are resolved against pageURL when it is non-nil.
func ExtractResultLinks(doc *goquery.Document, pageURL *url.URL) (links []string, err error) {
	header := doc.Find("header.search-result-group-header").First()
	if header.Length() == 0 {
		return nil, ErrNoResults
	}

	header.Parent().Find("a.search-title[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		links = append(links, resolve(pageURL, href))
	})

	if len(links) == 0 {
		return nil, ErrNoResults
	}
	return
}

func resolve(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		log.Printf("Failed to parse href %q: %v", href, err)
		return href
	}
	return base.ResolveReference(ref).String()
}

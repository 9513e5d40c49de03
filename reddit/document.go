package reddit

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Parse builds a queryable document from raw page markup.
func Parse(raw []byte) (*goquery.Document, error) {
	root, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromNode(root), nil
}

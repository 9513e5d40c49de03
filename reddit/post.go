package reddit

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/zvonler/pitchpulse/model"
)

// AssemblePost builds the Post for a fetched thread page. Entries inside the
// main post container belong to the head and are never counted as comments.
func AssemblePost(doc *goquery.Document, sourceURL string, requireDate bool) (post model.Post, err error) {
	post.URL = sourceURL
	post.Title = optionalText(doc.Find("p.title"))

	head := doc.Find("div.sitetable").First()
	if post.Post, _, err = ExtractEntry(head, Head, requireDate); err != nil {
		return post, fmt.Errorf("%s: head entry: %w", sourceURL, err)
	}

	post.Comments = make([]model.Entry, 0)
	doc.Find("div.entry").NotSelection(head.Find("div.entry")).EachWithBreak(
		func(i int, sel *goquery.Selection) bool {
			var comment model.Entry
			var ok bool
			if comment, ok, err = ExtractEntry(sel, Comment, requireDate); err != nil {
				err = fmt.Errorf("%s: entry %d: %w", sourceURL, i, err)
				return false
			}
			if ok {
				post.Comments = append(post.Comments, comment)
			}
			return true
		})
	return
}

package reddit

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/zvonler/pitchpulse/model"
)

type EntryKind int

const (
	// Head is the opening post of a thread.
	Head EntryKind = iota
	Comment
)

func (k EntryKind) String() string {
	if k == Head {
		return "head"
	}
	return "comment"
}

type entrySelectors struct {
	score, likes, dislikes string
	// Comment scores read "42 points"; only the number is kept
	leadingToken bool
}

var selectorsByKind = map[EntryKind]entrySelectors{
	Head: {
		score:    "div.score.unvoted",
		likes:    "div.score.likes",
		dislikes: "div.score.dislikes",
	},
	Comment: {
		score:        "span.score.unvoted",
		likes:        "span.score.likes",
		dislikes:     "span.score.dislikes",
		leadingToken: true,
	},
}

// ExtractEntry reads one entry out of sel. For Head, sel is the main post
// container. For Comment, sel is a div.entry node and ok is false when the
// entry has no renderable body (deleted and removed comments).
func ExtractEntry(sel *goquery.Selection, kind EntryKind, requireDate bool) (entry model.Entry, ok bool, err error) {
	var meta *goquery.Selection

	switch kind {
	case Head:
		entry.Body = bodyText(sel.Find("div.expando"))
		meta = sel
	case Comment:
		if !HasBody(sel) {
			return entry, false, nil
		}
		entry.Body = bodyText(sel.Find("div.usertext-body").First().Find("p"))
		meta = sel.Find("p.tagline").First()
	}

	sels := selectorsByKind[kind]
	entry.Score = points(optionalText(meta.Find(sels.score)), sels.leadingToken)
	entry.Likes = points(optionalText(meta.Find(sels.likes)), sels.leadingToken)
	entry.Dislikes = points(optionalText(meta.Find(sels.dislikes)), sels.leadingToken)
	entry.Author = optionalText(meta.Find("a.author"))
	entry.Date = optionalAttr(meta.Find("time[title]"), "title")

	if entry.Date == nil && requireDate {
		return entry, false, ErrMissingDate
	}
	return entry, true, nil
}

// HasBody reports whether a comment entry carries a usertext body.
func HasBody(sel *goquery.Selection) bool {
	return sel.Find("div.usertext-body").Length() > 0
}

func optionalText(sel *goquery.Selection) *string {
	if sel.Length() == 0 {
		return nil
	}
	return model.StringPtr(sel.First().Text())
}

func optionalAttr(sel *goquery.Selection, attr string) *string {
	if val, exists := sel.First().Attr(attr); exists {
		return &val
	}
	return nil
}

func bodyText(sel *goquery.Selection) string {
	return strings.TrimSpace(model.Deref(optionalText(sel)))
}

func points(text *string, leadingToken bool) *string {
	if text == nil || !leadingToken {
		return text
	}
	if fields := strings.Fields(*text); len(fields) > 0 {
		return &fields[0]
	}
	return text
}

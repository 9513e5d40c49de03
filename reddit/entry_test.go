package reddit

import (
	"os"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"github.com/zvonler/pitchpulse/model"
)

func loadDocument(t *testing.T, path string) *goquery.Document {
	raw, err := os.ReadFile(path)
	require.Equal(t, nil, err)
	doc, err := Parse(raw)
	require.Equal(t, nil, err)
	return doc
}

func parseString(t *testing.T, markup string) *goquery.Document {
	doc, err := Parse([]byte(markup))
	require.Equal(t, nil, err)
	return doc
}

func TestExtractHeadEntry(t *testing.T) {
	doc := loadDocument(t, "testdata/post.html")

	entry, ok, err := ExtractEntry(doc.Find("div.sitetable").First(), Head, true)
	require.Equal(t, nil, err)
	require.True(t, ok)
	require.Equal(t, "Who wins the derby?", entry.Body)
	require.Equal(t, model.StringPtr("1234"), entry.Score)
	require.Equal(t, model.StringPtr("1235"), entry.Likes)
	require.Equal(t, model.StringPtr("1233"), entry.Dislikes)
	require.Equal(t, model.StringPtr("gooner"), entry.Author)
	require.Equal(t, model.StringPtr("Sat Oct 17 14:02:11 2026 UTC"), entry.Date)
}

func TestExtractCommentEntry(t *testing.T) {
	doc := loadDocument(t, "testdata/post.html")

	entry, ok, err := ExtractEntry(doc.Find("#thing_t1_c1 > div.entry"), Comment, false)
	require.Equal(t, nil, err)
	require.True(t, ok)
	require.Equal(t, "Chelsea by two.", entry.Body)
	require.Equal(t, model.StringPtr("42"), entry.Score)
	require.Equal(t, model.StringPtr("43"), entry.Likes)
	require.Equal(t, model.StringPtr("41"), entry.Dislikes)
	require.Equal(t, model.StringPtr("blue_is_the_colour"), entry.Author)
	require.Equal(t, model.StringPtr("Sat Oct 17 15:00:00 2026 UTC"), entry.Date)
}

func TestCommentPointsLeadingToken(t *testing.T) {
	for _, text := range []string{"42 points", "42", " 42  points "} {
		markup := `<div class="entry"><p class="tagline"><span class="score unvoted">` + text +
			`</span></p><div class="usertext-body"><p>x</p></div></div>`
		entry, ok, err := ExtractEntry(parseString(t, markup).Find("div.entry"), Comment, false)
		require.Equal(t, nil, err)
		require.True(t, ok)
		require.Equal(t, model.StringPtr("42"), entry.Score, text)
	}
}

func TestHeadPointsKeepFullText(t *testing.T) {
	markup := `<div class="sitetable"><div class="score unvoted">42 points</div></div>`
	entry, _, err := ExtractEntry(parseString(t, markup).Find("div.sitetable"), Head, false)
	require.Equal(t, nil, err)
	require.Equal(t, model.StringPtr("42 points"), entry.Score)
}

func TestCommentWithoutBodyIsSkipped(t *testing.T) {
	doc := loadDocument(t, "testdata/post.html")

	sel := doc.Find("#thing_t1_c2 > div.entry")
	require.False(t, HasBody(sel))

	_, ok, err := ExtractEntry(sel, Comment, true)
	require.Equal(t, nil, err)
	require.False(t, ok)
}

func TestCommentBodyWithoutParagraph(t *testing.T) {
	markup := `<div class="entry"><div class="usertext-body"><div class="md"></div></div></div>`
	entry, ok, err := ExtractEntry(parseString(t, markup).Find("div.entry"), Comment, false)
	require.Equal(t, nil, err)
	require.True(t, ok)
	require.Equal(t, "", entry.Body)
}

func TestMissingFieldsAreNil(t *testing.T) {
	// No tagline at all
	markup := `<div class="entry"><div class="usertext-body"><p>orphan</p></div></div>`
	entry, ok, err := ExtractEntry(parseString(t, markup).Find("div.entry"), Comment, false)
	require.Equal(t, nil, err)
	require.True(t, ok)
	require.Equal(t, "orphan", entry.Body)
	require.Nil(t, entry.Score)
	require.Nil(t, entry.Likes)
	require.Nil(t, entry.Dislikes)
	require.Nil(t, entry.Author)
	require.Nil(t, entry.Date)

	entry, _, err = ExtractEntry(parseString(t, "<p>nothing</p>").Find("div.sitetable"), Head, false)
	require.Equal(t, nil, err)
	require.Equal(t, model.Entry{}, entry)
}

func TestTimeWithoutTitleIsIgnored(t *testing.T) {
	markup := `<div class="entry"><p class="tagline"><time datetime="x">now</time>` +
		`<time title="Sun Oct 18 09:00:00 2026 UTC">later</time></p>` +
		`<div class="usertext-body"><p>x</p></div></div>`
	entry, _, err := ExtractEntry(parseString(t, markup).Find("div.entry"), Comment, true)
	require.Equal(t, nil, err)
	require.Equal(t, model.StringPtr("Sun Oct 18 09:00:00 2026 UTC"), entry.Date)
}

func TestRequireDate(t *testing.T) {
	markup := `<div class="entry"><p class="tagline"><a class="author">someone</a></p>` +
		`<div class="usertext-body"><p>undated</p></div></div>`
	sel := parseString(t, markup).Find("div.entry")

	entry, ok, err := ExtractEntry(sel, Comment, false)
	require.Equal(t, nil, err)
	require.True(t, ok)
	require.Nil(t, entry.Date)

	_, _, err = ExtractEntry(sel, Comment, true)
	require.ErrorIs(t, err, ErrMissingDate)
}

func TestEntryKindString(t *testing.T) {
	require.Equal(t, "head", Head.String())
	require.Equal(t, "comment", Comment.String())
}

package model

// Entry is one unit of discussion: the head of a thread or a single comment.
// Score, likes and dislikes hold the text exactly as the page displays it,
// which may be a placeholder such as "•" for hidden scores. Absent fields
// are nil.
type Entry struct {
	Body     string  `json:"body" yaml:"body"`
	Score    *string `json:"score" yaml:"score"`
	Likes    *string `json:"likes" yaml:"likes"`
	Dislikes *string `json:"dislikes" yaml:"dislikes"`
	Author   *string `json:"author" yaml:"author"`
	Date     *string `json:"date" yaml:"date"`
}

// Post is one discussion thread fetched from URL. Comments are flat and in
// document order.
type Post struct {
	Title    *string `json:"title" yaml:"title"`
	Post     Entry   `json:"post" yaml:"post"`
	Comments []Entry `json:"comments" yaml:"comments"`
	URL      string  `json:"url" yaml:"url"`
}

type PostID uint

// StoredPost is a Post as kept in the database.
type StoredPost struct {
	Id       PostID
	SearchId uint
	Post
}

// AuthoredEntry pairs an entry with the thread it was posted in.
type AuthoredEntry struct {
	PostURL string
	Entry
}

func StringPtr(s string) *string {
	return &s
}

// Deref returns the pointed-to string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

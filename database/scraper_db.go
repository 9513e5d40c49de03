package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/zvonler/pitchpulse/model"
	"github.com/zvonler/pitchpulse/utils"
)

type SearchID uint

var ErrNotFound = errors.New("Not found")

type ScraperDB struct {
	Filename          string
	DB                *sql.DB
	insertSearchStmt  string
	upsertPostStmt    string
	insertCommentStmt string
}

func regex(re, s string) (bool, error) {
	return regexp.MatchString(re, s)
}

var registerDriver sync.Once

func OpenScraperDB(path string) (sdb *ScraperDB, err error) {
	registerDriver.Do(func() {
		sql.Register("sqlite3_regex",
			&sqlite3.SQLiteDriver{
				ConnectHook: func(conn *sqlite3.SQLiteConn) error {
					return conn.RegisterFunc("regexp", regex, true)
				},
			})
	})

	var existing bool
	if existing, err = utils.PathExists(path); err != nil {
		return
	}

	var db *sql.DB
	if db, err = sql.Open("sqlite3_regex", path); err != nil {
		return
	}

	sdb = new(ScraperDB)
	sdb.Filename = path
	sdb.DB = db
	if !existing {
		if err = sdb.initTables(); err != nil {
			db.Close()
			return nil, err
		}
	}
	sdb.initSQLStatements()
	return
}

func (sdb *ScraperDB) Close() {
	sdb.DB.Close()
}

type RowsReceiver func(*sql.Rows) bool

func (sdb *ScraperDB) ForEachRowOrPanic(receiver RowsReceiver, stmt string, params ...any) {
	if rows, err := sdb.DB.Query(stmt, params...); err == nil {
		defer rows.Close()
		for rows.Next() {
			if !receiver(rows) {
				break
			}
		}
	} else {
		panic(err)
	}
}

func (sdb *ScraperDB) ExecOrPanic(stmt string, params ...any) {
	if _, err := sdb.DB.Exec(stmt, params...); err != nil {
		panic(err)
	}
}

func (sdb *ScraperDB) InsertSearch(term, subreddit string, performed time.Time) (id SearchID, err error) {
	err = sdb.DB.QueryRow(sdb.insertSearchStmt, term, subreddit, performed.Unix()).Scan(&id)
	return
}

type Search struct {
	Id        SearchID
	Term      string
	Subreddit string
	Performed time.Time
	Posts     uint
}

// GetSearches lists recorded searches, most recent first, with the number
// of posts each one currently owns.
func (sdb *ScraperDB) GetSearches() (searches []Search, err error) {
	stmt := `
		SELECT
			s.id, s.term, s.subreddit, s.performed, COUNT(p.id)
		FROM search s LEFT JOIN post p ON p.search_id = s.id
		GROUP BY s.id
		ORDER BY s.performed DESC, s.id DESC`

	sdb.ForEachRowOrPanic(
		func(rows *sql.Rows) bool {
			var s Search
			var performed int64
			if err = rows.Scan(&s.Id, &s.Term, &s.Subreddit, &performed, &s.Posts); err != nil {
				return false
			}
			s.Performed = time.Unix(performed, 0)
			searches = append(searches, s)
			return true
		},
		stmt)
	return
}

// StorePost inserts or refreshes a post, keyed by URL, and replaces its
// comments.
func (sdb *ScraperDB) StorePost(searchId SearchID, post model.Post) (postId model.PostID, err error) {
	var tx *sql.Tx
	if tx, err = sdb.DB.Begin(); err != nil {
		return
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	head := post.Post
	err = tx.QueryRow(sdb.upsertPostStmt,
		searchId, post.URL, nullable(post.Title), head.Body,
		nullable(head.Score), nullable(head.Likes), nullable(head.Dislikes),
		nullable(head.Author), nullable(head.Date)).Scan(&postId)
	if err != nil {
		return
	}

	if _, err = tx.Exec("DELETE FROM comment WHERE post_id = ?", postId); err != nil {
		return
	}

	var stmt *sql.Stmt
	if stmt, err = tx.Prepare(sdb.insertCommentStmt); err != nil {
		return
	}
	defer stmt.Close()

	for i, c := range post.Comments {
		if _, err = stmt.Exec(postId, i, c.Body,
			nullable(c.Score), nullable(c.Likes), nullable(c.Dislikes),
			nullable(c.Author), nullable(c.Date)); err != nil {
			return
		}
	}

	err = tx.Commit()
	return
}

// PostSink adapts the database to receive posts from a search run.
type PostSink struct {
	sdb      *ScraperDB
	searchId SearchID
}

func (sdb *ScraperDB) PostSink(searchId SearchID) PostSink {
	return PostSink{sdb: sdb, searchId: searchId}
}

func (ps PostSink) Store(post model.Post) error {
	postId, err := ps.sdb.StorePost(ps.searchId, post)
	if err == nil {
		log.Printf("Stored post %d with %d comments", postId, len(post.Comments))
	}
	return err
}

const postColumns = `p.id, p.search_id, p.url, p.title, p.body, p.score, p.likes, p.dislikes, p.author, p.date`

func scanPost(rows *sql.Rows) (sp model.StoredPost, err error) {
	var title, score, likes, dislikes, author, date sql.NullString
	err = rows.Scan(&sp.Id, &sp.SearchId, &sp.URL, &title, &sp.Post.Post.Body,
		&score, &likes, &dislikes, &author, &date)
	sp.Title = fromNull(title)
	sp.Post.Post.Score = fromNull(score)
	sp.Post.Post.Likes = fromNull(likes)
	sp.Post.Post.Dislikes = fromNull(dislikes)
	sp.Post.Post.Author = fromNull(author)
	sp.Post.Post.Date = fromNull(date)
	return
}

func (sdb *ScraperDB) queryPosts(stmt string, params ...any) (posts []model.StoredPost, err error) {
	sdb.ForEachRowOrPanic(
		func(rows *sql.Rows) bool {
			var sp model.StoredPost
			if sp, err = scanPost(rows); err != nil {
				return false
			}
			posts = append(posts, sp)
			return true
		},
		stmt, params...)
	return
}

// GetPosts returns every stored post, without comments.
func (sdb *ScraperDB) GetPosts() ([]model.StoredPost, error) {
	return sdb.queryPosts(`SELECT ` + postColumns + ` FROM post p ORDER BY p.id`)
}

// FindPost resolves ref, either a post id or a URL, to a stored post with
// its comments. URLs match regardless of query string and trailing slash.
func (sdb *ScraperDB) FindPost(ref string) (sp model.StoredPost, err error) {
	var posts []model.StoredPost
	if id, ok := utils.ParseID(ref); ok {
		posts, err = sdb.queryPosts(`SELECT `+postColumns+` FROM post p WHERE p.id = ?`, id)
	} else {
		posts, err = sdb.queryPosts(`SELECT `+postColumns+` FROM post p
			WHERE rtrim(substr(p.url, 1, instr(p.url || '?', '?') - 1), '/') = ?
			ORDER BY p.id LIMIT 1`, postKey(ref))
	}
	if err != nil {
		return
	}
	if len(posts) == 0 {
		return sp, fmt.Errorf("post %q: %w", ref, ErrNotFound)
	}
	sp = posts[0]
	sp.Comments, err = sdb.PostComments(sp.Id)
	return
}

func postKey(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return strings.TrimRight(ref, "/")
	}
	u.RawQuery = ""
	u.Fragment = ""
	return utils.TrimmedURL(u).String()
}

func (sdb *ScraperDB) GetPost(postId model.PostID) (model.StoredPost, error) {
	return sdb.FindPost(fmt.Sprint(postId))
}

func (sdb *ScraperDB) PostComments(postId model.PostID) (comments []model.Entry, err error) {
	comments = make([]model.Entry, 0)
	sdb.ForEachRowOrPanic(
		func(rows *sql.Rows) bool {
			var c model.Entry
			if c, err = scanEntry(rows); err != nil {
				return false
			}
			comments = append(comments, c)
			return true
		},
		`SELECT body, score, likes, dislikes, author, date FROM comment
		WHERE post_id = ? ORDER BY position`, postId)
	return
}

// PostParticipants lists the distinct authors of a post and its comments.
func (sdb *ScraperDB) PostParticipants(postId model.PostID) (usernames []string, err error) {
	stmt := `
		SELECT author FROM post WHERE id = ? AND author IS NOT NULL
			UNION
		SELECT author FROM comment WHERE post_id = ? AND author IS NOT NULL
		ORDER BY 1`
	sdb.ForEachRowOrPanic(
		func(rows *sql.Rows) bool {
			var username string
			if err = rows.Scan(&username); err != nil {
				return false
			}
			usernames = append(usernames, username)
			return true
		},
		stmt, postId, postId)
	return
}

// GrepComments returns comments whose body matches every pattern.
func (sdb *ScraperDB) GrepComments(patterns []string) ([]model.AuthoredEntry, error) {
	stmt := `
		SELECT
			p.url, c.body, c.score, c.likes, c.dislikes, c.author, c.date
		FROM post p, comment c
		WHERE
			p.id = c.post_id`

	exprs := make([]string, 0, len(patterns))
	anyArgs := make([]any, len(patterns))
	for i := range patterns {
		exprs = append(exprs, "AND c.body REGEXP ?")
		anyArgs[i] = patterns[i]
	}
	stmt = stmt + " " + strings.Join(exprs, " ") + `
		ORDER BY p.id, c.position`

	return sdb.queryAuthored(stmt, anyArgs...)
}

// AuthorEntries returns everything username posted, heads and comments.
func (sdb *ScraperDB) AuthorEntries(username string) ([]model.AuthoredEntry, error) {
	stmt := `
		SELECT url, body, score, likes, dislikes, author, date FROM (
			SELECT p.url, p.body, p.score, p.likes, p.dislikes, p.author, p.date, p.id post_id, -1 position
			FROM post p WHERE p.author = ?
				UNION ALL
			SELECT p.url, c.body, c.score, c.likes, c.dislikes, c.author, c.date, p.id post_id, c.position
			FROM post p, comment c WHERE p.id = c.post_id AND c.author = ?
		) ORDER BY post_id, position`
	return sdb.queryAuthored(stmt, username, username)
}

type AuthorSummary struct {
	Username string
	Posts    uint
	Comments uint
}

// GrepAuthors summarizes the authors whose usernames match every pattern.
func (sdb *ScraperDB) GrepAuthors(patterns []string) (res []AuthorSummary, err error) {
	exprs := make([]string, 0, len(patterns))
	anyArgs := make([]any, len(patterns))
	for i := range patterns {
		exprs = append(exprs, "AND author REGEXP ?")
		anyArgs[i] = patterns[i]
	}

	stmt := `
		SELECT author, SUM(is_post), SUM(1 - is_post) FROM (
			SELECT author, 1 is_post FROM post WHERE author IS NOT NULL
				UNION ALL
			SELECT author, 0 is_post FROM comment WHERE author IS NOT NULL
		) WHERE 1 = 1 ` + strings.Join(exprs, " ") + `
		GROUP BY author
		ORDER BY 3 DESC, 1`

	sdb.ForEachRowOrPanic(
		func(rows *sql.Rows) bool {
			var s AuthorSummary
			if err = rows.Scan(&s.Username, &s.Posts, &s.Comments); err != nil {
				return false
			}
			res = append(res, s)
			return true
		},
		stmt, anyArgs...)
	return
}

func (sdb *ScraperDB) queryAuthored(stmt string, params ...any) (res []model.AuthoredEntry, err error) {
	sdb.ForEachRowOrPanic(
		func(rows *sql.Rows) bool {
			var postURL string
			var body string
			var score, likes, dislikes, author, date sql.NullString
			if err = rows.Scan(&postURL, &body, &score, &likes, &dislikes, &author, &date); err != nil {
				return false
			}
			res = append(res, model.AuthoredEntry{
				PostURL: postURL,
				Entry: model.Entry{
					Body:     body,
					Score:    fromNull(score),
					Likes:    fromNull(likes),
					Dislikes: fromNull(dislikes),
					Author:   fromNull(author),
					Date:     fromNull(date),
				},
			})
			return true
		},
		stmt, params...)
	return
}

func scanEntry(rows *sql.Rows) (e model.Entry, err error) {
	var score, likes, dislikes, author, date sql.NullString
	err = rows.Scan(&e.Body, &score, &likes, &dislikes, &author, &date)
	e.Score = fromNull(score)
	e.Likes = fromNull(likes)
	e.Dislikes = fromNull(dislikes)
	e.Author = fromNull(author)
	e.Date = fromNull(date)
	return
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return model.StringPtr(ns.String)
}

func (sdb *ScraperDB) initTables() error {
	schema := `
CREATE TABLE search (
	id INTEGER NOT NULL PRIMARY KEY,
	term TEXT NOT NULL,
	subreddit TEXT,
	performed INTEGER
);

CREATE TABLE post (
	id INTEGER NOT NULL PRIMARY KEY,
	search_id INTEGER NOT NULL,
	url TEXT UNIQUE,
	title TEXT,
	body TEXT,
	score TEXT,
	likes TEXT,
	dislikes TEXT,
	author TEXT,
	date TEXT
);

CREATE TABLE comment (
	id INTEGER NOT NULL PRIMARY KEY,
	post_id INTEGER NOT NULL,
	position INTEGER NOT NULL,
	body TEXT,
	score TEXT,
	likes TEXT,
	dislikes TEXT,
	author TEXT,
	date TEXT,

	UNIQUE(post_id, position)
);

CREATE INDEX comment_author ON comment(author);
`
	if _, err := sdb.DB.Exec(schema); err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}
	return nil
}

func (sdb *ScraperDB) initSQLStatements() {
	sdb.insertSearchStmt = `
		INSERT INTO search
			(term, subreddit, performed)
		VALUES
			(?, ?, ?)
		RETURNING id`

	sdb.upsertPostStmt = `
		INSERT INTO post
			(search_id, url, title, body, score, likes, dislikes, author, date)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			search_id = excluded.search_id,
			title = excluded.title,
			body = excluded.body,
			score = excluded.score,
			likes = excluded.likes,
			dislikes = excluded.dislikes,
			author = excluded.author,
			date = excluded.date
		RETURNING id`

	sdb.insertCommentStmt = `
		INSERT INTO comment
			(post_id, position, body, score, likes, dislikes, author, date)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)`
}

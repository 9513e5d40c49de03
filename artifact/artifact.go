// Package artifact writes and reads the file a search run produces: the
// sequence of scraped posts, as JSON or YAML.
package artifact

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zvonler/pitchpulse/model"
	"gopkg.in/yaml.v2"
)

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatFor returns the explicitly named format, or the one implied by the
// extension of path. Unknown extensions default to JSON.
func FormatFor(path, explicit string) (Format, error) {
	switch strings.ToLower(explicit) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "":
	default:
		return "", fmt.Errorf("unknown format %q", explicit)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	}
	return JSON, nil
}

// Writer serializes posts as they are stored. JSON output is streamed so
// each post reaches the file as soon as it is stored; the finished file is
// byte-identical to marshaling the whole slice at once. YAML is written on
// Close.
type Writer struct {
	w        io.Writer
	closer   io.Closer
	format   Format
	count    int
	buffered []model.Post
}

func NewWriter(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// Create truncates or creates path and returns a Writer for it.
func Create(path string, format Format) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	aw := NewWriter(f, format)
	aw.closer = f
	return aw, nil
}

func (aw *Writer) Count() int {
	return aw.count
}

func (aw *Writer) Store(post model.Post) (err error) {
	if post.Comments == nil {
		post.Comments = []model.Entry{}
	}

	if aw.format == YAML {
		aw.buffered = append(aw.buffered, post)
		aw.count++
		return nil
	}

	var encoded []byte
	if encoded, err = json.Marshal(post); err != nil {
		return
	}
	sep := ","
	if aw.count == 0 {
		sep = "["
	}
	if _, err = io.WriteString(aw.w, sep); err == nil {
		_, err = aw.w.Write(encoded)
	}
	if err == nil {
		aw.count++
	}
	return
}

// Close finishes the document and closes the underlying file, if any.
func (aw *Writer) Close() (err error) {
	if aw.format == YAML {
		posts := aw.buffered
		if posts == nil {
			posts = []model.Post{}
		}
		var encoded []byte
		if encoded, err = yaml.Marshal(posts); err == nil {
			_, err = aw.w.Write(encoded)
		}
	} else {
		tail := "]"
		if aw.count == 0 {
			tail = "[]"
		}
		_, err = io.WriteString(aw.w, tail)
	}

	if aw.closer != nil {
		if closeErr := aw.closer.Close(); err == nil {
			err = closeErr
		}
	}
	return
}

// Read loads an artifact, choosing the decoder from the file extension.
func Read(path string) ([]model.Post, error) {
	format, err := FormatFor(path, "")
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, format)
}

func Decode(r io.Reader, format Format) (posts []model.Post, err error) {
	switch format {
	case YAML:
		var raw []byte
		if raw, err = io.ReadAll(r); err == nil {
			err = yaml.Unmarshal(raw, &posts)
		}
	default:
		err = json.NewDecoder(r).Decode(&posts)
	}
	return
}

// Write serializes posts to path in one go.
func Write(path string, format Format, posts []model.Post) error {
	aw, err := Create(path, format)
	if err != nil {
		return err
	}
	for _, post := range posts {
		if err := aw.Store(post); err != nil {
			aw.Close()
			return err
		}
	}
	return aw.Close()
}

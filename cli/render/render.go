package render

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/bit101/go-ansi"
	"github.com/zvonler/pitchpulse/model"
	"golang.org/x/term"
)

func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Paginate pipes whatever write produces through less. When less is not
// installed the output goes straight to stdout.
func Paginate(write func(w io.Writer)) error {
	less, err := exec.LookPath("less")
	if err != nil {
		write(os.Stdout)
		return nil
	}

	cmd := exec.Command(less, "-FRX")
	cmd.Stdout = os.Stdout

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	go func() {
		defer stdin.Close()
		write(stdin)
	}()

	return cmd.Run()
}

// Post shows a post, paged and coloured on a terminal and plain otherwise.
func Post(post model.Post) error {
	if IsTerminal() {
		return Paginate(func(w io.Writer) { ColorPost(w, post) })
	}
	PlainPost(os.Stdout, post)
	return nil
}

func ColorPost(w io.Writer, post model.Post) {
	ansi.Fprintf(w, ansi.Yellow, "%s", title(post))
	ansi.Fprintf(w, ansi.Default, " (")
	ansi.Fprintf(w, ansi.Cyan, "%s", post.URL)
	ansi.Fprintf(w, ansi.Default, ")\n")
	colorEntry(w, post.Post)
	ansi.Fprintln(w, ansi.Blue, "========")

	for _, c := range post.Comments {
		colorEntry(w, c)
		ansi.Fprintln(w, ansi.Blue, "--------")
	}
}

func colorEntry(w io.Writer, e model.Entry) {
	ansi.Fprintf(w, ansi.Red, "%s ", author(e))
	ansi.Fprintf(w, ansi.Green, "%s ", model.Deref(e.Date))
	ansi.Fprintf(w, ansi.Purple, "(%s)\n", model.Deref(e.Score))
	ansi.Fprintf(w, ansi.Default, "%s\n", e.Body)
}

func PlainPost(w io.Writer, post model.Post) {
	fmt.Fprintf(w, "%s (%s)\n", title(post), post.URL)
	fmt.Fprintf(w, "%s %s (%s)\n%s\n", author(post.Post), model.Deref(post.Post.Date), model.Deref(post.Post.Score), post.Post.Body)
	fmt.Fprintln(w, "========")
	for _, c := range post.Comments {
		fmt.Fprintf(w, "%s %s (%s): %q\n", author(c), model.Deref(c.Date), model.Deref(c.Score), c.Body)
		fmt.Fprintln(w, "--------")
	}
}

func title(post model.Post) string {
	if post.Title == nil {
		return "[untitled]"
	}
	return *post.Title
}

func author(e model.Entry) string {
	if e.Author == nil {
		return "[unknown]"
	}
	return *e.Author
}

// Entries shows entries along with the post each was found in.
func Entries(entries []model.AuthoredEntry) error {
	if IsTerminal() {
		return Paginate(func(w io.Writer) { ColorEntries(w, entries) })
	}
	PlainEntries(os.Stdout, entries)
	return nil
}

func ColorEntries(w io.Writer, entries []model.AuthoredEntry) {
	for _, e := range entries {
		ansi.Fprintf(w, ansi.Cyan, "%s ", e.PostURL)
		ansi.Fprintf(w, ansi.Green, "%s\n", model.Deref(e.Date))
		ansi.Fprintf(w, ansi.Red, "%s", author(e.Entry))
		ansi.Fprintf(w, ansi.Default, ": ")
		ansi.Fprintf(w, ansi.Green, "\"")
		ansi.Fprintf(w, ansi.Default, "%s", e.Body)
		ansi.Fprintf(w, ansi.Green, "\"\n")
		ansi.Fprintln(w, ansi.Blue, "--------")
	}
}

func PlainEntries(w io.Writer, entries []model.AuthoredEntry) {
	for _, e := range entries {
		fmt.Fprintf(w, "%s %s\n%s: %q\n", e.PostURL, model.Deref(e.Date), author(e.Entry), e.Body)
		fmt.Fprintln(w, "--------")
	}
}

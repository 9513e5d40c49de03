package utils

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
)

func TrimmedURL(url *url.URL) *url.URL {
	if strings.HasSuffix(url.RequestURI(), "/") {
		// Eliminate trailing slashes to canonicalize URL for database
		if trimmed, err := url.Parse(strings.TrimRight(url.String(), "/")); err != nil {
			panic(fmt.Sprintf("Bad URL: %v", err))
		} else {
			return trimmed
		}
	}
	return url
}

func PathExists(path string) (res bool, err error) {
	_, statErr := os.Stat(path)
	if statErr == nil {
		res = true
	} else if !os.IsNotExist(statErr) {
		err = statErr
	}
	return
}

// WithQueryParam returns rawURL with key set to value, replacing any
// existing values for key.
func WithQueryParam(rawURL, key, value string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

var digitCheck = regexp.MustCompile(`^[0-9]+$`)

// ParseID reports whether ref is a numeric database id.
func ParseID(ref string) (uint, bool) {
	if !digitCheck.MatchString(ref) {
		return 0, false
	}
	id, err := strconv.ParseUint(ref, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

package dash

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/midbel/bars"
)

var ErrNoSource = errors.New("data source not set")

// DataSource locates the CSV records of a chart. The first row of the
// data is its header.
type DataSource struct {
	Path      string `toml:"path" yaml:"path"`
	URL       string `toml:"url" yaml:"url"`
	Delimiter string `toml:"delimiter" yaml:"delimiter"`
	Content   string `toml:"content" yaml:"content"`
}

func (d DataSource) location() string {
	if d.URL != "" {
		return d.URL
	}
	return d.Path
}

func (d DataSource) Records(ctx context.Context) ([]bars.Record, error) {
	comma, err := d.comma()
	if err != nil {
		return nil, err
	}
	if d.Content != "" {
		return loadRecordsFromReader(strings.NewReader(d.Content), comma)
	}
	loc := d.location()
	if loc == "" {
		return nil, ErrNoSource
	}
	r, err := readFrom(ctx, loc)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return loadRecordsFromReader(r, comma)
}

func (d DataSource) comma() (rune, error) {
	delim := d.Delimiter
	if delim == "" {
		delim = DefaultDelim
	}
	if delim == `\t` {
		delim = "\t"
	}
	c, n := utf8.DecodeRuneInString(delim)
	if c == utf8.RuneError || n != len(delim) {
		return 0, bars.ConfigError{Option: "data.delimiter", Reason: "must be a single character"}
	}
	return c, nil
}

func readFrom(ctx context.Context, location string) (io.ReadCloser, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		if res.StatusCode != http.StatusOK {
			res.Body.Close()
			return nil, fmt.Errorf("%s: request does not end with success result code (%s)", location, res.Status)
		}
		return res.Body, nil
	case "file":
		return os.Open(u.Path)
	case "":
		return os.Open(location)
	default:
		return nil, fmt.Errorf("%s: unsupported scheme", u.Scheme)
	}
}

func loadRecordsFromReader(r io.Reader, comma rune) ([]bars.Record, error) {
	rs := csv.NewReader(r)
	rs.Comma = comma
	rs.FieldsPerRecord = -1

	header, err := rs.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	var list []bars.Record
	for {
		row, err := rs.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		rec := make(bars.Record, len(header))
		for i, h := range header {
			if i < len(row) {
				rec[h] = row[i]
			}
		}
		list = append(list, rec)
	}
	return list, nil
}

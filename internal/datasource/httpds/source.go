package httpds

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"recipesql/internal/datasource"
)

// ErrStatus is returned by Source.Open for a non-2xx final response.
var ErrStatus = errors.New("httpds: unexpected status")

// Source fetches its input from a URL.
type Source struct {
	client *Client
	url    string
}

var _ datasource.Source = (*Source)(nil)

// NewSource returns a Source that GETs url with client.
func NewSource(client *Client, url string) *Source {
	return &Source{client: client, url: url}
}

// Open issues the GET and returns the UTF-8 decoded body
// (see datasource.Decode). Non-2xx responses fail with ErrStatus.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: GET %s: %s", ErrStatus, s.url, resp.Status)
	}
	return datasource.Decode(resp.Body), nil
}

// IsURL reports whether location names an http or https resource.
func IsURL(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

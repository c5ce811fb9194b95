package asset

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound is wrapped by all errors reporting a resource that does not exist.
var ErrNotFound = errors.New("resource not found")

// The http client used for fetching remote resources.
var HTTPClient = &http.Client{Timeout: 30 * time.Second}

// The Resource class wraps a streamable file or remote Resource.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Returns the path to this resource.
func (r *Resource) Path() string {
	return r.url.String()
}

// Return the base name of this resource without any directory components.
func (r *Resource) BaseName() string {
	return path.Base(r.url.Path)
}

// Returns true if the Resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// The Fetcher interface is implemented by objects that can open resources
// by path. Relative paths are resolved against the directory of relTo.
type Fetcher interface {
	Fetch(pathToResource string, relTo *Resource) (*Resource, error)
}

// The FetcherFunc type adapts a plain function to the Fetcher interface.
type FetcherFunc func(pathToResource string, relTo *Resource) (*Resource, error)

// Fetch calls f(pathToResource, relTo).
func (f FetcherFunc) Fetch(pathToResource string, relTo *Resource) (*Resource, error) {
	return f(pathToResource, relTo)
}

// DefaultFetcher opens local files and http/https URLs.
var DefaultFetcher Fetcher = FetcherFunc(NewResource)

// Create a new Resource data stream. If relTo is specified and pathToResource
// does not define a scheme, then the path to the new Resource will be generated
// by concatenating the base path of relTo and pathToResource.
//
// This function can handle http/https URLs by delegating to the net/http package.
// The caller must make sure to close the returned io.ReadCloser to prevent mem leaks.
func NewResource(pathToResource string, relTo *Resource) (*Resource, error) {
	url, err := resolve(pathToResource, relTo)
	if err != nil {
		return nil, err
	}

	var reader io.ReadCloser
	switch url.Scheme {
	case "":
		reader, err = os.Open(filepath.Clean(url.Path))
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("resource: could not open '%s': %w", url.Path, ErrNotFound)
			}
			return nil, err
		}
	case "http", "https":
		resp, err := HTTPClient.Get(url.String())
		if err != nil {
			return nil, fmt.Errorf("resource: could not fetch '%s': %s", url.String(), err)
		}
		if resp.StatusCode == http.StatusNotFound {
			resp.Body.Close()
			return nil, fmt.Errorf("resource: could not fetch '%s': %w", url.String(), ErrNotFound)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("resource: could not fetch '%s': status %d", url.String(), resp.StatusCode)
		}
		reader = resp.Body
	default:
		return nil, fmt.Errorf("resource: unsupported scheme '%s'", url.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		url:        url,
	}, nil
}

// Create a resource from a reader.
func NewResourceFromStream(name string, source io.Reader) *Resource {
	u, err := url.Parse(filepath.ToSlash(name))
	if err != nil {
		u = &url.URL{Path: name}
	}
	return &Resource{
		ReadCloser: io.NopCloser(source),
		url:        u,
	}
}

// The MapFetcher serves resources from memory. Keys are slash-separated paths;
// relative lookups are joined with the directory of the referencing resource.
type MapFetcher map[string]string

// Fetch implements Fetcher.
func (m MapFetcher) Fetch(pathToResource string, relTo *Resource) (*Resource, error) {
	name := strings.Replace(pathToResource, `\`, "/", -1)
	if relTo != nil && !path.IsAbs(name) {
		name = path.Join(path.Dir(relTo.url.Path), name)
	}
	name = path.Clean(name)

	payload, exists := m[name]
	if !exists {
		return nil, fmt.Errorf("resource: could not open '%s': %w", name, ErrNotFound)
	}
	return NewResourceFromStream(name, strings.NewReader(payload)), nil
}

// Generate the url for a resource, optionally relative to another resource.
func resolve(pathToResource string, relTo *Resource) (*url.URL, error) {
	// Replace backslashes with forward slashes and try parsing as a URL
	url, err := url.Parse(strings.Replace(pathToResource, `\`, `/`, -1))
	if err != nil {
		return nil, err
	}

	// If this is a relative url, clone parent url and adjust its path
	if url.Scheme == "" && relTo != nil && !filepath.IsAbs(url.Path) {
		relPath := url.Path
		parent := *relTo.url
		url = &parent
		prefix := url.Path
		if url.Scheme == "" {
			prefix, err = filepath.Abs(relTo.url.Path)
			if err != nil {
				return nil, fmt.Errorf("resource: could not detect abs path for %s; %s", relTo.url.String(), err.Error())
			}
		}
		url.Path = path.Dir(filepath.ToSlash(prefix)) + "/" + relPath
		url.RawPath = ""
		url.RawQuery = ""
	}

	return url, nil
}

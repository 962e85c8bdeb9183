// Package gist provides a Remote implementation backed by a private GitHub gist.
package gist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/google/go-github/v66/github"

	"github.com/ersonp/mens/internal/domain"
	"github.com/ersonp/mens/internal/domain/ports"
	"github.com/ersonp/mens/internal/infrastructure/config"
	"github.com/ersonp/mens/internal/infrastructure/parsers"
)

const description = "mens notes"

// Client implements ports.Remote using the GitHub gists API.
// One gist is one resource; every note is one gist file.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient creates a gist remote. An empty BaseURL targets api.github.com.
func NewClient(cfg config.GistConfig) (*Client, error) {
	c := &Client{}
	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parsing gist base url: %w", err)
		}
		c.baseURL = u
	}
	return c, nil
}

func (c *Client) api(token string) *github.Client {
	gh := github.NewClient(c.httpClient)
	if token != "" {
		gh = gh.WithAuthToken(token)
	}
	if c.baseURL != nil {
		gh.BaseURL = c.baseURL
	}
	return gh
}

// ListNoteFiles returns the content of every gist file except the metadata file.
func (c *Client) ListNoteFiles(ctx context.Context, token, resourceID string) ([]string, error) {
	if resourceID == "" {
		return nil, domain.ErrResourceNotConfig
	}

	gh := c.api(token)
	gist, err := c.get(ctx, gh, resourceID)
	if err != nil {
		return nil, err
	}

	names := slices.Sorted(maps.Keys(gist.Files))
	contents := make([]string, 0, len(names))
	for _, name := range names {
		if string(name) == ports.MetaFileName {
			continue
		}
		content, err := c.fileContent(ctx, gh, gist.Files[name])
		if err != nil {
			return nil, fmt.Errorf("reading gist file %s: %w", name, err)
		}
		contents = append(contents, content)
	}
	return contents, nil
}

// CreateResource creates a private gist holding only the metadata file.
func (c *Client) CreateResource(ctx context.Context, token string) (*ports.Resource, error) {
	gist, _, err := c.api(token).Gists.Create(ctx, &github.Gist{
		Description: github.String(description),
		Public:      github.Bool(false),
		Files: map[github.GistFilename]github.GistFile{
			ports.MetaFileName: {Content: github.String(parsers.MetaContent)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating gist: %w", err)
	}

	return &ports.Resource{ID: gist.GetID(), Handle: gist.GetNodeID()}, nil
}

// ReplaceAllFiles edits the gist so it holds exactly files plus the metadata file.
// Files present in the gist but absent from files are deleted in the same edit.
func (c *Client) ReplaceAllFiles(ctx context.Context, token, resourceID string, files map[string]string) error {
	if resourceID == "" {
		return domain.ErrResourceNotConfig
	}

	gh := c.api(token)
	current, err := c.get(ctx, gh, resourceID)
	if err != nil {
		return err
	}

	// A nil entry encodes as JSON null, which the API treats as a deletion.
	edits := make(map[string]*github.GistFile, len(files)+len(current.Files))
	for name := range current.Files {
		if string(name) != ports.MetaFileName {
			edits[string(name)] = nil
		}
	}
	for name, content := range files {
		edits[name] = &github.GistFile{Content: github.String(content)}
	}

	req, err := gh.NewRequest(http.MethodPatch, "gists/"+resourceID, map[string]any{"files": edits})
	if err != nil {
		return fmt.Errorf("building gist edit: %w", err)
	}
	if _, err := gh.Do(ctx, req, nil); err != nil {
		return mapError(resourceID, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, gh *github.Client, id string) (*github.Gist, error) {
	gist, _, err := gh.Gists.Get(ctx, id)
	if err != nil {
		return nil, mapError(id, err)
	}
	return gist, nil
}

// fileContent returns the inline content unless the API cut it short, in which
// case the full file is read from its raw URL. Large files still carry a
// partial content field, so the declared size is the only reliable signal.
func (c *Client) fileContent(ctx context.Context, gh *github.Client, file github.GistFile) (string, error) {
	if file.Content != nil && (file.Size == nil || file.GetSize() == len(file.GetContent())) {
		return file.GetContent(), nil
	}
	if file.GetRawURL() == "" {
		return "", errors.New("file has neither content nor raw url")
	}

	req, err := gh.NewRequest(http.MethodGet, file.GetRawURL(), nil)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := gh.Do(ctx, req, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func mapError(id string, err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("gist %s: %w", id, domain.ErrResourceNotFound)
	}
	return fmt.Errorf("gist %s: %w", id, err)
}

package httpfile

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"regexp"
	"strings"

	"github.com/datatug/netexplorer/pkg/files"
)

type StoreOption func(*HttpStore)

func NewStore(root url.URL, o ...StoreOption) *HttpStore {
	store := &HttpStore{
		Root: root,
	}
	for _, opt := range o {
		opt(store)
	}
	return store
}

func WithHttpClient(client *http.Client) StoreOption {
	return func(store *HttpStore) {
		store.client = client
	}
}

var _ files.Store = (*HttpStore)(nil)

// HttpStore browses web server directory indexes (autoindex pages).
type HttpStore struct {
	Root   url.URL
	client *http.Client
}

var hrefRe = regexp.MustCompile(`<a href="([^"]+)">`)

func (h HttpStore) RootURL() url.URL {
	return h.Root
}

func (h HttpStore) RootTitle() string {
	root := h.Root
	root.User = nil
	return root.String()
}

func (h HttpStore) httpClient() *http.Client {
	if h.client == nil {
		return http.DefaultClient
	}
	return h.client
}

func (h HttpStore) newRequest(ctx context.Context, method, name string) (*http.Request, error) {
	u := h.Root
	u.Path = name
	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return req, nil
}

func statusError(name string, code int) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	case http.StatusNotFound, http.StatusGone:
		return &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return fmt.Errorf("unexpected status code: %d", code)
}

func (h HttpStore) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	dirPath := name
	if !strings.HasSuffix(dirPath, "/") {
		dirPath += "/"
	}

	req, err := h.newRequest(ctx, http.MethodGet, dirPath)
	if err != nil {
		return nil, err
	}
	resp, err := h.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch directory listing: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(name, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var entries []os.DirEntry
	seen := make(map[string]bool)
	for _, match := range hrefRe.FindAllStringSubmatch(string(body), -1) {
		entryName, isDir, ok := parseHref(dirPath, match[1])
		if !ok || seen[entryName] {
			continue
		}
		seen[entryName] = true
		entries = append(entries, files.NewDirEntry(entryName, isDir))
	}

	return entries, nil
}

// parseHref maps an index link to a child name; links to parents, sort
// controls and other sites are skipped.
func parseHref(dirPath, href string) (name string, isDir bool, ok bool) {
	if href == "" || strings.HasPrefix(href, "?") || strings.HasPrefix(href, "#") || strings.Contains(href, "://") {
		return "", false, false
	}
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	if strings.HasPrefix(href, "/") {
		if !strings.HasPrefix(href, dirPath) {
			return "", false, false
		}
		href = strings.TrimPrefix(href, dirPath)
	}
	href = strings.TrimPrefix(href, "./")
	if href == "" || href == "../" || href == ".." {
		return "", false, false
	}
	isDir = strings.HasSuffix(href, "/")
	href = strings.TrimSuffix(href, "/")
	if strings.Contains(href, "/") {
		return "", false, false
	}
	if unescaped, err := url.PathUnescape(href); err == nil {
		href = unescaped
	}
	return href, isDir, href != ""
}

// Stat issues a HEAD request. Directories are recognised by a trailing slash
// in the requested or redirected path.
func (h HttpStore) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	req, err := h.newRequest(ctx, http.MethodHead, name)
	if err != nil {
		return nil, err
	}
	resp, err := h.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(name, resp.StatusCode)
	}
	isDir := strings.HasSuffix(name, "/") || strings.HasSuffix(resp.Request.URL.Path, "/")
	base := path.Base(strings.TrimSuffix(name, "/"))
	var opts []files.FileInfoOption
	if resp.ContentLength > 0 && !isDir {
		opts = append(opts, files.Size(resp.ContentLength))
	}
	if lm := resp.Header.Get("Last-Modified"); lm != "" {
		if t, err := http.ParseTime(lm); err == nil {
			opts = append(opts, files.ModTime(t))
		}
	}
	opts = append(opts, files.Sys(resp.Header))
	return files.NewFileInfo(files.NewDirEntry(base, isDir), opts...), nil
}

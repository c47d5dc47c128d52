package ftpfile

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/textproto"
	"net/url"
	"os"
	"path"
	"sync"
	"time"

	"github.com/datatug/netexplorer/pkg/files"
	"github.com/jlaffaye/ftp"
)

const schema = "ftp"

type serverConn interface {
	Login(user, password string) error
	List(path string) ([]*ftp.Entry, error)
	GetEntry(path string) (*ftp.Entry, error)
	Quit() error
}

var ftpDial = func(addr string, options ...ftp.DialOption) (serverConn, error) {
	return ftp.Dial(addr, options...)
}

var _ files.Store = (*Store)(nil)

// Store browses an FTP server. A single control connection is dialed lazily
// and shared; calls are serialized because the protocol is not multiplexed.
type Store struct {
	host     string
	path     string
	user     string
	password string
	explicit bool
	implicit bool

	mu   sync.Mutex
	conn serverConn
}

func (s *Store) RootURL() url.URL {
	u := url.URL{
		Scheme: schema,
		Host:   s.host,
		Path:   s.path,
	}
	return u
}

func (s *Store) RootTitle() string {
	return schema + "://" + s.host
}

func NewStore(root url.URL) *Store {
	s := &Store{
		host: root.Host,
		path: root.Path,
	}
	if root.User != nil {
		s.user = root.User.Username()
		s.password, _ = root.User.Password()
	}
	return s
}

func (s *Store) SetTLS(explicit, implicit bool) {
	s.explicit = explicit
	s.implicit = implicit
}

func (s *Store) connect(ctx context.Context) (serverConn, error) {
	if s.conn != nil {
		return s.conn, nil
	}
	host, port, err := net.SplitHostPort(s.host)
	if err != nil {
		host = s.host
		port = "21"
	}
	addr := net.JoinHostPort(host, port)
	options := []ftp.DialOption{
		ftp.DialWithTimeout(5 * time.Second),
		ftp.DialWithContext(ctx),
	}
	if s.implicit {
		options = append(options, ftp.DialWithTLS(&tls.Config{ServerName: host, InsecureSkipVerify: true}))
	}
	if s.explicit {
		options = append(options, ftp.DialWithExplicitTLS(&tls.Config{ServerName: host, InsecureSkipVerify: true}))
	}

	c, err := ftpDial(addr, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ftp server: %w", err)
	}
	if s.user != "" {
		if err = c.Login(s.user, s.password); err != nil {
			_ = c.Quit()
			return nil, fmt.Errorf("failed to login to ftp server: %w", err)
		}
	}
	s.conn = c
	return c, nil
}

// do runs f on the shared connection. Transport failures drop the connection
// so the next call dials again; server replies keep it.
func (s *Store) do(ctx context.Context, f func(c serverConn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.connect(ctx)
	if err != nil {
		return err
	}
	if err = f(c); err != nil {
		var protoErr *textproto.Error
		if !errors.As(err, &protoErr) {
			_ = c.Quit()
			s.conn = nil
		}
	}
	return err
}

func (s *Store) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	var entries []*ftp.Entry
	err := s.do(ctx, func(c serverConn) (err error) {
		entries, err = c.List(name)
		return
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}

	result := make([]os.DirEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Name == "." || entry.Name == ".." {
			continue
		}
		result = append(result, &ftpDirEntry{entry: entry})
	}

	return result, nil
}

func (s *Store) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	var entry *ftp.Entry
	err := s.do(ctx, func(c serverConn) (err error) {
		entry, err = c.GetEntry(name)
		return
	})
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	if entry.Name == "" {
		entry.Name = path.Base(name)
	}
	return &ftpFileInfo{entry: entry}, nil
}

// Close ends the FTP session if one is open.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Quit()
	s.conn = nil
	return err
}

type ftpDirEntry struct {
	entry *ftp.Entry
}

func (e *ftpDirEntry) Name() string {
	return e.entry.Name
}

func (e *ftpDirEntry) IsDir() bool {
	return e.entry.Type == ftp.EntryTypeFolder
}

func (e *ftpDirEntry) Type() os.FileMode {
	switch e.entry.Type {
	case ftp.EntryTypeFolder:
		return os.ModeDir
	case ftp.EntryTypeLink:
		return os.ModeSymlink
	default:
		return 0
	}
}

func (e *ftpDirEntry) Info() (os.FileInfo, error) {
	return &ftpFileInfo{entry: e.entry}, nil
}

type ftpFileInfo struct {
	entry *ftp.Entry
}

func (f *ftpFileInfo) Name() string       { return f.entry.Name }
func (f *ftpFileInfo) Size() int64        { return int64(f.entry.Size) }
func (f *ftpFileInfo) Mode() os.FileMode  { return (&ftpDirEntry{entry: f.entry}).Type() }
func (f *ftpFileInfo) ModTime() time.Time { return f.entry.Time }
func (f *ftpFileInfo) IsDir() bool        { return f.entry.Type == ftp.EntryTypeFolder }
func (f *ftpFileInfo) Sys() any           { return f.entry }

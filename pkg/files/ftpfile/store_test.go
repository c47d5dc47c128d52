package ftpfile

import (
	"context"
	"errors"
	"io"
	"net/textproto"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/datatug/netexplorer/pkg/files"
	"github.com/jlaffaye/ftp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	loginUser string
	listing   map[string][]*ftp.Entry
	entries   map[string]*ftp.Entry
	listErr   error
	quits     int
}

func (c *fakeConn) Login(user, _ string) error {
	if user == "bad" {
		return &textproto.Error{Code: 530, Msg: "Login incorrect."}
	}
	c.loginUser = user
	return nil
}

func (c *fakeConn) List(p string) ([]*ftp.Entry, error) {
	if c.listErr != nil {
		return nil, c.listErr
	}
	entries, ok := c.listing[p]
	if !ok {
		return nil, &textproto.Error{Code: 550, Msg: "Permission denied."}
	}
	return entries, nil
}

func (c *fakeConn) GetEntry(p string) (*ftp.Entry, error) {
	entry, ok := c.entries[p]
	if !ok {
		return nil, &textproto.Error{Code: 550, Msg: "No such file."}
	}
	return entry, nil
}

func (c *fakeConn) Quit() error {
	c.quits++
	return nil
}

func withFakeDial(t *testing.T, conn *fakeConn) *[]string {
	t.Helper()
	orig := ftpDial
	t.Cleanup(func() { ftpDial = orig })
	var addrs []string
	ftpDial = func(addr string, _ ...ftp.DialOption) (serverConn, error) {
		addrs = append(addrs, addr)
		return conn, nil
	}
	return &addrs
}

func newTestConn() *fakeConn {
	modified := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	return &fakeConn{
		listing: map[string][]*ftp.Entry{
			"/pub": {
				{Name: ".", Type: ftp.EntryTypeFolder},
				{Name: "..", Type: ftp.EntryTypeFolder},
				{Name: "docs", Type: ftp.EntryTypeFolder, Time: modified},
				{Name: "readme.txt", Type: ftp.EntryTypeFile, Size: 42, Time: modified},
				{Name: "latest", Type: ftp.EntryTypeLink, Target: "docs"},
			},
		},
		entries: map[string]*ftp.Entry{
			"/pub/readme.txt": {Name: "readme.txt", Type: ftp.EntryTypeFile, Size: 42, Time: modified},
		},
	}
}

func TestNewStore(t *testing.T) {
	s := NewStore(url.URL{Scheme: "ftp", Host: "nas.local:2121", Path: "/pub", User: url.UserPassword("demo", "secret")})
	assert.Equal(t, "demo", s.user)
	assert.Equal(t, "secret", s.password)
	assert.Equal(t, "ftp://nas.local:2121", s.RootTitle())
	u := s.RootURL()
	assert.Equal(t, "ftp", u.Scheme)
	assert.Equal(t, "/pub", u.Path)
	assert.True(t, files.IsNetworkStore(s))
}

func TestStore_ReadDir(t *testing.T) {
	conn := newTestConn()
	addrs := withFakeDial(t, conn)
	s := NewStore(url.URL{Scheme: "ftp", Host: "nas.local", User: url.User("demo")})

	entries, err := s.ReadDir(context.Background(), "/pub")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "docs", entries[0].Name())
	assert.True(t, entries[0].IsDir())
	assert.Equal(t, os.ModeDir, entries[0].Type())
	assert.False(t, entries[1].IsDir())
	assert.False(t, entries[2].IsDir(), "links are not directories")
	assert.Equal(t, os.ModeSymlink, entries[2].Type())

	info, err := entries[1].Info()
	require.NoError(t, err)
	assert.Equal(t, int64(42), info.Size())

	_, err = s.ReadDir(context.Background(), "/pub")
	require.NoError(t, err)
	assert.Equal(t, []string{"nas.local:21"}, *addrs, "connection is reused")
	assert.Equal(t, "demo", conn.loginUser)
}

func TestStore_ReadDir_Errors(t *testing.T) {
	t.Run("server_reply_keeps_connection", func(t *testing.T) {
		conn := newTestConn()
		addrs := withFakeDial(t, conn)
		s := NewStore(url.URL{Host: "nas.local:21"})
		_, err := s.ReadDir(context.Background(), "/private")
		var protoErr *textproto.Error
		require.ErrorAs(t, err, &protoErr)
		assert.Equal(t, 550, protoErr.Code)
		_, err = s.ReadDir(context.Background(), "/pub")
		assert.NoError(t, err)
		assert.Len(t, *addrs, 1)
	})

	t.Run("transport_error_redials", func(t *testing.T) {
		conn := newTestConn()
		conn.listErr = io.ErrUnexpectedEOF
		addrs := withFakeDial(t, conn)
		s := NewStore(url.URL{Host: "nas.local:21"})
		_, err := s.ReadDir(context.Background(), "/pub")
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.Equal(t, 1, conn.quits)
		conn.listErr = nil
		_, err = s.ReadDir(context.Background(), "/pub")
		assert.NoError(t, err)
		assert.Len(t, *addrs, 2)
	})

	t.Run("login_failure", func(t *testing.T) {
		conn := newTestConn()
		withFakeDial(t, conn)
		s := NewStore(url.URL{Host: "nas.local", User: url.User("bad")})
		_, err := s.ReadDir(context.Background(), "/pub")
		assert.ErrorContains(t, err, "failed to login")
	})

	t.Run("dial_failure", func(t *testing.T) {
		orig := ftpDial
		defer func() { ftpDial = orig }()
		ftpDial = func(string, ...ftp.DialOption) (serverConn, error) {
			return nil, errors.New("connection refused")
		}
		s := NewStore(url.URL{Host: "nas.local"})
		_, err := s.ReadDir(context.Background(), "/")
		assert.ErrorContains(t, err, "failed to connect to ftp server")
	})

	t.Run("context_cancelled", func(t *testing.T) {
		withFakeDial(t, newTestConn())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewStore(url.URL{Host: "nas.local"}).ReadDir(ctx, "/pub")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStore_Stat(t *testing.T) {
	conn := newTestConn()
	withFakeDial(t, conn)
	s := NewStore(url.URL{Host: "nas.local"})

	fi, err := s.Stat(context.Background(), "/pub/readme.txt")
	require.NoError(t, err)
	assert.Equal(t, "readme.txt", fi.Name())
	assert.Equal(t, int64(42), fi.Size())
	assert.Equal(t, 2024, fi.ModTime().Year())

	_, err = s.Stat(context.Background(), "/pub/missing.txt")
	assert.Error(t, err)

	assert.NoError(t, s.Close())
	assert.Equal(t, 1, conn.quits)
	assert.NoError(t, s.Close())
}

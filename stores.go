package main

import (
	"fmt"
	"net"
	"net/url"
	"os"

	"github.com/datatug/netexplorer/pkg/files"
	"github.com/datatug/netexplorer/pkg/files/ftpfile"
	"github.com/datatug/netexplorer/pkg/files/httpfile"
	"github.com/datatug/netexplorer/pkg/files/osfile"
)

// newStore picks the store the global flags ask for; the local file
// system (including OS-mounted shares) by default.
func newStore(flags globalFlags) (files.Store, error) {
	switch {
	case flags.ftpHost != "":
		host := flags.ftpHost
		if _, _, err := net.SplitHostPort(host); err != nil {
			host = net.JoinHostPort(host, "21")
		}
		root := url.URL{Scheme: "ftp", Host: host, Path: "/"}
		if flags.ftpUser != "" {
			root.User = url.UserPassword(flags.ftpUser, flags.ftpPassword)
		}
		store := ftpfile.NewStore(root)
		store.SetTLS(flags.ftpTLS, false)
		return store, nil
	case flags.httpURL != "":
		root, err := url.Parse(flags.httpURL)
		if err != nil {
			return nil, fmt.Errorf("invalid --http URL: %w", err)
		}
		if root.Scheme != "http" && root.Scheme != "https" {
			return nil, fmt.Errorf("invalid --http URL %q: scheme must be http or https", flags.httpURL)
		}
		if root.Path == "" {
			root.Path = "/"
		}
		return httpfile.NewStore(*root), nil
	default:
		return osfile.NewStore(""), nil
	}
}

// defaultRoot is where browsing starts when no path is given.
func defaultRoot(store files.Store) string {
	if files.IsNetworkStore(store) {
		if p := store.RootURL().Path; p != "" {
			return p
		}
		return "/"
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "/"
}

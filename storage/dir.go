// This file is part of Elfpack.
//
// Elfpack is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Elfpack is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Elfpack.  If not, see <https://www.gnu.org/licenses/>.

package storage

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/elfpack/curated"
)

// Dir is a Provider that maps device URIs onto a directory on the host. An
// empty Root means URIs are treated as host paths.
type Dir struct {
	Root string
}

// Resolve returns the host path for the URI.
func (d Dir) Resolve(uri string) (string, error) {
	scheme := ""
	pth := uri

	if u, err := url.Parse(uri); err == nil && len(u.Scheme) > 1 {
		scheme = strings.ToLower(u.Scheme)
		pth = filepath.ToSlash(filepath.Join(u.Host, u.Path))
	}

	switch scheme {
	case "", "file":
	default:
		return "", curated.Errorf(UnknownScheme, scheme)
	}

	if d.Root == "" {
		return filepath.FromSlash(pth), nil
	}

	rel := filepath.Clean(filepath.FromSlash("/" + strings.TrimPrefix(pth, "/")))
	full := filepath.Join(d.Root, rel)

	root := filepath.Clean(d.Root)
	if full != root && !strings.HasPrefix(full, root+string(filepath.Separator)) {
		return "", curated.Errorf(OutsideRoot, uri)
	}

	return full, nil
}

// Open implements the Provider interface.
func (d Dir) Open(uri string) (Stream, error) {
	if u, err := url.Parse(uri); err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return openHTTP(uri)
		}
	}

	pth, err := d.Resolve(uri)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(pth)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, curated.Errorf(NotFound, uri)
		}
		return nil, curated.Errorf(StorageError, err)
	}

	return newStream(uri, data), nil
}

func openHTTP(uri string) (Stream, error) {
	resp, err := http.Get(uri)
	if err != nil {
		return nil, curated.Errorf(StorageError, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, curated.Errorf(NotFound, uri)
	default:
		return nil, curated.Errorf(StorageError, fmt.Sprintf("http status %d", resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, curated.Errorf(StorageError, err)
	}

	return newStream(uri, data), nil
}

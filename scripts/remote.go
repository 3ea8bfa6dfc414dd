package scripts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/reusee/scajl/scajl"
)

const maxRemoteSize = 4 << 20

// Remote fetches scripts named by http and https URLs.
type Remote struct {
	Client *http.Client
}

var _ scajl.ScriptLoader = Remote{}

func IsURL(name string) bool {
	return strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://")
}

func (r Remote) Load(ctx context.Context, name string) (scajl.Script, error) {
	if !IsURL(name) {
		return scajl.Script{}, fmt.Errorf("%w: %s is not a url", ErrNotFound, name)
	}
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, name, nil)
	if err != nil {
		return scajl.Script{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return scajl.Script{}, err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return scajl.Script{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	case resp.StatusCode != http.StatusOK:
		return scajl.Script{}, fmt.Errorf("fetch %s: %s", name, resp.Status)
	}
	content, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize+1))
	if err != nil {
		return scajl.Script{}, err
	}
	if len(content) > maxRemoteSize {
		return scajl.Script{}, fmt.Errorf("fetch %s: larger than %d bytes", name, maxRemoteSize)
	}
	if err := checkText(name, content); err != nil {
		return scajl.Script{}, err
	}
	base := path.Base(req.URL.Path)
	return scajl.Script{
		Name:    strings.TrimSuffix(base, path.Ext(base)),
		Path:    name,
		Content: string(content),
	}, nil
}

package scripts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/reusee/scajl/scajl"
)

// HiddenPrefix marks scripts meant to be run by other scripts only.
const HiddenPrefix = "--"

// Files loads named scripts from a directory.
// A name resolves to Dir/name+Ext, then to the hidden Dir/--name+Ext.
type Files struct {
	Dir string
	Ext string
}

var _ scajl.ScriptLoader = Files{}

func (f Files) Load(ctx context.Context, name string) (scajl.Script, error) {
	if err := ctx.Err(); err != nil {
		return scajl.Script{}, err
	}
	base := strings.TrimPrefix(name, HiddenPrefix)
	if f.Ext != "" && !strings.HasSuffix(base, f.Ext) {
		base += f.Ext
	}
	for _, candidate := range []string{
		filepath.Join(f.Dir, base),
		filepath.Join(f.Dir, HiddenPrefix+base),
	} {
		content, err := os.ReadFile(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		} else if err != nil {
			return scajl.Script{}, err
		}
		if err := checkText(candidate, content); err != nil {
			return scajl.Script{}, err
		}
		return scajl.Script{
			Name:    name,
			Path:    candidate,
			Content: string(content),
		}, nil
	}
	return scajl.Script{}, fmt.Errorf("%w: %s in %s", ErrNotFound, name, f.Dir)
}

// Path loads a script by its file path, for the command line.
type Path struct{}

var _ scajl.ScriptLoader = Path{}

func (Path) Load(ctx context.Context, name string) (scajl.Script, error) {
	if err := ctx.Err(); err != nil {
		return scajl.Script{}, err
	}
	content, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return scajl.Script{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	} else if err != nil {
		return scajl.Script{}, err
	}
	if err := checkText(name, content); err != nil {
		return scajl.Script{}, err
	}
	return scajl.Script{
		Name:    strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)),
		Path:    name,
		Content: string(content),
	}, nil
}

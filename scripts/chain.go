package scripts

import (
	"context"
	"errors"
	"fmt"

	"github.com/reusee/scajl/scajl"
)

// Chain tries each loader in order. Only not-found errors fall through.
type Chain []scajl.ScriptLoader

var _ scajl.ScriptLoader = Chain{}

func (c Chain) Load(ctx context.Context, name string) (scajl.Script, error) {
	for _, loader := range c {
		script, err := loader.Load(ctx, name)
		if errors.Is(err, ErrNotFound) {
			continue
		} else if err != nil {
			return scajl.Script{}, err
		}
		return script, nil
	}
	return scajl.Script{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

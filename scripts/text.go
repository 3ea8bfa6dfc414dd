package scripts

import (
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrNotFound = errors.New("script not found")
	ErrNotText  = errors.New("script is not text")
)

func checkText(name string, content []byte) error {
	if len(content) == 0 {
		return nil
	}
	mtype := mimetype.Detect(content)
	for t := mtype; t != nil; t = t.Parent() {
		if t.Is("text/plain") {
			return nil
		}
	}
	return fmt.Errorf("%w: %s is %s", ErrNotText, name, mtype.String())
}

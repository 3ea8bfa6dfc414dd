package main

import (
	"errors"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/reusee/scajl/scajl"
)

func promptUserInput(e *scajl.Engine, names []string, typ *scajl.ArgType, prompt string) (bool, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for _, name := range names {
		input, err := line.Prompt(name + "?: ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				e.Kill()
				return false, nil
			}
			return false, err
		}
		ok, err := e.PutTyped(name, strings.TrimSpace(input), typ, prompt)
		if err != nil || !ok {
			return false, err
		}
		line.AppendHistory(input)
	}
	return true, nil
}

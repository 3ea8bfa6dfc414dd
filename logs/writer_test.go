package logs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriter(t *testing.T) {
	if w := new(Module).Writer(); w != os.Stderr {
		t.Fatalf("got %v", w)
	}

	path := filepath.Join(t.TempDir(), "scajl.log")
	*logFileFlag = path
	defer func() {
		*logFileFlag = ""
	}()
	w := new(Module).Writer()
	if _, err := w.Write([]byte("first\n")); err != nil {
		t.Fatal(err)
	}
	w.(*os.File).Close()
	w = new(Module).Writer()
	if _, err := w.Write([]byte("second\n")); err != nil {
		t.Fatal(err)
	}
	w.(*os.File).Close()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "first\nsecond\n" {
		t.Fatalf("got %q", content)
	}
}

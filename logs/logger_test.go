package logs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/reusee/dscope"
)

func TestHandler(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		logger.Info("run", "script", "main")
		if underSystemdService() {
			return
		}
		if !strings.Contains(buf.String(), "script=main") {
			t.Fatalf("got %v", buf.String())
		}
	})
}

func TestJournalKey(t *testing.T) {
	if got := toJournalKey("logs.span"); got != "LOGS_SPAN" {
		t.Fatalf("got %v", got)
	}
	if got := toJournalKey("line-2"); got != "LINE_2" {
		t.Fatalf("got %v", got)
	}
}

func TestSpanSurvivesWith(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		if underSystemdService() {
			return
		}
		ctx := context.WithValue(context.Background(), SpanKey, Span("s1"))
		logger.With("script", "main").InfoContext(ctx, "run")
		out := buf.String()
		if !strings.Contains(out, "logs.span=s1") || !strings.Contains(out, "script=main") {
			t.Fatalf("got %v", out)
		}

		err := WrapSpan(ctx, errors.New("boom"))
		if err.Error() != "boom (span: s1)" {
			t.Fatalf("got %v", err)
		}
		if WrapSpan(context.Background(), nil) != nil {
			t.Fatal()
		}
	})
}

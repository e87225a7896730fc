package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLevelString(t *testing.T) {
	cases := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}
	for _, c := range cases {
		if got := c.level.String(); got != c.want {
			t.Errorf("Level(%d).String() = %q, want %q", c.level, got, c.want)
		}
	}
}

func TestFieldConstructors(t *testing.T) {
	if f := String("path", "/tmp/x"); f.Key != "path" || f.Value.String() != "/tmp/x" {
		t.Errorf("String field: %+v", f)
	}
	if f := Int("count", 7); f.Key != "count" || f.Value.Int64() != 7 {
		t.Errorf("Int field: %+v", f)
	}
	if f := Int64("bytes", 1<<20); f.Key != "bytes" || f.Value.Int64() != 1<<20 {
		t.Errorf("Int64 field: %+v", f)
	}
	if f := Bool("ok", true); f.Key != "ok" || !f.Value.Bool() {
		t.Errorf("Bool field: %+v", f)
	}
	if f := Duration("elapsed", 5*time.Second); f.Key != "elapsed" || f.Value.String() != "5s" {
		t.Errorf("Duration field: %+v", f)
	}

	withErr := Err(errors.New("boom"))
	if withErr.Key != "error" || withErr.Value.String() != "boom" {
		t.Errorf("Err field: %+v", withErr)
	}
	withNilErr := Err(nil)
	if withNilErr.Key != "error" {
		t.Errorf("Err(nil) key: %+v", withNilErr)
	}
}

func TestNullLoggerIsNoOp(t *testing.T) {
	var l Logger = nullLogger{}
	l.Debug("should not panic")
	l.Info("should not panic")
	l.Warn("should not panic")
	l.Error("should not panic")

	if child := l.WithFields(String("k", "v")); child != l {
		t.Error("nullLogger.WithFields should return the same no-op instance")
	}
}

func TestSimpleLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSimpleLogger(&buf, LevelWarn)

	logger.Info("quiet", String("k", "v"))
	if buf.Len() != 0 {
		t.Fatalf("expected no output below the configured level, got %q", buf.String())
	}

	logger.Warn("loud", String("k", "v"))
	out := buf.String()
	if !strings.Contains(out, "loud") || !strings.Contains(out, "k=v") {
		t.Errorf("unexpected log line: %q", out)
	}
}

func TestSimpleLoggerWithFieldsPersist(t *testing.T) {
	var buf bytes.Buffer
	base := NewSimpleLogger(&buf, LevelInfo)
	scoped := base.WithFields(String("db", "main"))

	scoped.Info("opened")
	if out := buf.String(); !strings.Contains(out, "db=main") {
		t.Errorf("expected persistent field in output, got %q", out)
	}
}

func TestPackageLevelLoggerRoundTrip(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	var buf bytes.Buffer
	SetLogger(NewSimpleLogger(&buf, LevelDebug))

	Info("package level", String("who", "steel"))
	if out := buf.String(); !strings.Contains(out, "package level") {
		t.Errorf("expected package-level Info to reach installed logger, got %q", out)
	}

	SetLogger(nil)
	if _, ok := GetLogger().(nullLogger); !ok {
		t.Error("SetLogger(nil) should restore the null logger")
	}
}

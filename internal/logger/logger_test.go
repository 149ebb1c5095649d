package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/op/go-logging"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]logging.Level{
		"debug":   logging.DEBUG,
		"INFO":    logging.INFO,
		"warn":    logging.WARNING,
		"error":   logging.ERROR,
		"":        logging.WARNING,
		"verbose": logging.WARNING,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInit_ConsoleLevelAndFileBackend(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "inventory.log")
	if err := Init(logging.WARNING, &buf, path); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() {
		Close()
		_ = Init(logging.WARNING, os.Stderr, "")
	})

	Infof("added product %d", 1)
	Warningf("careful %s", "now")

	if strings.Contains(buf.String(), "added product") {
		t.Fatalf("info leaked to console at WARNING: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "careful now") {
		t.Fatalf("warning missing from console: %q", buf.String())
	}
	Close()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "added product 1") {
		t.Fatalf("file backend missing debug/info entry: %q", data)
	}
}

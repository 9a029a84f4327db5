package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/line21/frame"
	"github.com/ausocean/line21/pipeline/config"
)

// testLogger routes pipeline diagnostics through the testing package,
// mirroring revid's own test logger so pipeline tests see the same
// logging shape the rest of the decode pipeline is built against.
type testLogger testing.T

func (tl *testLogger) Debug(msg string, args ...interface{})   { tl.Log(logging.Debug, msg, args...) }
func (tl *testLogger) Info(msg string, args ...interface{})    { tl.Log(logging.Info, msg, args...) }
func (tl *testLogger) Warning(msg string, args ...interface{}) { tl.Log(logging.Warning, msg, args...) }
func (tl *testLogger) Error(msg string, args ...interface{})   { tl.Log(logging.Error, msg, args...) }
func (tl *testLogger) Fatal(msg string, args ...interface{})   { tl.Log(logging.Fatal, msg, args...) }
func (tl *testLogger) SetLevel(lvl int8)                       {}
func (tl *testLogger) Log(lvl int8, msg string, args ...interface{}) {
	((*testing.T)(tl)).Logf("%s: %s %v", msg, msg, args)
}

// blankSource yields n frames of flat gray pixels, carrying no caption
// preamble, then io.EOF.
type blankSource struct {
	n             int
	width, height int
}

func (s *blankSource) Next() (frame.Frame, error) {
	if s.n <= 0 {
		return frame.Frame{}, io.EOF
	}
	s.n--
	pix := make([]uint8, s.width*s.height)
	for i := range pix {
		pix[i] = 128
	}
	return frame.Frame{Width: s.width, Height: s.height, Pix: pix}, nil
}

func baseConfig(t *testing.T, formats ...config.Format) config.Config {
	t.Helper()
	return config.Config{
		Width:              64,
		Height:             10,
		StartLine:          0,
		SearchLines:        10,
		Formats:            formats,
		OutputDir:          t.TempDir(),
		FieldLockThreshold: 3,
		Logger:             (*testLogger)(t),
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(config.Config{})
	if err == nil {
		t.Fatal("New should reject a zero-value config")
	}
}

func TestNewOpensOneOutputFilePerFormat(t *testing.T) {
	cfg := baseConfig(t, config.FormatTXT, config.FormatHTML)
	if _, err := New(cfg); err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for _, name := range []string{"output.txt", "output.html"} {
		if _, err := os.Stat(filepath.Join(cfg.OutputDir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
}

func TestRunOnCaptionlessFramesStillClosesSinksCleanly(t *testing.T) {
	cfg := baseConfig(t, config.FormatTXT, config.FormatHTML)
	dec, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	src := &blankSource{n: 3, width: cfg.Width, height: cfg.Height}
	if err := dec.Run(context.Background(), src); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	txt, err := os.ReadFile(filepath.Join(cfg.OutputDir, "output.txt"))
	if err != nil {
		t.Fatalf("reading output.txt: %v", err)
	}
	if len(txt) != 0 {
		t.Errorf("output.txt should be empty with no captions, got %q", txt)
	}

	html, err := os.ReadFile(filepath.Join(cfg.OutputDir, "output.html"))
	if err != nil {
		t.Fatalf("reading output.html: %v", err)
	}
	if !strings.Contains(string(html), "</body></html>") {
		t.Errorf("output.html should still be closed out properly, got %q", html)
	}
}

func TestRunRespectsContextCancellation(t *testing.T) {
	cfg := baseConfig(t, config.FormatTXT)
	dec, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := dec.Run(ctx, &blankSource{n: 1000, width: cfg.Width, height: cfg.Height}); err != context.Canceled {
		t.Errorf("Run with a pre-canceled context = %v, want context.Canceled", err)
	}
}

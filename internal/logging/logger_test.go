package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/clothingadvisor/backend/internal/config"
)

func TestNew_ProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(&buf, &config.Config{AppEnv: "prod", LogLevel: slog.LevelInfo}, "advisor")

	logger.Info("hello", "zip_code", "10001")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if rec["app"] != "advisor" || rec["env"] != "prod" || rec["zip_code"] != "10001" {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestNew_DevRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(&buf, &config.Config{AppEnv: "dev", LogLevel: slog.LevelWarn}, "advisor")

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected output %q", out)
	}
}

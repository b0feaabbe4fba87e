package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestSetup_OutputsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&buf)

	log.Info("起動しました", "port", 8080)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("出力がJSONではない: %v", err)
	}

	if entry["msg"] != "起動しました" {
		t.Errorf("msg = %v, want 起動しました", entry["msg"])
	}
	if entry["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", entry["level"])
	}
	if entry["port"] != float64(8080) {
		t.Errorf("port = %v, want 8080", entry["port"])
	}
}

func TestSetup_DebugFiltered(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&buf)

	log.Debug("デバッグメッセージ")

	if buf.Len() != 0 {
		t.Errorf("DEBUGレベルは出力されないはず: %q", buf.String())
	}
}

func TestSetupDefault_SetsGlobalLogger(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	var buf bytes.Buffer
	SetupDefault(&buf)

	slog.Warn("警告です")

	if !strings.Contains(buf.String(), "警告です") {
		t.Errorf("グローバルロガーが指定のwriterに出力していない: %q", buf.String())
	}
}

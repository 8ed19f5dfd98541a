package log

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHelpersWriteToSetLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	Debugw("applied migration", "version", 1)
	Info("run ledger initialized in memory")
	Infow("heatmaps generated", "ks", "4,8")
	Warnw("suppressed heatmap generation error", "ks", "4")
	Errorw("heatmap generation failed", "run", "abc")

	want := []struct {
		level zapcore.Level
		msg   string
	}{
		{zapcore.DebugLevel, "applied migration"},
		{zapcore.InfoLevel, "run ledger initialized in memory"},
		{zapcore.InfoLevel, "heatmaps generated"},
		{zapcore.WarnLevel, "suppressed heatmap generation error"},
		{zapcore.ErrorLevel, "heatmap generation failed"},
	}
	entries := logs.All()
	if len(entries) != len(want) {
		t.Fatalf("logged %d entries, want %d", len(entries), len(want))
	}
	for i, w := range want {
		if entries[i].Level != w.level || entries[i].Message != w.msg {
			t.Errorf("entry %d = %v %q, want %v %q", i, entries[i].Level, entries[i].Message, w.level, w.msg)
		}
	}
	if ks := entries[2].ContextMap()["ks"]; ks != "4,8" {
		t.Errorf("ks field = %v", ks)
	}
}

func TestSyncWithoutInit(t *testing.T) {
	SetLogger(zap.NewNop())
	Sync()
}

package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestContextLogger(t *testing.T) {
	l := zap.NewNop()
	ctx := WithContext(context.Background(), l)
	if FromContext(ctx) != l {
		t.Fatal("expected logger from context")
	}
	if FromContext(context.Background()) == nil {
		t.Fatal("expected global fallback")
	}
}

func TestSugaredSatisfiesLogger(t *testing.T) {
	var _ Logger = Nop()
}

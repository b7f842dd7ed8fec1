package faults_test

import (
	"errors"
	"strings"
	"testing"

	"mediapress/internal/faults"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := faults.Wrap(faults.ErrExternalTool, "video", "transcode", "ffmpeg exited", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, faults.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"video", "transcode", "ffmpeg exited"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapNilMarkerFallsBack(t *testing.T) {
	err := faults.Wrap(nil, "verify", "", "count mismatch", nil)
	if !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected validation fallback, got %v", err)
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := faults.Wrap(faults.ErrConfiguration, "", "", "", nil)
	if !strings.Contains(err.Error(), "pipeline failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

package verify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mediapress/internal/faults"
	"mediapress/internal/testsupport"
)

var opts = Options{Suffix: "_compressed", MaxCompression: 0.99}

func TestTreesMatchingRun(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()

	testsupport.WriteFile(t, filepath.Join(input, "a.jpg"), 1000)
	testsupport.WriteFile(t, filepath.Join(input, "sub", "b.mov"), 2000)
	testsupport.WriteFile(t, filepath.Join(input, "notes.txt"), 300)

	testsupport.WriteFile(t, filepath.Join(output, "a_compressed.jpg"), 600)
	testsupport.WriteFile(t, filepath.Join(output, "sub", "b_compressed.mp4"), 900)
	testsupport.WriteFile(t, filepath.Join(output, "notes.txt"), 300)

	result, err := Trees(input, output, opts)
	if err != nil {
		t.Fatalf("Trees: %v", err)
	}
	if result.Compressed != 2 || result.Copied != 1 {
		t.Fatalf("counts = %d compressed / %d copied", result.Compressed, result.Copied)
	}
	for _, pair := range result.Pairs {
		if pair.InputRel == "notes.txt" && pair.Compressed {
			t.Fatal("copied file flagged as compressed")
		}
	}
}

func TestTreesCountMismatch(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(input, "a.jpg"), 100)
	testsupport.WriteFile(t, filepath.Join(input, "b.jpg"), 100)
	testsupport.WriteFile(t, filepath.Join(output, "a.jpg"), 100)

	_, err := Trees(input, output, opts)
	if !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTreesNameMismatch(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(input, "a.jpg"), 100)
	testsupport.WriteFile(t, filepath.Join(output, "z.jpg"), 100)

	_, err := Trees(input, output, opts)
	if !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTreesExtensionChangeStillMatches(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	// A .mov input legitimately becomes a suffixed .mp4 output.
	testsupport.WriteFile(t, filepath.Join(input, "clip.mov"), 5000)
	testsupport.WriteFile(t, filepath.Join(output, "clip_compressed.mp4"), 2500)

	result, err := Trees(input, output, opts)
	if err != nil {
		t.Fatalf("Trees: %v", err)
	}
	if result.Compressed != 1 {
		t.Fatalf("expected one compressed pair, got %+v", result)
	}
}

func TestTreesImplausibleCompressionRate(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(input, "a.jpg"), 100000)
	testsupport.WriteFile(t, filepath.Join(output, "a_compressed.jpg"), 10)

	_, err := Trees(input, output, opts)
	if !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected rate-bound violation, got %v", err)
	}
}

func TestTreesZeroByteInput(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	if err := os.WriteFile(filepath.Join(input, "empty.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(output, "empty.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Trees(input, output, opts); err != nil {
		t.Fatalf("zero-byte files must not divide by zero: %v", err)
	}
}

func TestTempClean(t *testing.T) {
	temp := t.TempDir()
	if err := TempClean(temp); err != nil {
		t.Fatalf("empty temp should pass: %v", err)
	}

	testsupport.WriteFile(t, filepath.Join(temp, "leftover.jpg"), 10)
	err := TempClean(temp)
	if !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected validation error for leftovers, got %v", err)
	}
}

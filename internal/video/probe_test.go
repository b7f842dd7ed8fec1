package video

import (
	"testing"
)

const sampleProbe = `{
  "streams": [
    {"codec_name": "aac", "codec_type": "audio"},
    {"codec_name": "hevc", "codec_type": "video", "width": 1920, "height": 1080}
  ],
  "format": {"duration": "12.480000"}
}`

func TestParseProbe(t *testing.T) {
	info, err := parseProbe(sampleProbe)
	if err != nil {
		t.Fatalf("parseProbe: %v", err)
	}

	stream := info.VideoStream()
	if stream == nil {
		t.Fatal("expected a video stream")
	}
	if stream.CodecName != "hevc" {
		t.Fatalf("codec = %q", stream.CodecName)
	}
	if stream.Width != 1920 || stream.Height != 1080 {
		t.Fatalf("dimensions = %dx%d", stream.Width, stream.Height)
	}
	if got := info.DurationSeconds(); got != 12.48 {
		t.Fatalf("duration = %v", got)
	}
}

func TestParseProbeRejectsGarbage(t *testing.T) {
	if _, err := parseProbe("ffprobe exploded"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestVideoStreamMissing(t *testing.T) {
	info, err := parseProbe(`{"streams": [{"codec_name": "aac", "codec_type": "audio"}], "format": {}}`)
	if err != nil {
		t.Fatal(err)
	}
	if info.VideoStream() != nil {
		t.Fatal("audio-only container should have no video stream")
	}
	if info.DurationSeconds() != 0 {
		t.Fatalf("missing duration should yield 0, got %v", info.DurationSeconds())
	}
}

func TestCodecForEncoder(t *testing.T) {
	cases := map[string]string{
		"libx265": "hevc",
		"libx264": "h264",
		"vp9":     "",
	}
	for encoder, want := range cases {
		if got := codecForEncoder(encoder); got != want {
			t.Errorf("codecForEncoder(%q) = %q, want %q", encoder, got, want)
		}
	}
}

func TestOutputArgs(t *testing.T) {
	kwargs := outputArgs(Settings{Codec: "libx265", CRF: 24})
	if kwargs["c:v"] != "libx265" {
		t.Fatalf("c:v = %v", kwargs["c:v"])
	}
	if kwargs["crf"] != 24 {
		t.Fatalf("crf = %v", kwargs["crf"])
	}
	if kwargs["c:a"] != "copy" {
		t.Fatalf("audio must be copied through, got %v", kwargs["c:a"])
	}
	if kwargs["map_metadata"] != "0" || kwargs["movflags"] != "use_metadata_tags" {
		t.Fatal("metadata retention flags missing")
	}
	if kwargs["x265-params"] != "log-level=error" {
		t.Fatal("x265 log suppression missing")
	}
	if _, ok := kwargs["x264-params"]; ok {
		t.Fatal("x264 params leaked into x265 invocation")
	}

	kwargs = outputArgs(Settings{Codec: "libx264", CRF: 20})
	if kwargs["x264-params"] != "log-level=error" {
		t.Fatal("x264 log suppression missing")
	}
	if _, ok := kwargs["tag:v"]; ok {
		t.Fatal("hvc1 tag only applies to hevc output")
	}
}

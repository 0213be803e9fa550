package transcode

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestDecodeFileMissing(t *testing.T) {
	decoder := NewDecoder(nil)

	_, err := decoder.DecodeFile("/nonexistent/path/song.mp3")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T: %v", err, err)
	}
	if decodeErr.Path != "/nonexistent/path/song.mp3" {
		t.Errorf("DecodeError.Path = %q, expected the requested path", decodeErr.Path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected the underlying stat error to unwrap, got %v", decodeErr.Err)
	}
}

func TestDecodeErrorMessage(t *testing.T) {
	err := &DecodeError{Path: "track.mp3", Err: errors.New("no audio stream found")}

	msg := err.Error()
	if !strings.Contains(msg, "track.mp3") || !strings.Contains(msg, "no audio stream found") {
		t.Errorf("error message %q should name the path and the cause", msg)
	}

	if err.Unwrap() == nil {
		t.Error("Unwrap returned nil, the cause should be reachable")
	}
}

func TestDefaultDecoderConfig(t *testing.T) {
	config := DefaultDecoderConfig()

	if config.TargetSampleRate != 22050 {
		t.Errorf("TargetSampleRate = %d, expected 22050", config.TargetSampleRate)
	}
	if config.FFmpegPath == "" || config.FFprobePath == "" {
		t.Error("tool paths must default to the bare command names")
	}
	if config.Timeout <= 0 {
		t.Errorf("Timeout = %v, expected positive", config.Timeout)
	}
}

func TestNewDecoderNilConfig(t *testing.T) {
	decoder := NewDecoder(nil)
	if decoder.config == nil {
		t.Fatal("nil config should fall back to defaults")
	}
	if decoder.config.Timeout != 30*time.Second {
		t.Errorf("default timeout = %v, expected 30s", decoder.config.Timeout)
	}
}

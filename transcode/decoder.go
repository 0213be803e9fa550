package transcode

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/audiomood/moodscan/logging"
)

// AudioData represents decoded audio data
type AudioData struct {
	PCM        []float64     `json:"-"` // Mono PCM samples
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"`
	Duration   time.Duration `json:"duration"`
}

// DecodeError indicates the input could not be read or decoded as audio.
// Fatal for the analysis call and not retried.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecoderConfig holds decoder configuration
type DecoderConfig struct {
	TargetSampleRate int           `json:"target_sample_rate"`
	FFmpegPath       string        `json:"ffmpeg_path"`
	FFprobePath      string        `json:"ffprobe_path"`
	Timeout          time.Duration `json:"timeout"`
}

// DefaultDecoderConfig returns default decoder configuration
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		TargetSampleRate: 22050,
		FFmpegPath:       "ffmpeg",  // Assume in PATH
		FFprobePath:      "ffprobe", // Assume in PATH
		Timeout:          30 * time.Second,
	}
}

// Decoder handles audio decoding using FFmpeg, mixing everything down to
// mono float64 PCM at the target sample rate
type Decoder struct {
	config *DecoderConfig
}

// NewDecoder creates a new audio decoder
func NewDecoder(config *DecoderConfig) *Decoder {
	if config == nil {
		config = DefaultDecoderConfig()
	}
	return &Decoder{config: config}
}

// probeResult is the subset of ffprobe JSON output the decoder cares about
type probeResult struct {
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// DecodeFile decodes an audio file and returns mono PCM data.
// Unreadable or corrupt input returns a *DecodeError.
func (d *Decoder) DecodeFile(path string) (*AudioData, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "audio_decoder",
		"function":  "DecodeFile",
		"path":      path,
	})

	logger.Debug("Starting audio file decode")

	if _, err := os.Stat(path); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	probe, err := d.probeFile(path)
	if err != nil {
		logger.Error(err, "Failed to probe audio file")
		return nil, &DecodeError{Path: path, Err: err}
	}

	logger.Debug("Audio metadata detected", logging.Fields{
		"input_codec":       probe.codec,
		"input_sample_rate": probe.sampleRate,
		"input_channels":    probe.channels,
		"input_duration":    probe.duration,
	})

	pcm, err := d.decodeToPCM(path)
	if err != nil {
		logger.Error(err, "Failed to decode audio file")
		return nil, &DecodeError{Path: path, Err: err}
	}

	if len(pcm) == 0 {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("no audio samples produced")}
	}

	duration := time.Duration(float64(len(pcm)) / float64(d.config.TargetSampleRate) * float64(time.Second))

	logger.Debug("Decode complete", logging.Fields{
		"samples":     len(pcm),
		"sample_rate": d.config.TargetSampleRate,
		"duration":    duration,
	})

	return &AudioData{
		PCM:        pcm,
		SampleRate: d.config.TargetSampleRate,
		Channels:   1,
		Duration:   duration,
	}, nil
}

type probeInfo struct {
	codec      string
	sampleRate int
	channels   int
	duration   float64
}

// probeFile runs ffprobe to verify the file contains a decodable audio stream
func (d *Decoder) probeFile(path string) (*probeInfo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d.config.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, d.config.FFprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-show_format",
		path,
	)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var result probeResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		return nil, fmt.Errorf("ffprobe output unreadable: %w", err)
	}

	for _, stream := range result.Streams {
		if stream.CodecType != "audio" {
			continue
		}

		info := &probeInfo{
			codec:    stream.CodecName,
			channels: stream.Channels,
		}
		if rate, err := strconv.Atoi(stream.SampleRate); err == nil {
			info.sampleRate = rate
		}
		if dur, err := strconv.ParseFloat(result.Format.Duration, 64); err == nil {
			info.duration = dur
		}
		return info, nil
	}

	return nil, fmt.Errorf("no audio stream found")
}

// decodeToPCM runs ffmpeg and reads raw little-endian float64 samples
func (d *Decoder) decodeToPCM(path string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d.config.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, d.config.FFmpegPath,
		"-v", "quiet",
		"-i", path,
		"-f", "f64le",
		"-acodec", "pcm_f64le",
		"-ac", "1",
		"-ar", strconv.Itoa(d.config.TargetSampleRate),
		"pipe:1",
	)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %w", err)
	}

	raw := stdout.Bytes()
	numSamples := len(raw) / 8
	pcm := make([]float64, numSamples)

	for i := 0; i < numSamples; i++ {
		bits := binary.LittleEndian.Uint64(raw[i*8 : (i+1)*8])
		pcm[i] = math.Float64frombits(bits)
	}

	return pcm, nil
}

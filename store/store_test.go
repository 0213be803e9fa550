package store

import (
	"path/filepath"
	"testing"

	"github.com/audiomood/moodscan/features"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "moodscan_test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreSaveAndHistory(t *testing.T) {
	s := openTestStore(t)

	results := []struct {
		filename string
		result   features.AnalysisResult
	}{
		{"first.mp3", features.AnalysisResult{Energy: 0.8, Danceability: 0.7, Tempo: 120.0, Acousticness: 0.2, Valence: 0.6}},
		{"second.wav", features.AnalysisResult{Energy: 0.3, Danceability: 0.0, Tempo: 0.0, Acousticness: 0.9, Valence: 0.4}},
	}

	for _, r := range results {
		track, err := s.Save(r.filename, &r.result)
		if err != nil {
			t.Fatalf("Save(%s) failed: %v", r.filename, err)
		}
		if track.ID == 0 {
			t.Errorf("Save(%s) did not assign an ID", r.filename)
		}
		if track.Filename != r.filename {
			t.Errorf("saved filename %q, expected %q", track.Filename, r.filename)
		}
	}

	tracks, err := s.History()
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(tracks) != len(results) {
		t.Fatalf("history has %d tracks, expected %d", len(tracks), len(results))
	}

	// Oldest first
	for i, track := range tracks {
		expected := results[i]
		if track.Filename != expected.filename {
			t.Errorf("history[%d].Filename = %q, expected %q", i, track.Filename, expected.filename)
		}
		if track.Energy != expected.result.Energy || track.Tempo != expected.result.Tempo {
			t.Errorf("history[%d] does not match the saved result: %+v", i, track)
		}
		if track.CreatedAt.IsZero() {
			t.Errorf("history[%d].CreatedAt not set", i)
		}
	}
}

func TestStoreEmptyHistory(t *testing.T) {
	s := openTestStore(t)

	tracks, err := s.History()
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(tracks) != 0 {
		t.Errorf("fresh store has %d tracks, expected none", len(tracks))
	}
}

func TestStoreDuplicateFilenames(t *testing.T) {
	s := openTestStore(t)

	// Re-analyzing the same file appends a new row rather than replacing
	result := &features.AnalysisResult{Energy: 0.5, Tempo: 100.0}
	for _i := 0; _i < 2; _i++ {
		if _, err := s.Save("same.mp3", result); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	tracks, err := s.History()
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(tracks) != 2 {
		t.Errorf("history has %d tracks, expected 2 rows for repeated analysis", len(tracks))
	}
}

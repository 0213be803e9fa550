package store

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/audiomood/moodscan/features"
	"github.com/audiomood/moodscan/logging"
)

// Track is one analyzed file with its five perceptual descriptors
type Track struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Filename     string    `gorm:"index;not null" json:"filename"`
	Energy       float64   `json:"energy"`
	Danceability float64   `json:"danceability"`
	Tempo        float64   `json:"tempo"`
	Acousticness float64   `json:"acousticness"`
	Valence      float64   `json:"valence"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store persists analysis results in a local SQLite database
type Store struct {
	db     *gorm.DB
	logger logging.Logger
}

// Open opens (creating if necessary) the database at path and migrates
// the schema
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	if err := db.AutoMigrate(&Track{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &Store{
		db:     db,
		logger: logging.WithFields(logging.Fields{"component": "store", "db_path": path}),
	}, nil
}

// Save persists one analysis result under the uploaded filename
func (s *Store) Save(filename string, result *features.AnalysisResult) (*Track, error) {
	track := &Track{
		Filename:     filename,
		Energy:       result.Energy,
		Danceability: result.Danceability,
		Tempo:        result.Tempo,
		Acousticness: result.Acousticness,
		Valence:      result.Valence,
	}

	if err := s.db.Create(track).Error; err != nil {
		return nil, fmt.Errorf("save track %s: %w", filename, err)
	}

	s.logger.Debug("Saved track", logging.Fields{"filename": filename, "id": track.ID})
	return track, nil
}

// History returns all stored tracks, oldest first
func (s *Store) History() ([]Track, error) {
	var tracks []Track
	if err := s.db.Order("id asc").Find(&tracks).Error; err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return tracks, nil
}

// Close releases the underlying database handle
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

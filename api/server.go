package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/audiomood/moodscan/features"
	"github.com/audiomood/moodscan/logging"
	"github.com/audiomood/moodscan/store"
	"github.com/audiomood/moodscan/transcode"
)

// maxUploadBytes bounds the multipart form held in memory before
// spilling to disk
const maxUploadBytes = 64 << 20

// Server exposes the analysis pipeline over HTTP:
// POST /analyze uploads a file, analyzes it, and persists the result;
// GET /history lists everything analyzed so far.
type Server struct {
	extractor *features.Extractor
	store     *store.Store
	tempDir   string
	logger    logging.Logger
}

// AnalyzeResponse is the JSON body returned by POST /analyze
type AnalyzeResponse struct {
	Filename string                   `json:"filename"`
	Features *features.AnalysisResult `json:"features"`
}

// NewServer creates an HTTP server over the given extractor and store
func NewServer(extractor *features.Extractor, db *store.Store) *Server {
	return &Server{
		extractor: extractor,
		store:     db,
		tempDir:   os.TempDir(),
		logger:    logging.WithFields(logging.Fields{"component": "api_server"}),
	}
}

// Handler builds the routed handler with permissive CORS for browser
// clients
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/analyze", s.handleAnalyze).Methods("POST")
	router.HandleFunc("/history", s.handleHistory).Methods("GET")

	return cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}).Handler(router)
}

// ListenAndServe runs the server on addr until it fails
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("Listening", logging.Fields{"addr": addr})
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	// Spool the upload to a uniquely named temp file for ffmpeg
	tempPath := filepath.Join(s.tempDir, fmt.Sprintf("moodscan_%s%s", uuid.New().String(), filepath.Ext(header.Filename)))
	tempFile, err := os.Create(tempPath)
	if err != nil {
		s.logger.Error(err, "Failed to create temp file")
		s.writeError(w, http.StatusInternalServerError, "could not store upload")
		return
	}
	defer os.Remove(tempPath)

	if _, err := io.Copy(tempFile, file); err != nil {
		tempFile.Close()
		s.logger.Error(err, "Failed to write upload")
		s.writeError(w, http.StatusInternalServerError, "could not store upload")
		return
	}
	tempFile.Close()

	result, err := s.extractor.ExtractFeatures(tempPath)
	if err != nil {
		var decodeErr *transcode.DecodeError
		if errors.As(err, &decodeErr) {
			s.writeError(w, http.StatusBadRequest, "could not analyze audio file")
			return
		}
		s.logger.Error(err, "Analysis failed", logging.Fields{"filename": header.Filename})
		s.writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	if _, err := s.store.Save(header.Filename, result); err != nil {
		s.logger.Error(err, "Failed to persist result", logging.Fields{"filename": header.Filename})
		s.writeError(w, http.StatusInternalServerError, "could not persist result")
		return
	}

	s.writeJSON(w, http.StatusOK, AnalyzeResponse{
		Filename: header.Filename,
		Features: result,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	tracks, err := s.store.History()
	if err != nil {
		s.logger.Error(err, "Failed to load history")
		s.writeError(w, http.StatusInternalServerError, "could not load history")
		return
	}

	s.writeJSON(w, http.StatusOK, tracks)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error(err, "Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, map[string]string{"detail": detail})
}

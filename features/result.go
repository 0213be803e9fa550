package features

// AnalysisResult is the output record of one analysis call: five
// independently computed descriptors. Energy, danceability, acousticness
// and valence are constrained to [0, 1]; tempo is unconstrained
// non-negative BPM.
type AnalysisResult struct {
	Energy       float64 `json:"energy"`
	Danceability float64 `json:"danceability"`
	Tempo        float64 `json:"tempo"`
	Acousticness float64 `json:"acousticness"`
	Valence      float64 `json:"valence"`
}

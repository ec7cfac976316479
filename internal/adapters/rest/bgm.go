package rest

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/srirammulukuntla11/vocalmaster/internal/core/domain"
	"github.com/srirammulukuntla11/vocalmaster/internal/core/services"
)

const (
	maxRequestBytes  = 4 << 20
	downloadFilename = "bgm_track.wav"
	wavDataURLPrefix = "data:audio/wav;base64,"
)

type generateRequest struct {
	AnalysisData *domain.AnalysisPayload `json:"analysis_data"`
	Duration     *float64                `json:"duration"`
}

type generateResponse struct {
	Status      string   `json:"status"`
	Key         string   `json:"key"`
	Tempo       int      `json:"tempo"`
	Style       string   `json:"style"`
	Duration    float64  `json:"duration"`
	AudioData   string   `json:"audio_data"`
	DownloadURL string   `json:"download_url"`
	Message     string   `json:"message"`
	ChordsUsed  []string `json:"chords_used"`
}

type testBGMResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	TestAudio string `json:"test_audio"`
}

func wavDataURL(wav []byte) string {
	return wavDataURLPrefix + base64.StdEncoding.EncodeToString(wav)
}

// GenerateBGM handles POST /generate-bgm
func (h *Handler) GenerateBGM(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// An absent, null or empty object body carries no data at all.
	var fields map[string]json.RawMessage
	if len(bytes.TrimSpace(body)) == 0 {
		writeError(w, http.StatusBadRequest, "No JSON data provided")
		return
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(fields) == 0 {
		writeError(w, http.StatusBadRequest, "No JSON data provided")
		return
	}

	var req generateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	in := services.GenerateRequest{Duration: req.Duration}
	if req.AnalysisData != nil {
		in.Analysis = *req.AnalysisData
	}

	res, err := h.svc.GenerateBGM(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Status:      "success",
		Key:         res.Track.Key,
		Tempo:       res.Track.Tempo,
		Style:       res.Track.Style,
		Duration:    res.Track.Duration,
		AudioData:   wavDataURL(res.WAV),
		DownloadURL: "/download-bgm/" + res.Artifact.ID,
		Message:     res.Message,
		ChordsUsed:  res.ChordsUsed,
	})
}

// DownloadBGM handles GET /download-bgm/{id}
func (h *Handler) DownloadBGM(w http.ResponseWriter, r *http.Request) {
	art, err := h.svc.OpenArtifact(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}

	f, err := os.Open(art.Path)
	if err != nil {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Disposition", `attachment; filename="`+downloadFilename+`"`)
	http.ServeContent(w, r, downloadFilename, art.CreatedAt, f)
}

// TestBGM handles GET /test-bgm
func (h *Handler) TestBGM(w http.ResponseWriter, r *http.Request) {
	wav, err := h.svc.TestTrack(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, testBGMResponse{
		Status:    "success",
		Message:   "BGM generation is working!",
		TestAudio: wavDataURL(wav),
	})
}

package api

import (
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"mediscribe/internal/ai"
	"mediscribe/internal/capture"
	"mediscribe/internal/middleware"
	"mediscribe/internal/model"
	"mediscribe/internal/storage"
	"mediscribe/internal/stt"
	"mediscribe/internal/utils"
)

// RecordingHandler owns the dictation flow: audio upload, transcription
// through the configured STT provider, and handoff of the transcript to the
// intake pipeline.
type RecordingHandler struct {
	sessions  *capture.Manager
	pipeline  *ai.Pipeline
	uploadDir string

	sttProvider     stt.Provider
	sttProviderErr  error
	sttProviderOnce sync.Once
}

func NewRecordingHandler(sessions *capture.Manager, pipeline *ai.Pipeline, uploadDir string) *RecordingHandler {
	return &RecordingHandler{sessions: sessions, pipeline: pipeline, uploadDir: uploadDir}
}

// getSTTProvider returns the STT provider (lazy singleton)
func (h *RecordingHandler) getSTTProvider() (stt.Provider, error) {
	h.sttProviderOnce.Do(func() {
		h.sttProvider, h.sttProviderErr = stt.CreateProvider()
		if h.sttProviderErr != nil {
			log.Printf("Failed to create STT provider: %v", h.sttProviderErr)
		} else {
			log.Printf("STT provider initialized: %s", h.sttProvider.Name())
		}
	})
	return h.sttProvider, h.sttProviderErr
}

// ownedRecording looks up a recording and answers 404 when it does not
// exist or belongs to another identity. Clinical transcripts and drafts
// follow the same per-user ownership discipline as the record store.
func ownedRecording(c *gin.Context, id string) (*storage.Recording, bool) {
	userID, _ := middleware.GetUserIDFromContext(c)
	rec, ok := storage.GetRecording(id)
	if !ok || userID == "" || rec.UserID != userID {
		utils.Error(c, http.StatusNotFound, "recording not found")
		return nil, false
	}
	return rec, true
}

// Upload handles audio file upload
func (h *RecordingHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("audio_file")
	if err != nil {
		// Try alternative field names
		if file, err = c.FormFile("audio"); err != nil {
			if file, err = c.FormFile("file"); err != nil {
				utils.Error(c, http.StatusBadRequest, "audio_file is required. Error: "+err.Error())
				return
			}
		}
	}

	// Validate file extension
	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowedExts := []string{".m4a", ".mp3", ".wav", ".aac", ".ogg", ".caf", ".aiff", ".aif", ".webm"}
	valid := false
	for _, allowed := range allowedExts {
		if ext == allowed {
			valid = true
			break
		}
	}
	if !valid {
		utils.Error(c, http.StatusBadRequest, "unsupported audio format. Supported: m4a, mp3, wav, aac, ogg, caf, aiff, webm")
		return
	}

	// Validate file size (max 25MB)
	if file.Size > 25*1024*1024 {
		utils.Error(c, http.StatusBadRequest, "file size exceeds 25MB limit")
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	recordingID, err := storage.SaveAudio(file, h.uploadDir, userID)
	if err != nil {
		log.Printf("Error saving audio: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to save audio file")
		return
	}

	log.Printf("Audio uploaded successfully: %s", recordingID)
	utils.Success(c, gin.H{
		"recording_id": recordingID,
		"status":       "uploaded",
	})
}

// Transcribe runs a recording through the capture state machine: the session
// guards against overlapping runs, the STT provider produces the transcript,
// and a successful transcript is handed straight to the intake pipeline.
func (h *RecordingHandler) Transcribe(c *gin.Context) {
	id := c.Param("recording_id")

	rec, ok := ownedRecording(c, id)
	if !ok {
		return
	}

	if rec.Status == "processed" && rec.Transcript != "" {
		h.respondTranscript(c, id, rec.Transcript, rec.Confidence)
		return
	}

	sess := h.sessions.Session(id)
	if err := sess.Start(true); err != nil {
		if errors.Is(err, model.ErrCaptureBusy) {
			utils.Error(c, http.StatusConflict, "recording is already being processed")
			return
		}
		utils.Error(c, http.StatusForbidden, err.Error())
		return
	}
	// The audio already exists on disk, so recording ends immediately and the
	// session moves on to transcription.
	if err := sess.Stop(); err != nil {
		utils.Error(c, http.StatusConflict, "recording is already being processed")
		return
	}
	storage.UpdateStatus(id, "processing")
	log.Printf("Processing recording: %s", id)

	provider, err := h.getSTTProvider()
	if err != nil {
		sess.Fail(err)
		utils.Error(c, http.StatusInternalServerError, "STT provider not available: "+err.Error())
		return
	}

	result, err := provider.Transcribe(rec.Path)
	if err != nil {
		sess.Fail(err)
		storage.UpdateStatus(id, "failed")
		storage.UpdateError(id, err.Error())
		log.Printf("STT error for recording %s (provider: %s): %v", id, provider.Name(), err)
		if errors.Is(err, model.ErrNoSpeech) {
			utils.Error(c, http.StatusBadRequest, "no speech detected in audio")
			return
		}
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := sess.Complete(result.Transcript); err != nil {
		storage.UpdateStatus(id, "failed")
		storage.UpdateError(id, err.Error())
		utils.Error(c, http.StatusBadRequest, "no speech detected in audio")
		return
	}
	storage.UpdateTranscript(id, result.Transcript, result.Confidence)
	storage.UpdateStatus(id, "processed")
	log.Printf("Recording processed successfully: %s (provider: %s, confidence: %.2f, length: %d)",
		id, provider.Name(), result.Confidence, len(result.Transcript))

	h.respondTranscript(c, id, result.Transcript, result.Confidence)
}

// respondTranscript runs the intake pipeline over the transcript and replies
// with both. Extraction failure is recoverable: the transcript is still
// returned and the form stays usable for manual entry.
func (h *RecordingHandler) respondTranscript(c *gin.Context, id, transcript string, confidence float64) {
	draft, err := h.pipeline.Extract(c.Request.Context(), transcript)
	if err != nil {
		log.Printf("Extraction failed for recording %s: %v", id, err)
	}
	storage.SaveDraft(id, draft)

	utils.Success(c, gin.H{
		"recording_id":     id,
		"status":           "processed",
		"transcript":       transcript,
		"confidence":       confidence,
		"draft":            draft,
		"extractionFailed": err != nil,
	})
}

// Get returns recording information
func (h *RecordingHandler) Get(c *gin.Context) {
	id := c.Param("recording_id")

	rec, ok := ownedRecording(c, id)
	if !ok {
		return
	}

	utils.Success(c, gin.H{
		"recording_id": rec.ID,
		"status":       rec.Status,
		"created_at":   rec.CreatedAt,
		"transcript":   rec.Transcript,
		"confidence":   rec.Confidence,
		"error":        rec.Error,
	})
}

// GetDraft returns the cached extraction draft for a recording
func (h *RecordingHandler) GetDraft(c *gin.Context) {
	id := c.Param("recording_id")

	if _, ok := ownedRecording(c, id); !ok {
		return
	}

	draft, ok := storage.GetDraft(id)
	if !ok {
		utils.Error(c, http.StatusNotFound, "no draft available. Please transcribe the recording first")
		return
	}

	utils.Success(c, gin.H{
		"recording_id": id,
		"draft":        draft,
	})
}

package storage

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Recording tracks an uploaded dictation through its capture lifecycle.
// UserID is the uploader; recordings are invisible to any other identity.
type Recording struct {
	ID         string
	UserID     string
	Path       string
	Status     string // uploaded, processing, processed, failed
	Size       int64  // file size in bytes
	CreatedAt  time.Time
	Transcript string
	Confidence float64
	Error      string
}

var (
	recordings = make(map[string]*Recording)
	mu         sync.Mutex
)

// SaveAudio saves an uploaded audio file under dir and returns the recording ID
func SaveAudio(file *multipart.FileHeader, dir, userID string) (string, error) {
	id := fmt.Sprintf("rec_%d", time.Now().UnixNano())
	dst := filepath.Join(dir, id+"_"+filepath.Base(file.Filename))

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	if err := saveMultipartFile(file, dst); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	var fileSize int64
	if fileInfo, err := os.Stat(dst); err == nil {
		fileSize = fileInfo.Size()
	}

	mu.Lock()
	recordings[id] = &Recording{
		ID:        id,
		UserID:    userID,
		Path:      dst,
		Status:    "uploaded",
		Size:      fileSize,
		CreatedAt: time.Now().UTC(),
	}
	mu.Unlock()

	return id, nil
}

// GetRecording retrieves a recording by ID
func GetRecording(id string) (*Recording, bool) {
	mu.Lock()
	defer mu.Unlock()
	rec, ok := recordings[id]
	if !ok {
		return nil, false
	}
	// Return a copy to avoid race conditions
	recCopy := *rec
	return &recCopy, true
}

// UpdateStatus updates the status of a recording
func UpdateStatus(id, status string) {
	mu.Lock()
	defer mu.Unlock()
	if rec, ok := recordings[id]; ok {
		rec.Status = status
	}
}

// UpdateTranscript updates transcript and confidence
func UpdateTranscript(id string, transcript string, confidence float64) {
	mu.Lock()
	defer mu.Unlock()
	if rec, ok := recordings[id]; ok {
		rec.Transcript = transcript
		rec.Confidence = confidence
	}
}

// UpdateError updates error message
func UpdateError(id string, errorMsg string) {
	mu.Lock()
	defer mu.Unlock()
	if rec, ok := recordings[id]; ok {
		rec.Error = errorMsg
	}
}

/* helper */
func saveMultipartFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.ReadFrom(src)
	return err
}

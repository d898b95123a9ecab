package storage

import (
	"sync"

	"mediscribe/internal/model"
)

var (
	drafts  = make(map[string]*model.ExtractionDraft)
	muDraft sync.Mutex
)

// SaveDraft caches the last extraction draft produced for a recording, so
// the form can re-fetch it until the user accepts or discards it.
func SaveDraft(recordingID string, draft *model.ExtractionDraft) {
	muDraft.Lock()
	defer muDraft.Unlock()
	drafts[recordingID] = draft
}

// GetDraft retrieves the cached extraction draft for a recording
func GetDraft(recordingID string) (*model.ExtractionDraft, bool) {
	muDraft.Lock()
	defer muDraft.Unlock()
	draft, ok := drafts[recordingID]
	if !ok {
		return nil, false
	}
	// Return a copy to avoid race conditions
	draftCopy := *draft
	return &draftCopy, true
}

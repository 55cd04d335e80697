package models

import "time"

// DiaryEntry mirrors the backend's diary entry resource.
type DiaryEntry struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	EntryDate time.Time `json:"entryDate"`
	HasImage  bool      `json:"hasImage"`
	ImageID   string    `json:"imageId,omitempty"`
}

// EntryImage is the binary payload of GET /api/entry-images/{id}.
type EntryImage struct {
	Data        []byte
	ContentType string
}

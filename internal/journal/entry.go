package journal

import "time"

// Entry is one journal record. Field names match the persisted JSON format.
type Entry struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Date      string `json:"date"`
	CreatedAt int64  `json:"createdAt"` // Unix milliseconds
}

func (e Entry) Created() time.Time { return time.UnixMilli(e.CreatedAt) }

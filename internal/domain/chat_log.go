package domain

import "time"

// ChatLog records one completed chat turn
type ChatLog struct {
	ID            string
	Messages      []ChatMessage
	Reply         string
	Diagnosis     *Diagnosis
	MatchedFAQIDs []string
	CreatedAt     time.Time
}

package domain

import "time"

// Message is an entry in the append-only message log. An empty ToUserID is a
// broadcast.
type Message struct {
	ID          ID        `json:"id"`
	FromAdminID ID        `json:"fromAdminId"`
	ToUserID    ID        `json:"toUserId,omitempty"`
	WorkID      ID        `json:"workId,omitempty"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
}

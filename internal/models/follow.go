package models

// LogTypeFollow is the logtype under which follow edges are stored in sh_logs.
const LogTypeFollow = "follow"

// UserFollow is the content of a follow log row: User follows IsFollowing.
// Field names are fixed by the sh_logs storage format.
type UserFollow struct {
	User        string `json:"user"`
	IsFollowing string `json:"is_following"`
}

// Log is a follow row of the append-only sh_logs table. Timestamp is epoch
// milliseconds to stay compatible with pre-existing log rows.
type Log struct {
	ID        string     `json:"id"`
	LogType   string     `json:"logtype"`
	Timestamp int64      `json:"timestamp"`
	Content   UserFollow `json:"content"`
}

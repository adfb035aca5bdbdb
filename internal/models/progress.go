package models

import "time"

// QuizProgress is the stored progress of one client in one quiz namespace
type QuizProgress struct {
	ClientID     string
	Namespace    string
	CorrectCount int
	WrongCount   int
	UsedIndices  string // JSON array
	UpdatedAt    time.Time
}

// IsExpired reports whether the row is older than ttl at now
func (p *QuizProgress) IsExpired(ttl time.Duration, now time.Time) bool {
	return now.Sub(p.UpdatedAt) > ttl
}

// DisplaySetting holds a client's question panel scale
type DisplaySetting struct {
	ClientID  string
	PageScale float64
	UpdatedAt time.Time
}

// IsExpired reports whether the setting is older than ttl at now
func (s *DisplaySetting) IsExpired(ttl time.Duration, now time.Time) bool {
	return now.Sub(s.UpdatedAt) > ttl
}

package models

import (
	"testing"
	"time"
)

func TestQuizProgressIsExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ttl := 7 * 24 * time.Hour

	tests := []struct {
		name      string
		updatedAt time.Time
		want      bool
	}{
		{
			name:      "written an hour ago",
			updatedAt: now.Add(-1 * time.Hour),
			want:      false,
		},
		{
			name:      "exactly at the ttl",
			updatedAt: now.Add(-ttl),
			want:      false,
		},
		{
			name:      "just past the ttl",
			updatedAt: now.Add(-ttl - time.Second),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress := QuizProgress{
				ClientID:  "client",
				Namespace: "word",
				UpdatedAt: tt.updatedAt,
			}
			if got := progress.IsExpired(ttl, now); got != tt.want {
				t.Errorf("QuizProgress.IsExpired() = %v, want %v", got, tt.want)
			}

			setting := DisplaySetting{ClientID: "client", PageScale: 1, UpdatedAt: tt.updatedAt}
			if got := setting.IsExpired(ttl, now); got != tt.want {
				t.Errorf("DisplaySetting.IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

package models

import (
	"testing"
	"time"
)

func TestMenuVisible(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name      string
		published bool
		deletedOn *time.Time
		expected  bool
	}{
		{
			name:      "published and not deleted is visible",
			published: true,
			deletedOn: nil,
			expected:  true,
		},
		{
			name:      "unpublished is hidden",
			published: false,
			deletedOn: nil,
			expected:  false,
		},
		{
			name:      "published but soft-deleted is hidden",
			published: true,
			deletedOn: &now,
			expected:  false,
		},
		{
			name:      "unpublished and soft-deleted is hidden",
			published: false,
			deletedOn: &now,
			expected:  false,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			m := Menu{IsPublished: tt.published, DeletedOn: tt.deletedOn}
			if got := m.Visible(); got != tt.expected {
				t.Errorf("Visible() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

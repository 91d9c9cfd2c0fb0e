package format

import "strings"

// Badge is a display level for a status or score.
type Badge string

const (
	BadgeSuccess   Badge = "success"
	BadgeInfo      Badge = "info"
	BadgeWarning   Badge = "warning"
	BadgeDanger    Badge = "danger"
	BadgeSecondary Badge = "secondary"
)

var statusBadges = map[string]Badge{
	"success":     BadgeSuccess,
	"completed":   BadgeSuccess,
	"published":   BadgeSuccess,
	"failed":      BadgeDanger,
	"error":       BadgeDanger,
	"pending":     BadgeWarning,
	"processing":  BadgeInfo,
	"draft":       BadgeSecondary,
	"unpublished": BadgeSecondary,
}

// StatusBadge maps a pipeline or article status to a badge.
func StatusBadge(status string) Badge {
	if b, ok := statusBadges[strings.ToLower(strings.TrimSpace(status))]; ok {
		return b
	}
	return BadgeSecondary
}

package orm

import (
	"time"

	"gorm.io/gorm"
)

// Briefing is one archived assistant turn: the user's query and the
// consolidated answer that was returned.
type Briefing struct {
	ID        uint   `gorm:"primaryKey"`
	RequestID string `gorm:"index"`
	Query     string
	Answer    string
	CreatedAt time.Time
}

// CreateBriefing archives a completed turn
func CreateBriefing(db *gorm.DB, b *Briefing) error {
	return db.Create(b).Error
}

// GetBriefing fetches an archived turn by ID
func GetBriefing(db *gorm.DB, id uint) (*Briefing, error) {
	var b Briefing
	if err := db.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// RecentBriefings lists the most recent archived turns, newest first
func RecentBriefings(db *gorm.DB, limit int) ([]Briefing, error) {
	var briefings []Briefing
	err := db.Order("created_at DESC").Limit(limit).Find(&briefings).Error
	return briefings, err
}

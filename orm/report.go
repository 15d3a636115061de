package orm

import (
	"time"

	"gorm.io/gorm"
)

// ReportFile records a report artifact written to disk
type ReportFile struct {
	ID        uint `gorm:"primaryKey"`
	Title     string
	Path      string `gorm:"index"`
	SizeBytes int64
	CreatedAt time.Time
}

// CreateReportFile records a written report
func CreateReportFile(db *gorm.DB, r *ReportFile) error {
	return db.Create(r).Error
}

// GetReportFileByPath fetches a report record by its file path
func GetReportFileByPath(db *gorm.DB, path string) (*ReportFile, error) {
	var r ReportFile
	if err := db.Where("path = ?", path).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportFileCRUD(t *testing.T) {
	db := SetupTestDB(t)

	r := &ReportFile{
		Title:     "Tech Sentiment Briefing",
		Path:      "/tmp/reports/tech_sentiment_briefing_20260826_093000.md",
		SizeBytes: 2048,
	}

	err := CreateReportFile(db, r)
	assert.NoError(t, err)
	assert.NotZero(t, r.ID)

	fetched, err := GetReportFileByPath(db, r.Path)
	assert.NoError(t, err)
	assert.Equal(t, "Tech Sentiment Briefing", fetched.Title)
	assert.Equal(t, int64(2048), fetched.SizeBytes)
}

func TestGetReportFileByPath_NotFound(t *testing.T) {
	db := SetupTestDB(t)

	_, err := GetReportFileByPath(db, "/tmp/reports/missing.md")
	assert.Error(t, err)
}

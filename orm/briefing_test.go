package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBriefingCRUD(t *testing.T) {
	db := SetupTestDB(t)

	b := &Briefing{
		RequestID: "req-briefing-crud",
		Query:     "latest semiconductor news",
		Answer:    "Three headlines, overall positive sentiment.",
	}

	err := CreateBriefing(db, b)
	assert.NoError(t, err)
	assert.NotZero(t, b.ID)

	fetched, err := GetBriefing(db, b.ID)
	assert.NoError(t, err)
	assert.Equal(t, "latest semiconductor news", fetched.Query)
	assert.Equal(t, "req-briefing-crud", fetched.RequestID)
	assert.False(t, fetched.CreatedAt.IsZero())
}

func TestRecentBriefings(t *testing.T) {
	db := SetupTestDB(t)

	for _, q := range []string{"ai chips", "energy markets", "shipping lanes"} {
		assert.NoError(t, CreateBriefing(db, &Briefing{RequestID: "req-recent", Query: q, Answer: "ok"}))
	}

	recent, err := RecentBriefings(db, 2)
	assert.NoError(t, err)
	assert.Len(t, recent, 2)
}

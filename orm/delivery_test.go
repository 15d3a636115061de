package orm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryCRUD(t *testing.T) {
	db := SetupTestDB(t)

	d := &Delivery{
		Recipient:  "editor@example.com",
		Subject:    "Morning briefing",
		MessageID:  "<123.editor@smtp.example.com>",
		ReportPath: "/tmp/reports/briefing.md",
		SentAt:     time.Now(),
	}

	assert.NoError(t, CreateDelivery(db, d))
	assert.NotZero(t, d.ID)

	deliveries, err := DeliveriesTo(db, "editor@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, deliveries)
	assert.Equal(t, "Morning briefing", deliveries[0].Subject)
}

func TestDeliveriesTo_FiltersByRecipient(t *testing.T) {
	db := SetupTestDB(t)

	assert.NoError(t, CreateDelivery(db, &Delivery{
		Recipient: "desk@example.com",
		Subject:   "Energy digest",
		MessageID: "<456.desk@smtp.example.com>",
		SentAt:    time.Now(),
	}))

	deliveries, err := DeliveriesTo(db, "nobody@example.com")
	assert.NoError(t, err)
	assert.Empty(t, deliveries)
}

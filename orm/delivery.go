package orm

import (
	"time"

	"gorm.io/gorm"
)

// Delivery records one successfully sent email
type Delivery struct {
	ID         uint `gorm:"primaryKey"`
	Recipient  string
	Subject    string
	MessageID  string
	ReportPath string // attached report file, if any
	SentAt     time.Time
}

// CreateDelivery records a sent email. Only successful sends are recorded.
func CreateDelivery(db *gorm.DB, d *Delivery) error {
	return db.Create(d).Error
}

// DeliveriesTo lists deliveries for a recipient, newest first
func DeliveriesTo(db *gorm.DB, recipient string) ([]Delivery, error) {
	var deliveries []Delivery
	err := db.Where("recipient = ?", recipient).Order("sent_at DESC").Find(&deliveries).Error
	return deliveries, err
}

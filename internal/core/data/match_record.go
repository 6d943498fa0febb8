package data

import (
	"time"

	"gorm.io/gorm"
)

// MatchRecord is the outcome of one finished match. Players are identified
// by IP address.
type MatchRecord struct {
	ID           uint64 `gorm:"primaryKey"`
	Player1Addr  string `gorm:"index; not null"`
	Player2Addr  string `gorm:"index; not null"`
	Rounds       int
	Player1Score int
	Player2Score int
	// Winner is 1 or 2.
	Winner int
	// Forfeit is set when the loser disconnected.
	Forfeit   bool
	StartedAt time.Time
	EndedAt   time.Time
}

// CreateMatchRecord persists the MatchRecord to the database.
func CreateMatchRecord(db *gorm.DB, record *MatchRecord) error {
	return db.Create(record).Error
}

// FindMatchRecords returns up to limit of the most recently finished matches,
// newest first.
func FindMatchRecords(db *gorm.DB, limit int) ([]MatchRecord, error) {
	var records []MatchRecord
	err := db.Order("ended_at desc").Order("id desc").Limit(limit).Find(&records).Error
	return records, err
}

// FindMatchRecordsByAddress returns every match played from the IP address
// addr, newest first.
func FindMatchRecordsByAddress(db *gorm.DB, addr string) ([]MatchRecord, error) {
	var records []MatchRecord
	err := db.Where("player1_addr = ? OR player2_addr = ?", addr, addr).
		Order("ended_at desc").Order("id desc").
		Find(&records).Error
	return records, err
}

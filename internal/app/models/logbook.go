package models

import "time"

// LogEntry is a student logbook entry from 'logbook_entries'
type LogEntry struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	Content   string    `json:"content" db:"content"`
	Date      time.Time `json:"date" db:"date"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

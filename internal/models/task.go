package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	StatusTodo  TaskStatus = "TODO"
	StatusDoing TaskStatus = "DOING"
	StatusDone  TaskStatus = "DONE"
)

// Valid reports whether s is one of the three known statuses. The API
// accepts any transition between valid statuses; there is no ordering.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

type Task struct {
	gorm.Model

	Title     string     `gorm:"not null"`
	Status    TaskStatus `gorm:"not null;default:TODO"`
	DueDate   time.Time  `gorm:"not null"`
	ProjectID uint       `gorm:"not null;index"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

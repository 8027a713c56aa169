package activity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"github.com/saulo-duarte/streaker/internal/streak"
)

// Activity is the stored shape of one user's day: three co-indexed arrays.
// Code outside this file works on streak.Item tuples through Items/SetItems,
// so the arrays only ever change in lock-step.
type Activity struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_activity_user_date" json:"userId"`
	Date        datatypes.Date `gorm:"not null;uniqueIndex:idx_activity_user_date" json:"date"`
	Description pq.StringArray `gorm:"type:text[];not null" json:"description"`
	Completed   pq.BoolArray   `gorm:"type:boolean[];not null" json:"completed"`
	Category    pq.StringArray `gorm:"type:text[];not null" json:"category"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// Day returns the activity date as midnight UTC.
func (a *Activity) Day() time.Time {
	t := time.Time(a.Date)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Items zips the stored arrays. Description is authoritative for the item
// count; short completed/category arrays are padded with false/"General".
func (a *Activity) Items() []streak.Item {
	items := make([]streak.Item, len(a.Description))
	for i, d := range a.Description {
		items[i] = streak.Item{Description: d, Category: streak.DefaultCategory}
		if i < len(a.Completed) {
			items[i].Completed = a.Completed[i]
		}
		if i < len(a.Category) && a.Category[i] != "" {
			items[i].Category = a.Category[i]
		}
	}
	return items
}

// SetItems replaces all three arrays from items.
func (a *Activity) SetItems(items []streak.Item) {
	a.Description = make(pq.StringArray, len(items))
	a.Completed = make(pq.BoolArray, len(items))
	a.Category = make(pq.StringArray, len(items))
	for i, it := range items {
		a.Description[i] = it.Description
		a.Completed[i] = it.Completed
		a.Category[i] = it.Category
	}
}

func (a *Activity) Record() streak.Record {
	return streak.Record{Date: a.Day(), Items: a.Items()}
}

func Records(activities []Activity) []streak.Record {
	records := make([]streak.Record, len(activities))
	for i := range activities {
		records[i] = activities[i].Record()
	}
	return records
}

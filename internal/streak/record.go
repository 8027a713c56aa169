// Package streak derives streak and per-category statistics from a user's
// activity history. Everything here is pure: callers load the records and
// persist whatever they want to cache.
package streak

import "time"

// DefaultCategory is assigned to items whose category was never recorded.
const DefaultCategory = "General"

// KnownCategories are always present in category stats, even at zero.
var KnownCategories = []string{
	"General",
	"Exercise",
	"Learning",
	"Work",
	"Health",
	"Creative",
	"Social",
	"Personal",
}

// Item is one logged, independently completable entry within a day.
type Item struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Category    string `json:"category"`
}

// Record is a user's activity for one UTC calendar day.
type Record struct {
	Date  time.Time
	Items []Item
}

// HasCompleted reports whether at least one item of the day is completed.
func (r Record) HasCompleted() bool {
	for _, it := range r.Items {
		if it.Completed {
			return true
		}
	}
	return false
}

// HasCompletedIn reports whether a completed item of the given category exists.
func (r Record) HasCompletedIn(category string) bool {
	for _, it := range r.Items {
		if it.Completed && categoryOf(it) == category {
			return true
		}
	}
	return false
}

func categoryOf(it Item) string {
	if it.Category == "" {
		return DefaultCategory
	}
	return it.Category
}

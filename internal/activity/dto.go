package activity

import util "github.com/saulo-duarte/streaker/internal/utils"

type CreateActivityDTO struct {
	Date        util.Date `json:"date"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
}

type EditItemDTO struct {
	Description string  `json:"description"`
	Category    *string `json:"category"`
}

type PageResponse struct {
	Activities      []Activity `json:"activities"`
	TotalActivities int64      `json:"totalActivities"`
	TotalPages      int        `json:"totalPages"`
	CurrentPage     int        `json:"currentPage"`
}

type StreakResponse struct {
	Streak int `json:"streak"`
}

// DeleteItemResponse carries the remaining record; Activity is nil when the
// deleted item was the last of its day.
type DeleteItemResponse struct {
	Activity      *Activity `json:"activity"`
	RecordDeleted bool      `json:"recordDeleted"`
}

package http

import "time"

// projectForm is shared by create and full-update. Dates arrive as strings
// from HTML date inputs ("2006-01-02") or as RFC 3339 from API clients.
type projectForm struct {
	Name          string  `form:"name" json:"name" binding:"required"`
	Description   string  `form:"description" json:"description"`
	Price         float64 `form:"price" json:"price"`
	ProgressNotes string  `form:"progress_notes" json:"progress_notes"`
	StartDate     string  `form:"start_date" json:"start_date"`
	EndDate       string  `form:"end_date" json:"end_date"`
}

type addMemberReq struct {
	UserID string `form:"user_id" json:"user_id" binding:"required"`
}

type progressReq struct {
	ProgressNotes string `form:"progress_notes" json:"progress_notes"`
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, errInvalidDate
}

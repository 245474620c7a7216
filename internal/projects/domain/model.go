package domain

import "time"

// Project is a tracked project document. ManagerID is set once at creation
// and never reassigned; MemberIDs never contains the manager or duplicates.
type Project struct {
	ID            string     `bson:"_id,omitempty" json:"id"`
	Name          string     `bson:"name" json:"name"`
	Description   string     `bson:"description" json:"description"`
	Price         float64    `bson:"price" json:"price"`
	ProgressNotes string     `bson:"progress_notes" json:"progress_notes"`
	StartDate     *time.Time `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate       *time.Time `bson:"end_date,omitempty" json:"end_date,omitempty"`
	Archived      bool       `bson:"archived" json:"archived"`
	ManagerID     string     `bson:"manager_id" json:"manager_id"`
	MemberIDs     []string   `bson:"member_ids" json:"member_ids"`
	CreatedAt     time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `bson:"updated_at" json:"updated_at"`
}

// ProjectUpdate is the explicit field whitelist for a full manager edit.
// Anything else on the document (manager, members, archived flag) is only
// reachable through its dedicated operation.
type ProjectUpdate struct {
	Name          string
	Description   string
	Price         float64
	ProgressNotes string
	StartDate     *time.Time
	EndDate       *time.Time
}

package domain

import (
	"encoding/json"
	"time"
)

// Category enumerates the kinds of civic problems members can report.
type Category string

const (
	CategoryGarbage              Category = "Garbage"
	CategoryIllegalConstruction  Category = "Illegal Construction"
	CategoryBrokenPublicProperty Category = "Broken Public Property"
	CategoryRoadDamage           Category = "Road Damage"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryGarbage,
	CategoryIllegalConstruction,
	CategoryBrokenPublicProperty,
	CategoryRoadDamage,
}

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Status enumerates the lifecycle states of an issue.
type Status string

const (
	StatusOngoing Status = "ongoing"
	StatusEnded   Status = "ended"
)

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	return s == StatusOngoing || s == StatusEnded
}

// Issue represents a reported civic problem with a suggested funding amount.
// OwnerEmail is the sole ownership key and never changes after creation.
type Issue struct {
	ID              string    `json:"_id"`
	Title           string    `json:"title"`
	Category        Category  `json:"category"`
	Location        string    `json:"location"`
	Description     string    `json:"description"`
	Image           string    `json:"image,omitempty"`
	SuggestedAmount Amount    `json:"amount"`
	Status          Status    `json:"status"`
	OwnerEmail      string    `json:"email"`
	CreatedAt       time.Time `json:"createdAt"`
}

// UnmarshalJSON accepts records keyed by either "_id" or the legacy "id"
// field, whichever the upstream store happens to emit.
func (i *Issue) UnmarshalJSON(data []byte) error {
	type alias Issue
	aux := struct {
		*alias
		LegacyID string `json:"id"`
	}{alias: (*alias)(i)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if i.ID == "" {
		i.ID = aux.LegacyID
	}
	return nil
}

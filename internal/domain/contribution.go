package domain

import (
	"encoding/json"
	"time"
)

// Contribution is an append-only pledge of funds toward a specific issue.
// IssueTitle is a display-time snapshot taken when the pledge was made; it
// stays valid even when the referenced issue is later edited or deleted, and
// a dangling IssueID is tolerated everywhere.
type Contribution struct {
	ID             string    `json:"_id"`
	IssueID        string    `json:"issueId"`
	IssueTitle     string    `json:"issueTitle"`
	Amount         Amount    `json:"amount"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	AdditionalInfo string    `json:"additionalInfo,omitempty"`
	Avatar         string    `json:"avatar,omitempty"`
	CreatedAt      time.Time `json:"date"`
}

// UnmarshalJSON accepts records keyed by either "_id" or the legacy "id" field.
func (c *Contribution) UnmarshalJSON(data []byte) error {
	type alias Contribution
	aux := struct {
		*alias
		LegacyID string `json:"id"`
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = aux.LegacyID
	}
	return nil
}

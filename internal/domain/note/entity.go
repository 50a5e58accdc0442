package note

import "time"

type Visibility string

const (
	VisibilityPersonal Visibility = "personal"
	VisibilityTeam     Visibility = "team"
)

func (v Visibility) IsValid() bool {
	return v == VisibilityPersonal || v == VisibilityTeam
}

type Note struct {
	ID         string
	OwnerID    string
	TeamID     *string
	Title      string
	Body       string
	Visibility Visibility
	Pinned     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

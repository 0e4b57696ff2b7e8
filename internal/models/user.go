package models

// Identity is the authenticated user snapshot supplied by the identity
// provider. It is never persisted on its own; the stores embed copies of it.
type Identity struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// UserSnapshot is the public slice of an identity embedded in a chat thread,
// always describing the other participant from the owner's perspective.
type UserSnapshot struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// DriverSnapshot is the creator's public profile frozen into a ride at
// creation time. It is not live-linked to the identity provider.
type DriverSnapshot struct {
	ID         string  `json:"id" validate:"required"`
	Name       string  `json:"name"`
	Avatar     string  `json:"avatar"`
	Rating     float64 `json:"rating"`
	TotalRides int     `json:"total_rides"`
}

func (i Identity) Snapshot() UserSnapshot {
	return UserSnapshot{ID: i.ID, Name: i.Name, Avatar: i.Avatar}
}

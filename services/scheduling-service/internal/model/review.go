package model

import "time"

// Review is client feedback about a provider. It starts unapproved and
// becomes publicly listed only once the provider approves it.
type Review struct {
	ID          string
	ProviderID  string
	RequesterID string
	Rating      int
	Title       string
	Comment     string
	IsApproved  bool
	IsVisible   bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Package models defines the data exchanged between the launcher host and its clients.
package models

// AppList is the listApplications response body.
// Apps keeps App Directory order; names are unique within one listing.
type AppList struct {
	Apps []string `json:"apps"`
}

package model

import "time"

// User represents a local user resolved from an external identity provider.
// ExternalID is the provider's stable identifier and never changes once stored.
type User struct {
	ID          int64     `bson:"_id"          json:"id"`
	ExternalID  string    `bson:"external_id"  json:"externalId"`
	DisplayName string    `bson:"display_name" json:"displayName"`
	Email       string    `bson:"email"        json:"email"`
	CreatedAt   time.Time `bson:"created_at"   json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at"   json:"updatedAt"`
}

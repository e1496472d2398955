package models

// APIKey is a partner credential. Keys are validated against this table on
// every external-API request and can be revoked without a deploy.
type APIKey struct {
	BaseModel
	Key     string `gorm:"uniqueIndex" json:"-"`
	Label   string `json:"label"`
	Revoked bool   `json:"revoked"`
}

package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SiteKind string

const (
	SiteKindStorefront SiteKind = "storefront"
	SiteKindLanding    SiteKind = "landing"
	SiteKindClone      SiteKind = "clone"
)

// Site is a stored, fully rendered document. Saves replace the whole record;
// concurrent writers resolve as last write wins.
type Site struct {
	ID            string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID        string         `gorm:"type:varchar(128);index" json:"userId,omitempty"`
	Kind          SiteKind       `gorm:"type:varchar(20);not null;index" json:"kind"`
	Title         string         `gorm:"type:varchar(200)" json:"title"`
	HTML          string         `gorm:"type:text;not null" json:"html"`
	URL           string         `gorm:"type:text" json:"url,omitempty"`          // source of cloned sites
	Published     bool           `gorm:"default:false;index" json:"published"`
	PublishedAt   *time.Time     `json:"publishedAt,omitempty"`
	PublishedURL  string         `gorm:"type:text" json:"publishedUrl,omitempty"` // static mirror, when configured
	StoreConfig   datatypes.JSON `json:"storeConfig,omitempty"`
	StoreProducts datatypes.JSON `json:"storeProducts,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Site) TableName() string {
	return "sites"
}

// SiteSummary is the list view of a Site without the document body.
type SiteSummary struct {
	ID           string     `json:"id"`
	Kind         SiteKind   `json:"kind"`
	Title        string     `json:"title"`
	URL          string     `json:"url,omitempty"`
	Published    bool       `json:"published"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
	PublishedURL string     `json:"publishedUrl,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Summary drops the document body and store data.
func (s *Site) Summary() SiteSummary {
	return SiteSummary{
		ID:           s.ID,
		Kind:         s.Kind,
		Title:        s.Title,
		URL:          s.URL,
		Published:    s.Published,
		PublishedAt:  s.PublishedAt,
		PublishedURL: s.PublishedURL,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

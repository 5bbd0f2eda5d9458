package repository

import (
	"time"

	"github.com/ikkim/landing-studio/internal/app/model"
	"github.com/ikkim/landing-studio/pkg/logger"
	"gorm.io/gorm"
)

// SiteRepository is the persistence facade for generated documents.
type SiteRepository interface {
	Create(site *model.Site) error
	FindByID(id string) (*model.Site, error)
	FindByUser(userID string) ([]model.Site, error)
	Save(site *model.Site) error
	SetPublished(id string, published bool, at *time.Time, publishedURL string) error
	Delete(id string) error
	Exists(id string) (bool, error)
}

type siteRepository struct {
	db *gorm.DB
}

func NewSiteRepository(db *gorm.DB) SiteRepository {
	return &siteRepository{db: db}
}

func (r *siteRepository) Create(site *model.Site) error {
	logger.Debug("Creating site in database", map[string]interface{}{
		"site_id": site.ID,
		"kind":    site.Kind,
		"user_id": site.UserID,
		"bytes":   len(site.HTML),
	})

	if err := r.db.Create(site).Error; err != nil {
		logger.Error("Failed to create site in database", err, map[string]interface{}{
			"site_id": site.ID,
			"kind":    site.Kind,
		})
		return err
	}
	return nil
}

func (r *siteRepository) FindByID(id string) (*model.Site, error) {
	var site model.Site
	if err := r.db.First(&site, "id = ?", id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find site", err, map[string]interface{}{
				"site_id": id,
			})
		}
		return nil, err
	}
	return &site, nil
}

func (r *siteRepository) FindByUser(userID string) ([]model.Site, error) {
	var sites []model.Site
	err := r.db.
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&sites).Error
	if err != nil {
		logger.Error("Failed to list sites", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return sites, nil
}

// Save writes every column of site. Concurrent saves of the same id resolve
// as last write wins.
func (r *siteRepository) Save(site *model.Site) error {
	if err := r.db.Save(site).Error; err != nil {
		logger.Error("Failed to save site", err, map[string]interface{}{
			"site_id": site.ID,
		})
		return err
	}

	logger.Debug("Site saved", map[string]interface{}{
		"site_id": site.ID,
		"bytes":   len(site.HTML),
	})
	return nil
}

func (r *siteRepository) SetPublished(id string, published bool, at *time.Time, publishedURL string) error {
	result := r.db.Model(&model.Site{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"published":     published,
			"published_at":  at,
			"published_url": publishedURL,
		})
	if result.Error != nil {
		logger.Error("Failed to update publish state", result.Error, map[string]interface{}{
			"site_id":   id,
			"published": published,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *siteRepository) Delete(id string) error {
	result := r.db.Delete(&model.Site{}, "id = ?", id)
	if result.Error != nil {
		logger.Error("Failed to delete site", result.Error, map[string]interface{}{
			"site_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *siteRepository) Exists(id string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Site{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

package services

import (
	"errors"
	"strings"

	"github.com/fez-github/Doom-Mod-Records/internal/models"

	"gorm.io/gorm"
)

// ImportModDTO carries one search-result object from the archive API.
type ImportModDTO struct {
	FileID      int64
	Title       string
	URL         string
	Description string
	Date        string
	Author      string
	Dir         string
	Rating      float64
	Votes       int
	UserID      *uint  // importing user, for the audit trail
	IPAddress   string // For Audit Log
}

type CatalogService struct {
	db           *gorm.DB
	auditService *AuditService
}

func NewCatalogService(db *gorm.DB, auditService *AuditService) *CatalogService {
	return &CatalogService{
		db:           db,
		auditService: auditService,
	}
}

// CategoryFromDir derives the catalog category from the archive's
// directory field: everything before the first path separator, or the
// whole field when there is none.
func CategoryFromDir(dir string) string {
	category, _, _ := strings.Cut(dir, "/")
	return category
}

// Import creates a Mod from an archive search result. A second import of
// the same archive file id fails with AlreadyImportedError carrying the
// existing row's id, leaving no partial row behind.
func (s *CatalogService) Import(dto ImportModDTO) (*models.Mod, error) {
	newMod := models.Mod{
		FileID:       dto.FileID,
		Title:        dto.Title,
		URL:          dto.URL,
		Description:  dto.Description,
		DateUploaded: dto.Date,
		Author:       dto.Author,
		Category:     CategoryFromDir(dto.Dir),
		Rating:       dto.Rating,
		RatingCount:  dto.Votes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Mod
		err := tx.Where("file_id = ?", dto.FileID).First(&existing).Error
		if err == nil {
			return &AlreadyImportedError{ModID: existing.ID}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&newMod).Error
	})
	if err != nil {
		return nil, err
	}

	s.auditService.LogAction(dto.UserID, "IMPORT_MOD", newMod.Title, map[string]interface{}{
		"file_id": dto.FileID,
	}, dto.IPAddress)

	return &newMod, nil
}

// Delete removes a mod and every record that tracks it, in one
// transaction. Any authenticated user may delete a mod; the catalog is
// communal and mods carry no owner.
func (s *CatalogService) Delete(modID uint, userID *uint, ip string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("mod_id = ?", modID).Delete(&models.Record{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Mod{}, modID).Error
	})
	if err != nil {
		return err
	}

	s.auditService.LogAction(userID, "DELETE_MOD", "", map[string]interface{}{
		"mod_id": modID,
	}, ip)

	return nil
}

// List returns every mod, title ascending, case-insensitive.
func (s *CatalogService) List() ([]models.Mod, error) {
	var mods []models.Mod
	if err := s.db.Order("LOWER(title) asc").Find(&mods).Error; err != nil {
		return nil, err
	}
	return mods, nil
}

func (s *CatalogService) Get(modID uint) (*models.Mod, error) {
	var mod models.Mod
	err := s.db.First(&mod, modID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &mod, nil
}

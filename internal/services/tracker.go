package services

import (
	"errors"

	"github.com/fez-github/Doom-Mod-Records/internal/models"

	"gorm.io/gorm"
)

// RecordEditDTO carries the user-editable fields of a record. All four
// are overwritten together.
type RecordEditDTO struct {
	UserNotes  string
	UserReview string
	NowPlaying bool
	PlayStatus string
}

type TrackerService struct {
	db           *gorm.DB
	auditService *AuditService
}

func NewTrackerService(db *gorm.DB, auditService *AuditService) *TrackerService {
	return &TrackerService{
		db:           db,
		auditService: auditService,
	}
}

// Attach creates the (user, mod) tracking record. A duplicate pair fails
// with AlreadyTrackedError carrying the existing record's id; the
// transaction rolls back leaving a single row.
func (s *TrackerService) Attach(userID, modID uint, ip string) (*models.Record, error) {
	record := models.Record{
		UserID:     userID,
		ModID:      modID,
		PlayStatus: models.StatusUnplayed,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Record
		err := tx.Where("user_id = ? AND mod_id = ?", userID, modID).First(&existing).Error
		if err == nil {
			return &AlreadyTrackedError{RecordID: existing.ID}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		var mod models.Mod
		if err := tx.First(&mod, modID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}

	s.auditService.LogAction(&userID, "ADD_RECORD", "", map[string]interface{}{
		"mod_id":    modID,
		"record_id": record.ID,
	}, ip)

	return &record, nil
}

// Update overwrites the record's notes, review, now-playing flag and
// play status in one write. Only the owning user may edit.
func (s *TrackerService) Update(recordID, userID uint, dto RecordEditDTO) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var record models.Record
		err := tx.First(&record, recordID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if record.UserID != userID {
			return ErrUnauthorized
		}

		return tx.Model(&record).Updates(map[string]interface{}{
			"user_notes":  dto.UserNotes,
			"user_review": dto.UserReview,
			"now_playing": dto.NowPlaying,
			"play_status": dto.PlayStatus,
		}).Error
	})
}

// Delete removes a record and returns the id of the mod it pointed to,
// so callers can redirect back to the mod's page. Only the owning user
// may delete.
func (s *TrackerService) Delete(recordID, userID uint, ip string) (uint, error) {
	var modID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var record models.Record
		err := tx.First(&record, recordID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if record.UserID != userID {
			return ErrUnauthorized
		}
		modID = record.ModID
		return tx.Delete(&models.Record{}, recordID).Error
	})
	if err != nil {
		return 0, err
	}

	s.auditService.LogAction(&userID, "DELETE_RECORD", "", map[string]interface{}{
		"record_id": recordID,
		"mod_id":    modID,
	}, ip)

	return modID, nil
}

func (s *TrackerService) Get(recordID uint) (*models.Record, error) {
	var record models.Record
	err := s.db.Preload("User").Preload("Mod").First(&record, recordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListForMod returns the records tracking one mod, with owners loaded.
func (s *TrackerService) ListForMod(modID uint) ([]models.Record, error) {
	var records []models.Record
	err := s.db.Preload("User").Where("mod_id = ?", modID).Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListWithUsers returns every record plus the distinct users owning at
// least one record. Users with zero records never appear.
func (s *TrackerService) ListWithUsers() ([]models.Record, []models.User, error) {
	var records []models.Record
	if err := s.db.Preload("User").Preload("Mod").Find(&records).Error; err != nil {
		return nil, nil, err
	}

	var users []models.User
	err := s.db.
		Joins("JOIN records ON records.user_id = users.id").
		Distinct("users.*").
		Order("users.username asc").
		Find(&users).Error
	if err != nil {
		return nil, nil, err
	}

	return records, users, nil
}

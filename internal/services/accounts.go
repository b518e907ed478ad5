package services

import (
	"errors"
	"time"

	"github.com/fez-github/Doom-Mod-Records/internal/models"
	"github.com/fez-github/Doom-Mod-Records/pkg/utils"

	"gorm.io/gorm"
)

type SignupDTO struct {
	Username  string
	Email     string
	Password  string
	ImageURL  string
	IPAddress string // For Audit Log
}

type AccountService struct {
	db           *gorm.DB
	auditService *AuditService
}

func NewAccountService(db *gorm.DB, auditService *AuditService) *AccountService {
	return &AccountService{
		db:           db,
		auditService: auditService,
	}
}

// Register creates a user with a bcrypt password hash and a fresh
// remember token. A taken username fails with ErrUsernameTaken and
// leaves no row behind.
func (s *AccountService) Register(dto SignupDTO) (*models.User, error) {
	hash, err := utils.HashPassword(dto.Password)
	if err != nil {
		return nil, err
	}

	imageURL := dto.ImageURL
	if imageURL == "" {
		imageURL = models.DefaultImageURL
	}

	newUser := models.User{
		Username:      dto.Username,
		Email:         dto.Email,
		PasswordHash:  hash,
		ImageURL:      imageURL,
		RememberToken: utils.GenerateRememberToken(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("username = ?", dto.Username).First(&existing).Error
		if err == nil {
			return ErrUsernameTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&newUser).Error
	})
	if err != nil {
		return nil, err
	}

	s.auditService.LogAction(&newUser.ID, "REGISTER", newUser.Username, nil, dto.IPAddress)

	return &newUser, nil
}

// Authenticate verifies a username/password pair. Wrong username and
// wrong password are indistinguishable to the caller.
func (s *AccountService) Authenticate(username, password string) (*models.User, bool) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, false
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, false
	}
	return &user, true
}

// RotateRememberToken issues a fresh token, invalidating any cookie
// holding the old one. Called on login and logout.
func (s *AccountService) RotateRememberToken(userID uint) (string, error) {
	token := utils.GenerateRememberToken()
	err := s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("remember_token", token).Error
	if err != nil {
		return "", err
	}
	return token, nil
}

// FindByRememberToken resolves the remember-me cookie back to a user.
func (s *AccountService) FindByRememberToken(token string) (*models.User, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	var user models.User
	err := s.db.Where("remember_token = ?", token).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AccountService) Get(userID uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns every user, username ascending.
func (s *AccountService) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("username asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateProfile changes a user's email and avatar. Only the profile
// owner may edit; anyone else fails with ErrUnauthorized.
func (s *AccountService) UpdateProfile(targetID, callerID uint, email, imageURL string) error {
	if targetID != callerID {
		return ErrUnauthorized
	}
	if imageURL == "" {
		imageURL = models.DefaultImageURL
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.First(&user, targetID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return tx.Model(&user).Updates(map[string]interface{}{
			"email":     email,
			"image_url": imageURL,
		}).Error
	})
	if err != nil {
		return err
	}

	s.auditService.LogAction(&callerID, "EDIT_USER", "", nil, "")

	return nil
}

// AddComment stores a profile comment with a server-side UTC timestamp.
func (s *AccountService) AddComment(authorID, targetUserID uint, text string) (*models.Comment, error) {
	comment := models.Comment{
		UserID:       authorID,
		TargetUserID: targetUserID,
		Text:         text,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("User").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// CommentsForUser returns the comments left on one user's profile,
// oldest first, with authors loaded.
func (s *AccountService) CommentsForUser(targetUserID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Preload("User").
		Where("target_user_id = ?", targetUserID).
		Order("created_at asc").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

package services

import (
	"errors"

	"kbox/internal/database"
	"kbox/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials 用户名或密码错误
var ErrInvalidCredentials = errors.New("用户名或密码错误")

// AdminUserService 平台管理员
type AdminUserService struct {
	db *gorm.DB
}

func NewAdminUserService() *AdminUserService {
	return &AdminUserService{db: database.GetDB()}
}

// GetByID 根据ID获取管理员
func (s *AdminUserService) GetByID(id uint) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := s.db.First(&admin, id).Error
	return &admin, err
}

// GetByUsername 根据用户名获取管理员
func (s *AdminUserService) GetByUsername(username string) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := s.db.Where("username = ?", username).First(&admin).Error
	return &admin, err
}

// Authenticate 校验登录凭证
func (s *AdminUserService) Authenticate(username, password string) (*models.AdminUser, error) {
	admin, err := s.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return admin, nil
}

// IsActive 检查管理员状态
func (s *AdminUserService) IsActive(admin *models.AdminUser) bool {
	return admin.Status == models.AdminStatusActive
}

// Create 创建管理员
func (s *AdminUserService) Create(username, password string) (*models.AdminUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &models.AdminUser{
		Username:     username,
		PasswordHash: string(hash),
		Status:       models.AdminStatusActive,
	}
	err = s.db.Create(admin).Error
	return admin, err
}

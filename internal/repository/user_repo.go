package repository

import (
	"context"
	"strings"
	"time"

	"kayexpress/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID                    int64      `gorm:"column:id;primaryKey"`
	Email                 string     `gorm:"column:email"`
	Phone                 string     `gorm:"column:phone"`
	PasswordHash          string     `gorm:"column:password_hash"`
	Role                  string     `gorm:"column:role"`
	FullName              string     `gorm:"column:full_name"`
	Region                string     `gorm:"column:region"`
	DateOfBirth           *time.Time `gorm:"column:date_of_birth"`
	IDType                *string    `gorm:"column:id_type"`
	IDNumber              *string    `gorm:"column:id_number"`
	EmergencyContactName  *string    `gorm:"column:emergency_contact_name"`
	EmergencyContactPhone *string    `gorm:"column:emergency_contact_phone"`
	IsActive              bool       `gorm:"column:is_active"`
	CreatedAt             time.Time  `gorm:"column:created_at"`
	UpdatedAt             time.Time  `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	var idType, idNumber, ecName, ecPhone string
	if m.IDType != nil {
		idType = *m.IDType
	}
	if m.IDNumber != nil {
		idNumber = *m.IDNumber
	}
	if m.EmergencyContactName != nil {
		ecName = *m.EmergencyContactName
	}
	if m.EmergencyContactPhone != nil {
		ecPhone = *m.EmergencyContactPhone
	}

	return &domain.User{
		ID:                    m.ID,
		Email:                 m.Email,
		Phone:                 m.Phone,
		PasswordHash:          m.PasswordHash,
		Role:                  domain.UserRole(m.Role),
		FullName:              m.FullName,
		Region:                m.Region,
		DateOfBirth:           m.DateOfBirth,
		IDType:                idType,
		IDNumber:              idNumber,
		EmergencyContactName:  ecName,
		EmergencyContactPhone: ecPhone,
		IsActive:              m.IsActive,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	email := strings.TrimSpace(strings.ToLower(u.Email))

	var idType, idNumber, ecName, ecPhone *string
	if u.IDType != "" {
		v := u.IDType
		idType = &v
	}
	if u.IDNumber != "" {
		v := u.IDNumber
		idNumber = &v
	}
	if u.EmergencyContactName != "" {
		v := u.EmergencyContactName
		ecName = &v
	}
	if u.EmergencyContactPhone != "" {
		v := u.EmergencyContactPhone
		ecPhone = &v
	}

	return userModel{
		ID:                    u.ID,
		Email:                 email,
		Phone:                 u.Phone,
		PasswordHash:          u.PasswordHash,
		Role:                  string(u.Role),
		FullName:              u.FullName,
		Region:                u.Region,
		DateOfBirth:           u.DateOfBirth,
		IDType:                idType,
		IDNumber:              idNumber,
		EmergencyContactName:  ecName,
		EmergencyContactPhone: ecPhone,
		IsActive:              u.IsActive,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).Where("phone = ?", strings.TrimSpace(phone)).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

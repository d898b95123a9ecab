package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"mediscribe/internal/model"
)

// NewMySQLStore creates a MySQL-backed store. This backend uses gorm and
// auto-migrates the schema; the model structs carry the column definitions.
func NewMySQLStore(dsn string) (*Store, error) {
	conn, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql connection: %w", err)
	}

	if err := conn.AutoMigrate(&model.User{}, &model.Patient{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Store{
		Patients: &gormPatientRepository{db: conn},
		Users:    &gormUserRepository{db: conn},
	}, nil
}

type gormPatientRepository struct {
	db *gorm.DB
}

func (r *gormPatientRepository) Create(ctx context.Context, p *model.Patient) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create patient record: %w", err)
	}
	return nil
}

func (r *gormPatientRepository) Update(ctx context.Context, p *model.Patient) error {
	// Select("*") so zeroed fields (e.g. cleared free text) are written too.
	res := r.db.WithContext(ctx).Model(&model.Patient{}).
		Where("id = ? AND user_id = ?", p.ID, p.UserID).
		Select("*").Omit("id", "user_id", "created_at").Updates(p)
	if res.Error != nil {
		return fmt.Errorf("failed to update patient record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormPatientRepository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Patient{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete patient record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormPatientRepository) GetByID(ctx context.Context, userID, id string) (*model.Patient, error) {
	var p model.Patient
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient record: %w", err)
	}
	return &p, nil
}

func (r *gormPatientRepository) ListByUser(ctx context.Context, userID string) ([]model.Patient, error) {
	records := make([]model.Patient, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query patient records: %w", err)
	}
	return records, nil
}

type gormUserRepository struct {
	db *gorm.DB
}

func (r *gormUserRepository) Create(ctx context.Context, u *model.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *gormUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (r *gormUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

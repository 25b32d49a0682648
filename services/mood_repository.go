package services

import (
	"context"
	"errors"
	"time"

	"github.com/chatchethu/mental-health-tracker/models"

	"gorm.io/gorm"
)

// MoodRepository 心情记录存储契约。聚合引擎只读不写；
// 同一用户的并发读写可能竞争（聚合期间新建的记录可能被包含也可能不被包含），
// 这是可接受的最终一致行为，不加锁
type MoodRepository interface {
	Insert(ctx context.Context, record *models.MoodRecord) error
	Save(ctx context.Context, record *models.MoodRecord) error
	FindByUser(ctx context.Context, userID string, limit int) ([]models.MoodRecord, error)
	FindByID(ctx context.Context, id string) (*models.MoodRecord, error)
	Delete(ctx context.Context, id string) error
	FindByUserSince(ctx context.Context, userID string, since time.Time, ascending bool) ([]models.MoodRecord, error)
	FindByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.MoodRecord, error)
}

// GormMoodRepository MoodRepository 的 MySQL 实现
type GormMoodRepository struct {
	db *gorm.DB
}

func NewGormMoodRepository(db *gorm.DB) *GormMoodRepository {
	return &GormMoodRepository{db: db}
}

func (r *GormMoodRepository) Insert(ctx context.Context, record *models.MoodRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *GormMoodRepository) Save(ctx context.Context, record *models.MoodRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// FindByUser 按记录时间倒序返回用户的心情记录，limit为0时不限制条数
func (r *GormMoodRepository) FindByUser(ctx context.Context, userID string, limit int) ([]models.MoodRecord, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []models.MoodRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *GormMoodRepository) FindByID(ctx context.Context, id string) (*models.MoodRecord, error) {
	var record models.MoodRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMoodNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *GormMoodRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Delete(&models.MoodRecord{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrMoodNotFound
	}
	return nil
}

func (r *GormMoodRepository) FindByUserSince(ctx context.Context, userID string, since time.Time, ascending bool) ([]models.MoodRecord, error) {
	order := "timestamp desc"
	if ascending {
		order = "timestamp asc"
	}

	var records []models.MoodRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND timestamp >= ?", userID, since).
		Order(order).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *GormMoodRepository) FindByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.MoodRecord, error) {
	var records []models.MoodRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND timestamp BETWEEN ? AND ?", userID, start, end).
		Order("timestamp desc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

package store

import (
	"context"
	"errors"

	"shorturl-api/internal/model"

	"gorm.io/gorm"
)

// GormStore 基于 gorm 的 Store 实现，生产环境用 MySQL，测试用 SQLite
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建 Store 实例
// 要求 db 以 TranslateError 模式打开，否则无法识别唯一键冲突
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Insert(ctx context.Context, m *model.ShortURL) error {
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (s *GormStore) Get(ctx context.Context, id string) (*model.ShortURL, error) {
	var m model.ShortURL
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) List(ctx context.Context, offset, limit int) ([]model.ShortURL, error) {
	records := make([]model.ShortURL, 0, limit)
	if err := s.db.WithContext(ctx).Offset(offset).Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *GormStore) Update(ctx context.Context, m *model.ShortURL) error {
	// 用 map 显式列出可变字段，否则 visitors 归零会被 gorm 当成零值跳过
	res := s.db.WithContext(ctx).Model(&model.ShortURL{ID: m.ID}).Updates(map[string]interface{}{
		"url":        m.URL,
		"visitors":   m.Visitors,
		"expires_at": m.ExpiresAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) IncrementVisitors(ctx context.Context, id string) error {
	// UpdateColumn 跳过 gorm 的时间戳自动更新：访问计数不算一次修改
	res := s.db.WithContext(ctx).Model(&model.ShortURL{}).Where("id = ?", id).
		UpdateColumn("visitors", gorm.Expr("visitors + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.ShortURL{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

package store

import (
	"context"
	"errors"

	"shorturl-api/internal/model"
)

var (
	// ErrNotFound 表示指定短码的记录不存在
	ErrNotFound = errors.New("shorturl not found")
	// ErrDuplicateKey 表示插入时短码已存在
	ErrDuplicateKey = errors.New("shorturl id already exists")
)

// Store 短链接持久化接口，每次调用对应一次独立的存储操作
type Store interface {
	// Insert 插入一条新记录，短码已存在时返回 ErrDuplicateKey
	Insert(ctx context.Context, m *model.ShortURL) error

	// Get 按短码查询，不存在时返回 ErrNotFound
	Get(ctx context.Context, id string) (*model.ShortURL, error)

	// List 按存储顺序分页返回记录
	List(ctx context.Context, offset, limit int) ([]model.ShortURL, error)

	// Update 按短码整行替换可变字段并刷新 updated_at，
	// 不存在时返回 ErrNotFound
	Update(ctx context.Context, m *model.ShortURL) error

	// IncrementVisitors 原子递增访问计数，不触碰 updated_at，
	// 不存在时返回 ErrNotFound
	IncrementVisitors(ctx context.Context, id string) error

	// Delete 按短码删除，不存在时返回 ErrNotFound
	Delete(ctx context.Context, id string) error
}

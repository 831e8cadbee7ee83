package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"shorturl-api/internal/model"
	"shorturl-api/internal/shortid"
	"shorturl-api/internal/store"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	// ErrInvalidURL 表示 url 不符合允许的格式
	ErrInvalidURL = errors.New("url is not valid")
	// ErrPastExpiration 表示过期时间不在未来
	ErrPastExpiration = errors.New("expires_at must be a future date")
	// ErrEmptyExpiration 表示过期时间缺失
	ErrEmptyExpiration = errors.New("expire date is empty")
	// ErrEmptyUpdate 表示更新请求没有携带任何字段
	ErrEmptyUpdate = errors.New("at least one parameter must be present")
)

// 宽松的 URL 校验：协议和 www 可选，域名带 2-6 位字母的 TLD，路径可选
var urlPattern = regexp.MustCompile(`^(http(s)?://.)?(www\.)?[-a-zA-Z0-9@:%._+~#=]{2,256}\.[a-z]{2,6}\b([-a-zA-Z0-9@:%_+.~#?&/=]*)`)

const (
	// defaultExpiry 是未指定过期时间时的默认有效期
	defaultExpiry = 90 * 24 * time.Hour
	// maxBuildAttempts 是短码冲突时的最大重试次数
	maxBuildAttempts = 5

	cacheKeyPrefix = "shorturl:"
	cacheTTL       = 24 * time.Hour
)

// ShortURLService 短链接生命周期服务：校验、维护不变量并编排存储与短码生成
type ShortURLService struct {
	store store.Store
	cache *redis.Client // 可为 nil，降级为纯数据库路径
	log   *zap.SugaredLogger

	// 短码生成函数，测试中可替换
	generate func() (string, error)
}

// NewShortURLService 创建服务实例，依赖通过构造函数注入
func NewShortURLService(st store.Store, cache *redis.Client, logger *zap.SugaredLogger) *ShortURLService {
	return &ShortURLService{
		store:    st,
		cache:    cache,
		log:      logger.Named("shorturl_service"),
		generate: shortid.Generate,
	}
}

// Build 校验并创建一条新的短链接映射
// expiresAt 为 nil 时默认 90 天后过期；指定时必须严格晚于当前时间
func (s *ShortURLService) Build(ctx context.Context, rawURL string, expiresAt *time.Time) (*model.ShortURL, error) {
	now := time.Now()
	if expiresAt != nil && !expiresAt.After(now) {
		return nil, ErrPastExpiration
	}
	if !urlPattern.MatchString(rawURL) {
		return nil, ErrInvalidURL
	}
	if expiresAt == nil {
		t := now.Add(defaultExpiry)
		expiresAt = &t
	}

	// 7 位短码来自 128 位随机值的截断，规模大了会撞；
	// 撞上时换一个短码重试，而不是让冲突直接冒泡给调用方
	for attempt := 1; attempt <= maxBuildAttempts; attempt++ {
		id, err := s.generate()
		if err != nil {
			return nil, err
		}

		m := &model.ShortURL{ID: id, URL: rawURL, ExpiresAt: expiresAt}
		err = s.store.Insert(ctx, m)
		if err == nil {
			s.warmCache(ctx, id, rawURL)
			s.log.Infof("短链接 %s 创建成功", id)
			return m, nil
		}
		if !errors.Is(err, store.ErrDuplicateKey) {
			return nil, err
		}
		s.log.Warnf("短码 %s 冲突，重试 (%d/%d)", id, attempt, maxBuildAttempts)
	}

	return nil, fmt.Errorf("生成唯一短码失败: %w", store.ErrDuplicateKey)
}

// List 分页返回映射列表
// page 小于 1 取 1，limit 小于 5 取 5，返回归一化后的 page 和 limit
func (s *ShortURLService) List(ctx context.Context, page, limit int) ([]model.ShortURL, int, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 5 {
		limit = 5
	}

	records, err := s.store.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, page, limit, err
	}
	return records, page, limit, nil
}

// Redirect 记录一次访问并返回跳转目标
// 计数通过原子 UPDATE 完成，且不触碰 updated_at
func (s *ShortURLService) Redirect(ctx context.Context, id string) (string, error) {
	if err := s.store.IncrementVisitors(ctx, id); err != nil {
		return "", err
	}

	if s.cache != nil {
		if dest, err := s.cache.Get(ctx, cacheKeyPrefix+id).Result(); err == nil {
			return dest, nil
		}
	}

	m, err := s.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	s.warmCache(ctx, id, m.URL)
	return m.URL, nil
}

// GetDetails 返回完整的映射记录
func (s *ShortURLService) GetDetails(ctx context.Context, id string) (*model.ShortURL, error) {
	return s.store.Get(ctx, id)
}

// Update 更新目标 URL 和/或过期时间
// URL 变更会将访问计数归零；任何一次 expires_at 写入都要求严格在未来
func (s *ShortURLService) Update(ctx context.Context, id string, newURL *string, expiresAt *time.Time) error {
	if newURL == nil && expiresAt == nil {
		return ErrEmptyUpdate
	}

	m, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}

	if newURL != nil {
		if !urlPattern.MatchString(*newURL) {
			return ErrInvalidURL
		}
		m.URL = *newURL
		m.Visitors = 0
	}
	if expiresAt != nil {
		if !expiresAt.After(time.Now()) {
			return ErrPastExpiration
		}
		m.ExpiresAt = expiresAt
	}

	if err := s.store.Update(ctx, m); err != nil {
		return err
	}
	s.invalidateCache(ctx, id)
	s.log.Infof("短链接 %s 更新成功", id)
	return nil
}

// UpdateExpiration 单独更新过期时间
func (s *ShortURLService) UpdateExpiration(ctx context.Context, id string, expiresAt *time.Time) error {
	if expiresAt == nil {
		return ErrEmptyExpiration
	}
	if !expiresAt.After(time.Now()) {
		return ErrPastExpiration
	}

	m, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	m.ExpiresAt = expiresAt

	if err := s.store.Update(ctx, m); err != nil {
		return err
	}
	s.log.Infof("短链接 %s 过期时间更新成功", id)
	return nil
}

// Delete 删除映射并失效缓存
func (s *ShortURLService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx, id)
	s.log.Infof("短链接 %s 删除成功", id)
	return nil
}

// warmCache 回填 id→url 缓存，缓存失败只记日志不影响主流程
func (s *ShortURLService) warmCache(ctx context.Context, id, url string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKeyPrefix+id, url, cacheTTL).Err(); err != nil {
		s.log.Warnf("缓存写入失败: %v", err)
	}
}

func (s *ShortURLService) invalidateCache(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKeyPrefix+id).Err(); err != nil {
		s.log.Warnf("缓存删除失败: %v", err)
	}
}

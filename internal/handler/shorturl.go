package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shorturl-api/internal/service"
	"shorturl-api/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShortURLHandler 短链接 HTTP 处理器
type ShortURLHandler struct {
	svc     *service.ShortURLService
	baseURL string // 为空时用请求的 Host 拼接短链接
	log     *zap.SugaredLogger
}

// NewShortURLHandler 创建处理器实例
func NewShortURLHandler(svc *service.ShortURLService, baseURL string, logger *zap.SugaredLogger) *ShortURLHandler {
	return &ShortURLHandler{
		svc:     svc,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		log:     logger.Named("shorturl_handler"),
	}
}

// HealthCheck 健康检查
func (h *ShortURLHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
}

// BuildRequest 创建短链接的请求体
type BuildRequest struct {
	URL       string  `json:"url" example:"https://www.google.com"`
	ExpiresAt *string `json:"expires_at" example:"2030-01-01T00:00:00"`
}

// UpdateRequest 更新短链接的请求体，至少携带一个字段
type UpdateRequest struct {
	URL       *string `json:"url" example:"https://twitter.com/home"`
	ExpiresAt *string `json:"expires_at" example:"2030-01-01T00:00:00"`
}

// FieldError 字段级校验错误
type FieldError struct {
	Msg  string `json:"msg" example:"url is not valid"`
	Loc  string `json:"loc" example:"body.url"`
	Type string `json:"type" example:"value_error"`
}

// 过期时间同时接受 RFC3339 和不带时区的写法
var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseTimestamp(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.ParseInLocation(layout, raw, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func validationError(c *gin.Context, errs ...FieldError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
}

// BuildShortURL godoc
// @Summary 创建短链接
// @Description 校验 URL 并生成 7 位短码，expires_at 缺省为 90 天后
// @Tags ShortURL
// @Accept json
// @Produce json
// @Param body body BuildRequest true "目标 URL 和可选过期时间"
// @Success 200 {object} map[string]string "message 和 short_url"
// @Failure 422 {object} map[string][]FieldError "字段校验失败"
// @Router /v1/shorturl/build [post]
func (h *ShortURLHandler) BuildShortURL(c *gin.Context) {
	var req BuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, FieldError{Msg: "Field is required", Loc: "body", Type: "missing"})
		return
	}
	if req.URL == "" {
		validationError(c, FieldError{Msg: "Field is required", Loc: "body.url", Type: "missing"})
		return
	}

	var expiresAt *time.Time
	if req.ExpiresAt != nil {
		t, err := parseTimestamp(*req.ExpiresAt)
		if err != nil {
			validationError(c, FieldError{Msg: "expires_at is not a valid datetime", Loc: "body.expires_at", Type: "value_error"})
			return
		}
		expiresAt = &t
	}

	m, err := h.svc.Build(c.Request.Context(), req.URL, expiresAt)
	switch {
	case errors.Is(err, service.ErrInvalidURL):
		validationError(c, FieldError{Msg: "url is not valid", Loc: "body.url", Type: "value_error"})
		return
	case errors.Is(err, service.ErrPastExpiration):
		validationError(c, FieldError{Msg: "expires_at must be a future date", Loc: "body.expires_at", Type: "value_error"})
		return
	case err != nil:
		h.log.Errorf("创建短链接失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "ShortURL created successfully",
		"short_url": h.shortLink(c, m.ID),
	})
}

// GetAllShortURL godoc
// @Summary 分页获取全部短链接
// @Tags ShortURL
// @Produce json
// @Param page query int false "页码，最小 1"
// @Param limit query int false "每页条数，最小 5"
// @Success 200 {object} map[string]interface{} "data、count、page、limit"
// @Router /v1/shorturl/all [get]
func (h *ShortURLHandler) GetAllShortURL(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	records, page, limit, err := h.svc.List(c.Request.Context(), page, limit)
	if err != nil {
		h.log.Errorf("获取短链接列表失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  records,
		"count": len(records),
		"page":  page,
		"limit": limit,
	})
}

// RedirectShortURL godoc
// @Summary 短码跳转
// @Description 访问计数加一并 302 跳转到原始 URL
// @Tags ShortURL
// @Param id path string true "短码"
// @Success 302
// @Failure 404 {object} map[string]string
// @Router /v1/{id} [get]
func (h *ShortURLHandler) RedirectShortURL(c *gin.Context) {
	id := c.Param("id")

	dest, err := h.svc.Redirect(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "ShortURL not found"})
		return
	}
	if err != nil {
		h.log.Errorf("短码 %s 跳转失败: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.Redirect(http.StatusFound, dest)
}

// GetShortURLDetails godoc
// @Summary 获取短链接详情
// @Tags ShortURL
// @Produce json
// @Param id path string true "短码"
// @Success 200 {object} map[string]interface{} "data: 完整记录"
// @Failure 404 {object} map[string]string
// @Router /v1/shorturl/{id} [get]
func (h *ShortURLHandler) GetShortURLDetails(c *gin.Context) {
	id := c.Param("id")

	m, err := h.svc.GetDetails(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "ShortURL not found"})
		return
	}
	if err != nil {
		h.log.Errorf("获取短码 %s 详情失败: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": m})
}

// UpdateShortURL godoc
// @Summary 更新短链接
// @Description 更新目标 URL 和/或过期时间，URL 变更会重置访问计数
// @Tags ShortURL
// @Accept json
// @Produce json
// @Param id path string true "短码"
// @Param body body UpdateRequest true "新的 URL 和/或过期时间"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string][]FieldError
// @Router /v1/shorturl/{id} [put]
func (h *ShortURLHandler) UpdateShortURL(c *gin.Context) {
	id := c.Param("id")

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, FieldError{Msg: "Field is required", Loc: "body", Type: "missing"})
		return
	}
	if req.URL == nil && req.ExpiresAt == nil {
		validationError(c, FieldError{Msg: "At least one parameter must be present", Loc: "body", Type: "value_error"})
		return
	}

	var expiresAt *time.Time
	if req.ExpiresAt != nil {
		t, err := parseTimestamp(*req.ExpiresAt)
		if err != nil {
			validationError(c, FieldError{Msg: "expires_at is not a valid datetime", Loc: "body.expires_at", Type: "value_error"})
			return
		}
		expiresAt = &t
	}

	err := h.svc.Update(c.Request.Context(), id, req.URL, expiresAt)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "ShortURL not found"})
		return
	case errors.Is(err, service.ErrInvalidURL):
		validationError(c, FieldError{Msg: "url is not valid", Loc: "body.url", Type: "value_error"})
		return
	case errors.Is(err, service.ErrPastExpiration):
		validationError(c, FieldError{Msg: "expires_at must be a future date", Loc: "body.expires_at", Type: "value_error"})
		return
	case err != nil:
		h.log.Errorf("更新短码 %s 失败: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ShortURL updated"})
}

// UpdateExpireDate godoc
// @Summary 更新过期时间
// @Description 通过 query 参数 expire_date 单独更新过期时间
// @Tags ShortURL
// @Produce json
// @Param id path string true "短码"
// @Param expire_date query string true "新的过期时间，需在未来"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /v1/shorturl/{id} [patch]
func (h *ShortURLHandler) UpdateExpireDate(c *gin.Context) {
	id := c.Param("id")

	raw := c.Query("expire_date")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Expire date is empty"})
		return
	}
	t, err := parseTimestamp(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Expire date is not a valid datetime"})
		return
	}

	err = h.svc.UpdateExpiration(c.Request.Context(), id, &t)
	switch {
	case errors.Is(err, service.ErrPastExpiration):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Expire date is in the past"})
		return
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "ShortURL not found"})
		return
	case err != nil:
		h.log.Errorf("更新短码 %s 过期时间失败: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ShortURL expire date updated"})
}

// DeleteShortURL godoc
// @Summary 删除短链接
// @Tags ShortURL
// @Produce json
// @Param id path string true "短码"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /v1/shorturl/{id} [delete]
func (h *ShortURLHandler) DeleteShortURL(c *gin.Context) {
	id := c.Param("id")

	err := h.svc.Delete(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "ShortURL not found"})
		return
	}
	if err != nil {
		h.log.Errorf("删除短码 %s 失败: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ShortURL deleted successfully"})
}

// shortLink 拼接对外的完整短链接
func (h *ShortURLHandler) shortLink(c *gin.Context, id string) string {
	base := h.baseURL
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + c.Request.Host
	}
	return base + "/v1/" + id
}

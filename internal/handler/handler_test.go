package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"testing"
	"time"

	"shorturl-api/internal/model"
	"shorturl-api/internal/service"
	"shorturl-api/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTest 为集成测试初始化一个干净的环境
// 内存 SQLite 作为存储，不依赖 Redis
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "无法连接到内存数据库")
	require.NoError(t, db.AutoMigrate(&model.ShortURL{}), "数据库迁移失败")

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	logger, _ := zap.NewDevelopment()
	sugar := logger.Sugar()

	svc := service.NewShortURLService(store.NewGormStore(db), nil, sugar)
	h := NewShortURLHandler(svc, "", sugar)

	router := gin.New()
	v1 := router.Group("/v1")
	{
		v1.GET("/:id", h.RedirectShortURL)
		shorturl := v1.Group("/shorturl")
		{
			shorturl.POST("/build", h.BuildShortURL)
			shorturl.GET("/all", h.GetAllShortURL)
			shorturl.GET("/:id", h.GetShortURLDetails)
			shorturl.PUT("/:id", h.UpdateShortURL)
			shorturl.PATCH("/:id", h.UpdateExpireDate)
			shorturl.DELETE("/:id", h.DeleteShortURL)
		}
	}
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	reader := bytes.NewBuffer(nil)
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func firstError(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	resp := decodeBody(t, w)
	errs, ok := resp["errors"].([]interface{})
	require.True(t, ok, "响应中应包含 errors 数组")
	require.NotEmpty(t, errs)
	e, ok := errs[0].(map[string]interface{})
	require.True(t, ok)
	return e
}

// buildOne 创建一条短链接并返回短码
func buildOne(t *testing.T, router *gin.Engine, original string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/v1/shorturl/build", BuildRequest{URL: original})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, "ShortURL created successfully", resp["message"])

	shortURL, _ := resp["short_url"].(string)
	require.NotEmpty(t, shortURL, "响应中应包含短链接 URL")
	return shortURL[len(shortURL)-7:]
}

func TestBuild_Success(t *testing.T) {
	router := setupTest(t)

	id := buildOne(t, router, "https://www.google.com")
	assert.Regexp(t, regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{7}$`), id)
}

func TestBuild_MissingBody(t *testing.T) {
	router := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/v1/shorturl/build", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	e := firstError(t, w)
	assert.Equal(t, "body", e["loc"])
	assert.Equal(t, "missing", e["type"])
}

func TestBuild_MissingURL(t *testing.T) {
	router := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/v1/shorturl/build", map[string]string{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	e := firstError(t, w)
	assert.Equal(t, "body.url", e["loc"])
	assert.Equal(t, "missing", e["type"])
}

func TestBuild_InvalidURL(t *testing.T) {
	router := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/v1/shorturl/build", BuildRequest{URL: "w.google"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	e := firstError(t, w)
	assert.Equal(t, "body.url", e["loc"])
	assert.Equal(t, "value_error", e["type"])
}

func TestBuild_PastExpiration(t *testing.T) {
	router := setupTest(t)

	past := "2020-01-01T00:00:00"
	w := doJSON(t, router, http.MethodPost, "/v1/shorturl/build", BuildRequest{URL: "https://x.com", ExpiresAt: &past})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	e := firstError(t, w)
	assert.Equal(t, "body.expires_at", e["loc"])
	assert.Equal(t, "value_error", e["type"])
}

func TestRedirect_Flow(t *testing.T) {
	router := setupTest(t)

	original := "https://www.google.com/very/long/path"
	id := buildOne(t, router, original)

	w := doJSON(t, router, http.MethodGet, "/v1/"+id, nil)
	assert.Equal(t, http.StatusFound, w.Code, "访问短码时状态码应为 302 Found")
	assert.Equal(t, original, w.Header().Get("Location"), "重定向的 URL 应与原始 URL 匹配")

	// 跳转后访问计数加一
	w = doJSON(t, router, http.MethodGet, "/v1/shorturl/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, original, data["url"])
	assert.Equal(t, float64(1), data["visitors"])
}

func TestRedirect_NotFound(t *testing.T) {
	router := setupTest(t)

	w := doJSON(t, router, http.MethodGet, "/v1/zzzzzzz", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ShortURL not found", decodeBody(t, w)["message"])
}

func TestGetDetails_NotFound(t *testing.T) {
	router := setupTest(t)

	w := doJSON(t, router, http.MethodGet, "/v1/shorturl/zzzzzzz", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAll_Pagination(t *testing.T) {
	router := setupTest(t)

	for i := 0; i < 6; i++ {
		buildOne(t, router, fmt.Sprintf("https://example.com/%d", i))
	}

	// page=0&limit=1 被抬到下限 page=1 limit=5
	w := doJSON(t, router, http.MethodGet, "/v1/shorturl/all?page=0&limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, float64(5), resp["count"])
	assert.Equal(t, float64(1), resp["page"])
	assert.Equal(t, float64(5), resp["limit"])
	assert.Len(t, resp["data"].([]interface{}), 5)
}

func TestUpdate_Flow(t *testing.T) {
	router := setupTest(t)

	id := buildOne(t, router, "https://www.google.com")

	// 先访问一次，确认 URL 变更会重置计数
	w := doJSON(t, router, http.MethodGet, "/v1/"+id, nil)
	require.Equal(t, http.StatusFound, w.Code)

	newURL := "https://twitter.com/home"
	w = doJSON(t, router, http.MethodPut, "/v1/shorturl/"+id, UpdateRequest{URL: &newURL})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ShortURL updated", decodeBody(t, w)["message"])

	w = doJSON(t, router, http.MethodGet, "/v1/shorturl/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, newURL, data["url"])
	assert.Equal(t, float64(0), data["visitors"])
}

func TestUpdate_EmptyBody(t *testing.T) {
	router := setupTest(t)

	id := buildOne(t, router, "https://www.google.com")

	w := doJSON(t, router, http.MethodPut, "/v1/shorturl/"+id, map[string]string{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	e := firstError(t, w)
	assert.Equal(t, "body", e["loc"])
}

func TestUpdate_NotFound(t *testing.T) {
	router := setupTest(t)

	newURL := "https://twitter.com/home"
	w := doJSON(t, router, http.MethodPut, "/v1/shorturl/zzzzzzz", UpdateRequest{URL: &newURL})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPatchExpireDate(t *testing.T) {
	router := setupTest(t)

	id := buildOne(t, router, "https://www.google.com")

	// 缺失
	w := doJSON(t, router, http.MethodPatch, "/v1/shorturl/"+id, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Expire date is empty", decodeBody(t, w)["message"])

	// 过去的时间
	w = doJSON(t, router, http.MethodPatch, "/v1/shorturl/"+id+"?expire_date=2020-01-01T00:00:00", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Expire date is in the past", decodeBody(t, w)["message"])

	// 未来的时间
	future := time.Now().Add(48 * time.Hour).Format("2006-01-02T15:04:05")
	w = doJSON(t, router, http.MethodPatch, "/v1/shorturl/"+id+"?expire_date="+url.QueryEscape(future), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ShortURL expire date updated", decodeBody(t, w)["message"])
}

func TestDelete_Flow(t *testing.T) {
	router := setupTest(t)

	id := buildOne(t, router, "https://www.google.com")

	w := doJSON(t, router, http.MethodDelete, "/v1/shorturl/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ShortURL deleted successfully", decodeBody(t, w)["message"])

	w = doJSON(t, router, http.MethodGet, "/v1/shorturl/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/v1/shorturl/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	kratoslog "github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nightlife-portal/apps/portal-service/dao/memdao"
	"nightlife-portal/apps/portal-service/model"
	"nightlife-portal/apps/portal-service/service"
	"nightlife-portal/pkg/auth"
	"nightlife-portal/pkg/httpx"
	"nightlife-portal/pkg/logger"
	"nightlife-portal/pkg/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// pngBytes PNG文件头，足够通过内容嗅探
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type testServer struct {
	router     *gin.Engine
	daos       *memdao.Set
	svc        *service.Service
	jwt        *auth.JWTConfig
	adminToken string
	userToken  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	set := memdao.New()
	jwtCfg := &auth.JWTConfig{Secret: "handler-secret", ExpireTime: time.Hour}

	svc := service.NewService(service.Options{
		Blogs:    set.Blogs,
		Events:   set.Events,
		Jobs:     set.Jobs,
		Carousel: set.Carousel,
		Comments: set.Comments,
		Accounts: set.Accounts,
		Audit:    set.Audit,
		Cache:    service.NewMemoryCacheNotifier(nil, time.Now),
		JWT:      jwtCfg,
		Logger:   logger.NewNop(),
	})

	publicDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "index.html"), []byte("<h1>portal</h1>"), 0o644))

	h := NewHTTPHandler(Options{
		Service:   svc,
		Auth:      middleware.NewAuthMiddleware(kratoslog.DefaultLogger, jwtCfg, svc),
		PublicDir: publicDir,
		Logger:    logger.NewNop(),
	})
	router := gin.New()
	h.RegisterRoutes(router)

	ts := &testServer{router: router, daos: set, svc: svc, jwt: jwtCfg}
	ctx := context.Background()
	_, err := svc.EnsureAdmin(ctx, service.SeedAdmin{Username: "admin", Email: "admin@example.com", Password: "pw"})
	require.NoError(t, err)
	admin, err := set.Accounts.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	ts.adminToken = ts.token(t, admin.ID.Hex(), auth.RoleAdmin)

	user := &model.Account{ID: primitive.NewObjectID(), Username: "user", Email: "user@example.com", Role: auth.RoleUser}
	require.NoError(t, set.Accounts.Create(ctx, user))
	ts.userToken = ts.token(t, user.ID.Hex(), auth.RoleUser)
	return ts
}

func (ts *testServer) token(t *testing.T, accountID, role string) string {
	t.Helper()
	token, err := auth.GenerateToken(ts.jwt, accountID, role, time.Now())
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) doJSON(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return ts.do(req, token)
}

type formFile struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

func multipartRequest(t *testing.T, method, path string, fields map[string]string, files ...formFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, f.field, f.filename))
		header.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func blogBody(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":    title,
		"excerpt":  "excerpt",
		"content":  "content",
		"author":   "author",
		"category": "General",
		"image":    "https://example.com/a.png",
	}
}

func blogFields(title string) map[string]string {
	return map[string]string{
		"title":    title,
		"excerpt":  "excerpt",
		"content":  "content",
		"author":   "author",
		"category": "Events",
		"tags":     "night, campus",
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(httptest.NewRequest(http.MethodGet, "/api/health", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "Server is running", body["message"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	ts := newTestServer(t)

	w := ts.doJSON(http.MethodPost, "/api/blogs", "", blogBody("t"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middleware.MsgNoToken, decode[httpx.APIError](t, w).Message)

	w = ts.doJSON(http.MethodPost, "/api/blogs", "not-a-jwt", blogBody("t"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middleware.MsgTokenFailed, decode[httpx.APIError](t, w).Message)

	w = ts.doJSON(http.MethodPost, "/api/blogs", ts.userToken, blogBody("t"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, middleware.MsgNotAdmin, decode[httpx.APIError](t, w).Message)

	ghost := ts.token(t, primitive.NewObjectID().Hex(), auth.RoleAdmin)
	w = ts.doJSON(http.MethodPost, "/api/blogs", ghost, blogBody("t"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middleware.MsgAccountNotFound, decode[httpx.APIError](t, w).Message)

	count, err := ts.daos.Blogs.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestBlogLifecycle(t *testing.T) {
	ts := newTestServer(t)

	w := ts.doJSON(http.MethodPost, "/api/blogs", ts.adminToken, blogBody("first"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[model.Blog](t, w)
	assert.Equal(t, "first", created.Title)
	assert.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))

	path := "/api/blogs/" + created.ID.Hex()
	w = ts.do(httptest.NewRequest(http.MethodGet, path, nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public, max-age=900, s-maxage=600", w.Header().Get("Cache-Control"))

	w = ts.doJSON(http.MethodPut, path, ts.adminToken, map[string]interface{}{"title": "renamed", "tags": "x,y"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[model.Blog](t, w)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, []string{"x", "y"}, updated.Tags)

	w = ts.doJSON(http.MethodDelete, path, ts.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.MsgBlogRemoved, decode[map[string]string](t, w)["message"])

	w = ts.do(httptest.NewRequest(http.MethodGet, path, nil), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, model.MsgBlogNotFound, decode[httpx.APIError](t, w).Message)

	w = ts.do(httptest.NewRequest(http.MethodGet, "/api/blogs/not-an-id", nil), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, model.MsgBlogNotFound, decode[httpx.APIError](t, w).Message)

	w = ts.doJSON(http.MethodDelete, path, ts.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDetailETagIsPerEntity(t *testing.T) {
	ts := newTestServer(t)
	a := decode[model.Blog](t, ts.doJSON(http.MethodPost, "/api/blogs", ts.adminToken, blogBody("a")))
	b := decode[model.Blog](t, ts.doJSON(http.MethodPost, "/api/blogs", ts.adminToken, blogBody("b")))

	w := ts.do(httptest.NewRequest(http.MethodGet, "/api/blogs/"+a.ID.Hex(), nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	etagA := w.Header().Get("ETag")
	require.NotEmpty(t, etagA)

	req := httptest.NewRequest(http.MethodGet, "/api/blogs/"+b.ID.Hex(), nil)
	req.Header.Set("If-None-Match", etagA)
	w = ts.do(req, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, etagA, w.Header().Get("ETag"))
	assert.Equal(t, "b", decode[model.Blog](t, w).Title)
}

func TestCreateBlogValidationErrors(t *testing.T) {
	ts := newTestServer(t)

	w := ts.doJSON(http.MethodPost, "/api/blogs", ts.adminToken, map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[httpx.APIError](t, w)
	assert.Equal(t, httpx.MsgValidation, body.Message)
	assert.Len(t, body.Errors, 6)

	req := httptest.NewRequest(http.MethodPost, "/api/blogs", strings.NewReader("{broken"))
	req.Header.Set("Content-Type", "application/json")
	w = ts.do(req, ts.adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, MsgInvalidBody, decode[httpx.APIError](t, w).Message)
}

func TestListCachingAndAdminView(t *testing.T) {
	ts := newTestServer(t)
	require.Equal(t, http.StatusCreated, ts.doJSON(http.MethodPost, "/api/blogs", ts.adminToken, blogBody("a")).Code)
	draft := blogBody("draft")
	draft["published"] = false
	require.Equal(t, http.StatusCreated, ts.doJSON(http.MethodPost, "/api/blogs", ts.adminToken, draft).Code)

	w := ts.do(httptest.NewRequest(http.MethodGet, "/api/blogs", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public, max-age=600, s-maxage=300", w.Header().Get("Cache-Control"))
	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)
	page := decode[model.PageResult[*model.Blog]](t, w)
	assert.EqualValues(t, 1, page.Total)

	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	req.Header.Set("If-None-Match", etag)
	w = ts.do(req, "")
	assert.Equal(t, http.StatusNotModified, w.Code)

	// 修改后版本号变化，旧ETag失效
	require.Equal(t, http.StatusCreated, ts.doJSON(http.MethodPost, "/api/blogs", ts.adminToken, blogBody("b")).Code)
	req = httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	req.Header.Set("If-None-Match", etag)
	w = ts.do(req, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, etag, w.Header().Get("ETag"))

	w = ts.do(httptest.NewRequest(http.MethodGet, "/api/blogs?admin=true", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))
	assert.Empty(t, w.Header().Get("ETag"))
	assert.EqualValues(t, 3, decode[model.PageResult[*model.Blog]](t, w).Total)
}

func TestHugePageNumberReturnsEmptyPage(t *testing.T) {
	ts := newTestServer(t)
	require.Equal(t, http.StatusCreated, ts.doJSON(http.MethodPost, "/api/blogs", ts.adminToken, blogBody("a")).Code)

	for _, path := range []string{
		"/api/blogs?pageNumber=9223372036854775807",
		"/api/blogs?pageNumber=922337203685477581",
		"/api/comments/admin/all?pageNumber=9223372036854775807",
	} {
		token := ""
		if strings.Contains(path, "/admin/") {
			token = ts.adminToken
		}
		w := ts.do(httptest.NewRequest(http.MethodGet, path, nil), token)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Empty(t, decode[model.PageResult[json.RawMessage]](t, w).Items, path)
	}
}

func TestUploadRejectsWrongMIME(t *testing.T) {
	ts := newTestServer(t)

	req := multipartRequest(t, http.MethodPost, "/api/blogs", blogFields("text"), formFile{
		field: "image", filename: "notes.txt", contentType: "text/plain", data: []byte("just text"),
	})
	w := ts.do(req, ts.adminToken)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Only image files are allowed for image field", decode[httpx.APIError](t, w).Message)

	// 声明为图片但内容不是
	req = multipartRequest(t, http.MethodPost, "/api/blogs", blogFields("spoofed"), formFile{
		field: "image", filename: "fake.png", contentType: "image/png", data: []byte("just text"),
	})
	w = ts.do(req, ts.adminToken)
	require.Equal(t, http.StatusBadRequest, w.Code)

	count, err := ts.daos.Blogs.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUploadRejectsUnexpectedField(t *testing.T) {
	ts := newTestServer(t)

	req := multipartRequest(t, http.MethodPost, "/api/events", map[string]string{"title": "e"}, formFile{
		field: "video", filename: "a.png", contentType: "image/png", data: pngBytes,
	})
	w := ts.do(req, ts.adminToken)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, MsgUnexpectedField, decode[httpx.APIError](t, w).Message)
}

func TestUploadStoresDataURI(t *testing.T) {
	ts := newTestServer(t)

	req := multipartRequest(t, http.MethodPost, "/api/blogs", blogFields("with image"), formFile{
		field: "image", filename: "a.png", contentType: "image/png", data: pngBytes,
	})
	w := ts.do(req, ts.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	blog := decode[model.Blog](t, w)
	assert.True(t, strings.HasPrefix(blog.Image, "data:image/png;base64,"), blog.Image)
	assert.Equal(t, []string{"night", "campus"}, blog.Tags)
	assert.Equal(t, "Events", blog.Category)
}

func TestCommentFlow(t *testing.T) {
	ts := newTestServer(t)
	w := ts.doJSON(http.MethodPost, "/api/blogs", ts.adminToken, blogBody("post"))
	require.Equal(t, http.StatusCreated, w.Code)
	blog := decode[model.Blog](t, w)

	w = ts.doJSON(http.MethodPost, "/api/comments", "", map[string]string{
		"content":     "nice",
		"author":      "reader",
		"email":       "reader@example.com",
		"contentType": "blog",
		"contentId":   blog.ID.Hex(),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	comment := decode[model.Comment](t, w)
	assert.False(t, comment.Approved)

	listPath := "/api/comments?contentType=blog&contentId=" + blog.ID.Hex()
	w = ts.do(httptest.NewRequest(http.MethodGet, listPath, nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]json.RawMessage](t, w))

	w = ts.doJSON(http.MethodPut, "/api/comments/approve/bulk", ts.adminToken, map[string][]string{
		"commentIds": {comment.ID.Hex()},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[map[string]interface{}](t, w)["approved"])

	w = ts.do(httptest.NewRequest(http.MethodGet, listPath, nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]json.RawMessage](t, w), 1)

	w = ts.doJSON(http.MethodDelete, "/api/comments/"+comment.ID.Hex(), ts.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]interface{}](t, w)
	assert.Equal(t, model.MsgCommentRemoved, body["message"])
	assert.EqualValues(t, 1, body["deleted"])

	w = ts.doJSON(http.MethodGet, "/api/comments/"+comment.ID.Hex(), ts.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, model.MsgCommentNotFound, decode[httpx.APIError](t, w).Message)
}

func TestLoginAndMe(t *testing.T) {
	ts := newTestServer(t)

	w := ts.doJSON(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decode[httpx.APIError](t, w).Message)

	w = ts.doJSON(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode[model.LoginResult](t, w)
	assert.Equal(t, auth.RoleAdmin, result.Role)
	require.NotEmpty(t, result.Token)

	w = ts.doJSON(http.MethodGet, "/api/auth/me", result.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin@example.com", decode[auth.Principal](t, w).Email)
}

func TestCacheEndpoints(t *testing.T) {
	ts := newTestServer(t)

	w := ts.doJSON(http.MethodPost, "/api/cache/invalidate", ts.adminToken, map[string][]string{"resources": {"jobs"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Cache invalidated", decode[map[string]interface{}](t, w)["message"])

	w = ts.do(httptest.NewRequest(http.MethodGet, "/api/cache/version", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))
	body := decode[struct {
		Versions     map[string]int64 `json:"versions"`
		PollInterval int              `json:"pollInterval"`
	}](t, w)
	assert.EqualValues(t, 1, body.Versions["jobs"])
	assert.EqualValues(t, 0, body.Versions["blogs"])
	assert.Equal(t, 30, body.PollInterval)

	w = ts.doJSON(http.MethodPost, "/api/blogs/invalidate-cache", ts.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Blog cache invalidated", decode[map[string]interface{}](t, w)["message"])

	w = ts.doJSON(http.MethodGet, "/api/audit", ts.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode[model.PageResult[*model.AuditLog]](t, w).Total)
}

func TestReorderSlides(t *testing.T) {
	ts := newTestServer(t)
	w := ts.doJSON(http.MethodPost, "/api/carousel", ts.adminToken, map[string]interface{}{
		"title": "a", "image": "/a.png", "altText": "a",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	slide := decode[model.CarouselSlide](t, w)

	w = ts.doJSON(http.MethodPut, "/api/carousel/order/update", ts.adminToken, map[string]interface{}{
		"slides": []map[string]interface{}{
			{"id": slide.ID.Hex(), "order": 4},
			{"id": primitive.NewObjectID().Hex(), "order": 1},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[map[string]interface{}](t, w)
	assert.Equal(t, "Order updated", body["message"])
	assert.EqualValues(t, 1, body["updated"])

	w = ts.do(httptest.NewRequest(http.MethodGet, "/api/carousel", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	slides := decode[[]model.CarouselSlide](t, w)
	require.Len(t, slides, 1)
	assert.Equal(t, 4, slides[0].Order)
}

func TestUnknownRoutes(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(httptest.NewRequest(http.MethodGet, "/api/nothing", nil), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", decode[httpx.APIError](t, w).Message)

	w = ts.do(httptest.NewRequest(http.MethodGet, "/", nil), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "portal")
}

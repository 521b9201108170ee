package httpx

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
)

// CacheProfile 公开读接口的缓存时长（秒）
type CacheProfile struct {
	MaxAge  int
	SMaxAge int
}

// 各类接口的缓存策略
var (
	ListCache     = CacheProfile{MaxAge: 600, SMaxAge: 300}
	DetailCache   = CacheProfile{MaxAge: 900, SMaxAge: 600}
	FeaturedCache = CacheProfile{MaxAge: 600, SMaxAge: 300}
)

// CacheControl 生成Cache-Control头
func (p CacheProfile) CacheControl() string {
	return fmt.Sprintf("public, max-age=%d, s-maxage=%d", p.MaxAge, p.SMaxAge)
}

// ETag 由资源名、请求路径、查询参数、结果数量和资源缓存版本生成弱ETag，不是内容哈希
func ETag(resource, path string, query url.Values, count int, version int64) string {
	d := xxhash.New()
	_, _ = d.WriteString(resource)
	_, _ = d.WriteString(" ")
	_, _ = d.WriteString(path)
	_, _ = d.WriteString("?")
	// Encode按key排序，参数顺序不影响结果
	_, _ = d.WriteString(query.Encode())
	_, _ = d.WriteString("#")
	_, _ = d.WriteString(strconv.Itoa(count))
	_, _ = d.WriteString("@")
	_, _ = d.WriteString(strconv.FormatInt(version, 10))
	return fmt.Sprintf(`W/"%x"`, d.Sum64())
}

// etagMatches 判断If-None-Match是否命中
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || candidate == etag || "W/"+candidate == etag {
			return true
		}
	}
	return false
}

// WriteCached 写出可缓存的JSON响应，ETag命中时返回304
func WriteCached(c *gin.Context, profile CacheProfile, etag string, obj interface{}) {
	c.Header("Cache-Control", profile.CacheControl())
	c.Header("Vary", "Accept-Encoding")
	c.Header("ETag", etag)

	if etagMatches(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}

	c.JSON(http.StatusOK, obj)
}

// SetNoStore 禁止任何缓存
func SetNoStore(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
}

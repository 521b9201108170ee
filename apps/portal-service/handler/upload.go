package handler

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"nightlife-portal/pkg/httpx"
)

// 上传错误消息
const (
	MsgUnexpectedField = "Unexpected field"
	MsgFileTooLarge    = "File too large"
	MsgInvalidBody     = "Invalid request body"
)

// 文件大小上限
const (
	MB             = 1 << 20
	BlogUploadMax  = 10 * MB
	EventUploadMax = 5 * MB
	SlideUploadMax = 5 * MB
)

// 表单解析时留给非文件字段的余量
const formOverhead = 1 * MB

// UploadPolicy 允许的文件字段及其MIME大类（image/、video/）
type UploadPolicy struct {
	MaxBytes int64
	Fields   map[string]string
}

// 各资源的上传策略
var (
	BlogUploads  = UploadPolicy{MaxBytes: BlogUploadMax, Fields: map[string]string{"image": "image/", "video": "video/"}}
	EventUploads = UploadPolicy{MaxBytes: EventUploadMax, Fields: map[string]string{"image": "image/"}}
	SlideUploads = UploadPolicy{MaxBytes: SlideUploadMax, Fields: map[string]string{"image": "image/"}}
)

// UploadedFile 已读入内存的上传文件
type UploadedFile struct {
	Field string
	MIME  string
	Data  []byte
}

// mimeMismatchMessage 例如 "Only image files are allowed for image field"
func mimeMismatchMessage(class, field string) string {
	return fmt.Sprintf("Only %s files are allowed for %s field", strings.TrimSuffix(class, "/"), field)
}

// isMultipart 请求体是否为multipart表单
func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// collectUploads 解析multipart表单并按策略校验文件，任何文件不合法都不会返回结果
func collectUploads(c *gin.Context, policy UploadPolicy) (map[string]*UploadedFile, error) {
	limit := policy.MaxBytes*int64(len(policy.Fields)) + formOverhead
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	if err := c.Request.ParseMultipartForm(formOverhead); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, httpx.BadRequest(MsgFileTooLarge)
		}
		return nil, httpx.BadRequest(MsgInvalidBody)
	}

	files := make(map[string]*UploadedFile)
	for field, headers := range c.Request.MultipartForm.File {
		class, ok := policy.Fields[field]
		if !ok {
			return nil, httpx.BadRequest(MsgUnexpectedField)
		}
		if len(headers) > 1 {
			return nil, httpx.BadRequest(MsgUnexpectedField)
		}
		file, err := readUpload(headers[0], field, class, policy.MaxBytes)
		if err != nil {
			return nil, err
		}
		files[field] = file
	}
	return files, nil
}

// readUpload 读取单个文件，声明的Content-Type和内容嗅探结果都必须属于允许的大类
func readUpload(header *multipart.FileHeader, field, class string, maxBytes int64) (*UploadedFile, error) {
	if header.Size > maxBytes {
		return nil, httpx.BadRequest(MsgFileTooLarge)
	}

	declared := header.Header.Get("Content-Type")
	if declared != "" && declared != "application/octet-stream" && !strings.HasPrefix(declared, class) {
		return nil, httpx.BadRequest(mimeMismatchMessage(class, field))
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", field, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, httpx.BadRequest(MsgFileTooLarge)
	}

	detected := mimetype.Detect(data)
	if !strings.HasPrefix(detected.String(), class) {
		return nil, httpx.BadRequest(mimeMismatchMessage(class, field))
	}

	mimeType, _, _ := mime.ParseMediaType(detected.String())
	return &UploadedFile{Field: field, MIME: mimeType, Data: data}, nil
}

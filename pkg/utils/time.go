package utils

import (
	"fmt"
	"strings"
	"time"
)

// 支持的日期格式
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate 解析日期字符串，纯日期按UTC零点处理
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date: %q", s)
}

// IsDate 是否可以解析为日期
func IsDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// Clock 返回当前时间，测试中可替换
type Clock func() time.Time

// SystemClock 系统时钟
func SystemClock() time.Time {
	return time.Now().UTC()
}

// MillisecondClock 截断到毫秒，和BSON日期的精度一致
func MillisecondClock(c Clock) Clock {
	return func() time.Time {
		return c().Truncate(time.Millisecond)
	}
}

package model

import (
	"encoding/json"
	"strings"
)

// TagList 标签列表，JSON中既可以是数组也可以是逗号分隔的字符串
type TagList []string

// ParseTags 拆分逗号分隔的标签，去掉空白和空项
func ParseTags(s string) TagList {
	return TagList(strings.Split(s, ",")).Normalize()
}

// Normalize 去掉每个标签的首尾空白并丢弃空项
func (t TagList) Normalize() TagList {
	out := make(TagList, 0, len(t))
	for _, tag := range t {
		for _, part := range strings.Split(tag, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// UnmarshalJSON 支持 ["a","b"] 和 "a, b"
func (t *TagList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = TagList{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = ParseTags(s)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*t = TagList(list).Normalize()
	return nil
}

// UnmarshalParam 表单字段绑定
func (t *TagList) UnmarshalParam(param string) error {
	*t = ParseTags(param)
	return nil
}

package dao

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"nightlife-portal/apps/portal-service/model"
)

// 列表的精确过滤字段
const (
	FilterCategory = "category"
	FilterType     = "type"
)

// 排序
var (
	SortNewest  = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
	SortByDate  = bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}
	SortByOrder = bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}}
)

// FilterValue 按过滤字段取出对应的参数值
func FilterValue(params *model.ListParams, field string) string {
	if field == FilterType {
		return params.Type
	}
	return params.Category
}

// buildListFilter 构建列表查询条件
func buildListFilter(params *model.ListParams, filterField string) bson.M {
	filter := bson.M{}
	if !params.Admin {
		filter["published"] = true
	}
	if v := FilterValue(params, filterField); v != "" {
		filter[filterField] = v
	}
	if params.Search != "" {
		filter["$text"] = bson.M{"$search": params.Search}
	}
	return filter
}

// buildFeaturedFilter 推荐列表条件
func buildFeaturedFilter() bson.M {
	return bson.M{"featured": true, "published": true}
}

// buildUpcomingFilter 即将开始的活动条件
func buildUpcomingFilter(from time.Time) bson.M {
	return bson.M{"published": true, "date": bson.M{"$gte": from}}
}

// buildCommentFilter 按内容过滤评论
func buildCommentFilter(ref *model.ContentRef, approvedOnly bool) bson.M {
	filter := bson.M{}
	if approvedOnly {
		filter["approved"] = true
	}
	if ref != nil {
		filter["contentType"] = ref.Type
		filter["contentId"] = ref.ID
	}
	return filter
}

// SetDocument 把patch中非nil的字段转换成$set文档，并刷新updatedAt
func SetDocument(patch any, now time.Time) (bson.M, error) {
	raw, err := bson.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("marshal patch: %w", err)
	}
	set := bson.M{}
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("unmarshal patch: %w", err)
	}
	delete(set, "_id")
	delete(set, "createdAt")
	set["updatedAt"] = now
	return set, nil
}

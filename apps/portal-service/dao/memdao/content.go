package memdao

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nightlife-portal/apps/portal-service/dao"
	"nightlife-portal/apps/portal-service/model"
)

// fields 列表过滤需要的字段视图
type fields struct {
	Published bool
	Featured  bool
	Filter    string   // category 或 type
	Text      []string // 全文索引字段
}

// contentDAO 内存版内容DAO
type contentDAO[T any, P any] struct {
	*store[T, P]
	filterField string
	view        func(*T) fields
	less        func(a, b *T) bool
}

// List 分页列表，全文搜索退化为不区分大小写的子串匹配
func (d *contentDAO[T, P]) List(_ context.Context, params *model.ListParams) ([]*T, int64, error) {
	match := func(item *T) bool {
		f := d.view(item)
		if !params.Admin && !f.Published {
			return false
		}
		if want := dao.FilterValue(params, d.filterField); want != "" && f.Filter != want {
			return false
		}
		return params.Search == "" || containsText(f.Text, params.Search)
	}
	items, err := d.filter(match, d.less)
	if err != nil {
		return nil, 0, err
	}
	return paginate(items, params.Skip(), params.PageSize), int64(len(items)), nil
}

// Featured 推荐列表
func (d *contentDAO[T, P]) Featured(_ context.Context, limit int) ([]*T, error) {
	items, err := d.filter(func(item *T) bool {
		f := d.view(item)
		return f.Featured && f.Published
	}, d.less)
	if err != nil {
		return nil, err
	}
	return paginate(items, 0, limit), nil
}

func containsText(fields []string, search string) bool {
	search = strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

// NewBlogDAO 内存版博客DAO
func NewBlogDAO() dao.BlogDAO {
	return &contentDAO[model.Blog, model.BlogPatch]{
		store:       newStore[model.Blog, model.BlogPatch](func(b *model.Blog) primitive.ObjectID { return b.ID }),
		filterField: dao.FilterCategory,
		view: func(b *model.Blog) fields {
			return fields{
				Published: b.Published,
				Featured:  b.Featured,
				Filter:    b.Category,
				Text:      []string{b.Title, b.Excerpt, b.Content},
			}
		},
		less: func(a, b *model.Blog) bool { return newerFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID) },
	}
}

// NewJobDAO 内存版职位DAO
func NewJobDAO() dao.JobDAO {
	return &contentDAO[model.Job, model.JobPatch]{
		store:       newStore[model.Job, model.JobPatch](func(j *model.Job) primitive.ObjectID { return j.ID }),
		filterField: dao.FilterType,
		view: func(j *model.Job) fields {
			return fields{
				Published: j.Published,
				Featured:  j.Featured,
				Filter:    j.Type,
				Text:      []string{j.Title, j.Description, j.Company},
			}
		},
		less: func(a, b *model.Job) bool { return newerFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID) },
	}
}

type eventDAO struct {
	*contentDAO[model.Event, model.EventPatch]
}

// NewEventDAO 内存版活动DAO
func NewEventDAO() dao.EventDAO {
	return &eventDAO{
		contentDAO: &contentDAO[model.Event, model.EventPatch]{
			store:       newStore[model.Event, model.EventPatch](func(e *model.Event) primitive.ObjectID { return e.ID }),
			filterField: dao.FilterCategory,
			view: func(e *model.Event) fields {
				return fields{
					Published: e.Published,
					Featured:  e.Featured,
					Filter:    e.Category,
					Text:      []string{e.Title, e.Description},
				}
			},
			less: func(a, b *model.Event) bool { return olderFirst(a.Date, b.Date, a.ID, b.ID) },
		},
	}
}

// Upcoming 即将开始的活动
func (d *eventDAO) Upcoming(_ context.Context, from time.Time, limit int) ([]*model.Event, error) {
	items, err := d.filter(func(e *model.Event) bool {
		return e.Published && !e.Date.Before(from)
	}, d.less)
	if err != nil {
		return nil, err
	}
	return paginate(items, 0, limit), nil
}

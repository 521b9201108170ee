package memdao

import "nightlife-portal/apps/portal-service/dao"

// Set 一组内存DAO
type Set struct {
	Blogs    dao.BlogDAO
	Events   dao.EventDAO
	Jobs     dao.JobDAO
	Carousel dao.CarouselDAO
	Comments dao.CommentDAO
	Accounts dao.AccountDAO
	Audit    dao.AuditDAO
}

// New 创建全部内存DAO
func New() *Set {
	return &Set{
		Blogs:    NewBlogDAO(),
		Events:   NewEventDAO(),
		Jobs:     NewJobDAO(),
		Carousel: NewCarouselDAO(),
		Comments: NewCommentDAO(),
		Accounts: NewAccountDAO(),
		Audit:    NewAuditDAO(),
	}
}

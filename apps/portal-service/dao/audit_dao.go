package dao

import (
	"context"

	"nightlife-portal/apps/portal-service/model"
	"nightlife-portal/pkg/database"
)

// auditDAO 审计日志DAO（PostgreSQL）
type auditDAO struct {
	db *database.PostgreSQL
}

// NewAuditDAO 创建审计日志DAO实例，并自动迁移表结构
func NewAuditDAO(db *database.PostgreSQL) (AuditDAO, error) {
	if err := db.AutoMigrate(&model.AuditLog{}); err != nil {
		return nil, err
	}
	return &auditDAO{db: db}, nil
}

// Record 写入一条审计日志
func (d *auditDAO) Record(ctx context.Context, entry *model.AuditLog) error {
	return d.db.GetDB().WithContext(ctx).Create(entry).Error
}

// List 按时间倒序分页查询
func (d *auditDAO) List(ctx context.Context, page, pageSize int) ([]*model.AuditLog, int64, error) {
	var total int64
	if err := d.db.GetDB().WithContext(ctx).Model(&model.AuditLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	logs := make([]*model.AuditLog, 0)
	err := d.db.GetDB().WithContext(ctx).Order("created_at DESC, id DESC").
		Offset(int(model.SkipFor(page, pageSize))).
		Limit(pageSize).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// noopAuditDAO 未配置PostgreSQL时使用
type noopAuditDAO struct{}

// NewNoopAuditDAO 不记录任何内容的审计DAO
func NewNoopAuditDAO() AuditDAO {
	return noopAuditDAO{}
}

func (noopAuditDAO) Record(context.Context, *model.AuditLog) error { return nil }

func (noopAuditDAO) List(context.Context, int, int) ([]*model.AuditLog, int64, error) {
	return []*model.AuditLog{}, 0, nil
}

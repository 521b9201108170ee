package memdao

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nightlife-portal/apps/portal-service/dao"
	"nightlife-portal/apps/portal-service/model"
)

// ErrDuplicateEmail 邮箱已存在，对应MongoDB的唯一索引冲突
var ErrDuplicateEmail = errors.New("duplicate email")

type accountDAO struct {
	*store[model.Account, struct{}]
}

// NewAccountDAO 内存版账号DAO
func NewAccountDAO() dao.AccountDAO {
	return &accountDAO{
		store: newStore[model.Account, struct{}](func(a *model.Account) primitive.ObjectID { return a.ID }),
	}
}

// Create 创建账号，邮箱唯一
func (d *accountDAO) Create(ctx context.Context, account *model.Account) error {
	account.Email = strings.ToLower(account.Email)
	if _, err := d.GetByEmail(ctx, account.Email); err == nil {
		return ErrDuplicateEmail
	}
	return d.store.Create(ctx, account)
}

// GetByEmail 按邮箱查询
func (d *accountDAO) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	email = strings.ToLower(email)
	items, err := d.filter(func(a *model.Account) bool { return a.Email == email }, nil)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, model.ErrNotFound
	}
	return items[0], nil
}

// CountByRole 统计角色
func (d *accountDAO) CountByRole(_ context.Context, role string) (int64, error) {
	items, err := d.filter(func(a *model.Account) bool { return a.Role == role }, nil)
	if err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}

// auditDAO 内存版审计日志
type auditDAO struct {
	mu     sync.Mutex
	nextID int64
	logs   []*model.AuditLog
}

// NewAuditDAO 内存版审计DAO
func NewAuditDAO() dao.AuditDAO {
	return &auditDAO{}
}

// Record 记录
func (d *auditDAO) Record(_ context.Context, entry *model.AuditLog) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	entry.ID = d.nextID
	stored := *entry
	d.logs = append(d.logs, &stored)
	return nil
}

// List 倒序分页
func (d *auditDAO) List(_ context.Context, page, pageSize int) ([]*model.AuditLog, int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	sorted := make([]*model.AuditLog, 0, len(d.logs))
	for _, l := range d.logs {
		c := *l
		sorted = append(sorted, &c)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID > sorted[j].ID })
	return paginate(sorted, model.SkipFor(page, pageSize), pageSize), int64(len(sorted)), nil
}

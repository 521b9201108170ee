package dao

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"nightlife-portal/apps/portal-service/model"
)

type accountDAO struct {
	coll *mongo.Collection
}

// NewAccountDAO 创建账号DAO实例
func NewAccountDAO(db *mongo.Database) AccountDAO {
	return &accountDAO{coll: db.Collection(model.CollectionAccounts)}
}

// Create 创建账号，邮箱统一小写
func (d *accountDAO) Create(ctx context.Context, account *model.Account) error {
	account.Email = strings.ToLower(account.Email)
	_, err := d.coll.InsertOne(ctx, account)
	return err
}

// GetByID 按ID查询账号
func (d *accountDAO) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Account, error) {
	return d.findOne(ctx, bson.M{"_id": id})
}

// GetByEmail 按邮箱查询账号
func (d *accountDAO) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	return d.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

// CountByRole 统计某角色的账号数
func (d *accountDAO) CountByRole(ctx context.Context, role string) (int64, error) {
	return d.coll.CountDocuments(ctx, bson.M{"role": role})
}

func (d *accountDAO) findOne(ctx context.Context, filter bson.M) (*model.Account, error) {
	var account model.Account
	err := d.coll.FindOne(ctx, filter).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

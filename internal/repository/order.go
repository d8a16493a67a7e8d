package repository

import (
	"context"
	"time"

	"ecostore-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	Save(ctx context.Context, tx *gorm.DB, order *model.Order) error
	FindOpenByTransactionID(ctx context.Context, tx *gorm.DB, userID uint, transactionID string) (*model.Order, error)
	MarkFailed(ctx context.Context, reference string) error
	ListByUser(ctx context.Context, userID uint) ([]*model.Order, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return r.conn(tx).WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) Save(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return r.conn(tx).WithContext(ctx).Omit(clause.Associations).Save(order).Error
}

// FindOpenByTransactionID returns the user's pending or confirmed order that
// already carries transactionID, locking the row for the rest of tx.
func (r *orderRepoImpl) FindOpenByTransactionID(ctx context.Context, tx *gorm.DB, userID uint, transactionID string) (*model.Order, error) {
	var order model.Order
	err := r.conn(tx).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND transaction_id = ?", userID, transactionID).
		Where("state IN ?", []model.OrderState{model.OrderStatePending, model.OrderStateConfirmed}).
		Order("id").
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) MarkFailed(ctx context.Context, reference string) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("reference = ? AND state = ?", reference, model.OrderStatePending).
		Updates(map[string]interface{}{
			"state":              model.OrderStateFailed,
			"transaction_status": model.TransactionStatusFailed,
			"updated_at":         time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *orderRepoImpl) ListByUser(ctx context.Context, userID uint) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

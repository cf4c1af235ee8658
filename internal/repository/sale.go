package repository

import (
	"apostila-pix-store/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(ctx context.Context, sale *model.Sale) error
	FindByID(ctx context.Context, saleID string) (*model.Sale, error)
	SetPaymentID(ctx context.Context, saleID, paymentID string) error
	MarkPaid(ctx context.Context, saleID string) (*model.Sale, bool, error)
	SetWhatsapp(ctx context.Context, saleID, whatsapp string) error
	FindOrphaned(ctx context.Context, createdBefore time.Time) ([]*model.Sale, error)
}

type saleRepoImpl struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepoImpl{
		db: db,
	}
}

func (r *saleRepoImpl) Create(ctx context.Context, sale *model.Sale) error {
	if sale.Status == "" {
		sale.Status = model.SaleStatusPending
	}
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleRepoImpl) FindByID(ctx context.Context, saleID string) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.WithContext(ctx).
		Where("id = ?", saleID).
		First(&sale).Error

	if err != nil {
		return nil, err
	}

	return &sale, nil
}

// SetPaymentID only writes a sale that has no payment id yet.
func (r *saleRepoImpl) SetPaymentID(ctx context.Context, saleID, paymentID string) error {
	result := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("id = ? AND payment_id IS NULL", saleID).
		Updates(map[string]interface{}{
			"payment_id": paymentID,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// MarkPaid moves a sale to paid with a single conditional update and returns the
// updated row. The bool is false when nothing changed, either because the sale
// does not exist or because it was already paid.
func (r *saleRepoImpl) MarkPaid(ctx context.Context, saleID string) (*model.Sale, bool, error) {
	var sale model.Sale
	updated := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Sale{}).
			Where("id = ? AND status <> ?", saleID, model.SaleStatusPaid).
			Updates(map[string]interface{}{
				"status":     model.SaleStatusPaid,
				"updated_at": time.Now(),
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		updated = true

		// Fetch the updated record within the same transaction
		return tx.Where("id = ?", saleID).First(&sale).Error
	})

	if err != nil || !updated {
		return nil, false, err
	}

	return &sale, true, nil
}

// SetWhatsapp does not check that the sale exists; an unknown id updates nothing.
func (r *saleRepoImpl) SetWhatsapp(ctx context.Context, saleID, whatsapp string) error {
	return r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("id = ?", saleID).
		Updates(map[string]interface{}{
			"whatsapp":   whatsapp,
			"updated_at": time.Now(),
		}).Error
}

func (r *saleRepoImpl) FindOrphaned(ctx context.Context, createdBefore time.Time) ([]*model.Sale, error) {
	var sales []*model.Sale
	err := r.db.WithContext(ctx).
		Where("status = ? AND payment_id IS NULL AND created_at < ?", model.SaleStatusPending, createdBefore).
		Order("created_at").
		Find(&sales).Error

	if err != nil {
		return nil, err
	}

	return sales, nil
}

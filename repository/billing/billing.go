// repository/billing/billing.go
package billing

import (
	"campus/model"

	"gorm.io/gorm"
)

type BillingRepository struct {
	db *gorm.DB
}

func NewBillingRepository(db *gorm.DB) *BillingRepository {
	return &BillingRepository{
		db: db,
	}
}

// ListArticles 获取商品目录
func (r *BillingRepository) ListArticles() ([]model.Article, error) {
	return model.ListArticles(r.db)
}

// ListInvoices 获取发票列表
func (r *BillingRepository) ListInvoices() ([]model.Invoice, error) {
	return model.ListInvoices(r.db)
}

// service/billing/billing.go
package billing

import (
	"campus/model"
	"campus/repository/billing"

	"gorm.io/gorm"
)

type BillingService struct {
	repo *billing.BillingRepository
}

func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{
		repo: billing.NewBillingRepository(db),
	}
}

// ListArticles 获取商品目录
func (s *BillingService) ListArticles() ([]model.Article, error) {
	return s.repo.ListArticles()
}

// ListInvoices 获取发票列表
func (s *BillingService) ListInvoices() ([]model.Invoice, error) {
	return s.repo.ListInvoices()
}

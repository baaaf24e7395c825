// model/billing.go
package model

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Article 商品模型（会费/网络连接套餐）
type Article struct {
	ID                     uint    `gorm:"primarykey" json:"id"`
	Name                   string  `gorm:"type:varchar(255);not null" json:"name"`    // 商品名称
	Price                  float64 `gorm:"type:decimal(10,2);not null" json:"price"`  // 单价
	DurationConnection     int     `gorm:"default:0" json:"duration_connection"`      // 网络连接时长（月）
	DurationDaysConnection int     `gorm:"default:0" json:"duration_days_connection"` // 网络连接时长（天）
	DurationMembership     int     `gorm:"default:0" json:"duration_membership"`      // 会员时长（月）
	DurationDaysMembership int     `gorm:"default:0" json:"duration_days_membership"` // 会员时长（天）
}

// TableName 指定表名
func (Article) TableName() string {
	return "articles"
}

// Payment 支付方式模型
type Payment struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	Method string `gorm:"type:varchar(255);unique;not null" json:"method"` // 支付方式名称
}

// TableName 指定表名
func (Payment) TableName() string {
	return "payments"
}

// Invoice 发票模型
type Invoice struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	MemberID   uint       `gorm:"not null" json:"member_id"` // 所属成员ID
	Member     Member     `json:"-"`
	PaymentID  uint       `gorm:"not null" json:"payment_id"` // 支付方式ID
	Payment    Payment    `json:"payment"`
	Valid      bool       `gorm:"default:false" json:"valid"`   // 是否生效
	Control    bool       `gorm:"default:false" json:"control"` // 是否已核对
	Purchases  []Purchase `json:"purchases"`
	CreateTime *time.Time `gorm:"type:timestamp;default:null" json:"create_time"` // 创建时间
}

// TableName 指定表名
func (Invoice) TableName() string {
	return "invoices"
}

// Purchase 发票明细行，记录下单时刻的商品快照
type Purchase struct {
	ID                     uint    `gorm:"primarykey" json:"id"`
	InvoiceID              uint    `gorm:"not null" json:"invoice_id"`               // 所属发票ID
	Name                   string  `gorm:"type:varchar(255);not null" json:"name"`   // 商品名称快照
	Price                  float64 `gorm:"type:decimal(10,2);not null" json:"price"` // 单价快照
	Quantity               int     `gorm:"not null" json:"quantity"`                 // 数量
	DurationConnection     int     `gorm:"default:0" json:"duration_connection"`
	DurationDaysConnection int     `gorm:"default:0" json:"duration_days_connection"`
	DurationMembership     int     `gorm:"default:0" json:"duration_membership"`
	DurationDaysMembership int     `gorm:"default:0" json:"duration_days_membership"`
}

// TableName 指定表名
func (Purchase) TableName() string {
	return "purchases"
}

// ArticleOrder 导入时附加到每个成员的 (商品ID, 数量) 对
type ArticleOrder struct {
	ArticleID uint `json:"article_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// InvoiceTotal 计算发票明细的总金额
func InvoiceTotal(purchases []Purchase) float64 {
	var total float64
	for _, p := range purchases {
		total += p.Price * float64(p.Quantity)
	}
	return total
}

// GetPayment 根据ID获取支付方式
func GetPayment(db *gorm.DB, id uint) (*Payment, error) {
	var payment Payment
	if err := db.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("支付方式不存在: id=%d", id)
		}
		return nil, err
	}
	return &payment, nil
}

// CreateInvoiceWithArticles 为成员创建发票并按商品清单生成明细行
// 明细记录商品快照，创建完成后将发票标记为生效并已核对
func CreateInvoiceWithArticles(db *gorm.DB, memberID uint, paymentID uint, orders []ArticleOrder) (*Invoice, error) {
	now := time.Now()
	invoice := Invoice{
		MemberID:   memberID,
		PaymentID:  paymentID,
		CreateTime: &now,
	}
	if err := db.Create(&invoice).Error; err != nil {
		return nil, err
	}

	for _, order := range orders {
		var article Article
		if err := db.First(&article, order.ArticleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("商品不存在: id=%d", order.ArticleID)
			}
			return nil, err
		}

		purchase := Purchase{
			InvoiceID:              invoice.ID,
			Name:                   article.Name,
			Price:                  article.Price,
			Quantity:               order.Quantity,
			DurationConnection:     article.DurationConnection,
			DurationDaysConnection: article.DurationDaysConnection,
			DurationMembership:     article.DurationMembership,
			DurationDaysMembership: article.DurationDaysMembership,
		}
		if err := db.Create(&purchase).Error; err != nil {
			return nil, err
		}
		invoice.Purchases = append(invoice.Purchases, purchase)
	}

	// 标记发票生效并已核对
	if err := db.Model(&invoice).Updates(map[string]interface{}{
		"valid":   true,
		"control": true,
	}).Error; err != nil {
		return nil, err
	}
	invoice.Valid = true
	invoice.Control = true

	return &invoice, nil
}

// ListArticles 获取商品目录
func ListArticles(db *gorm.DB) ([]Article, error) {
	var articles []Article
	if err := db.Order("id").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// ListInvoices 获取发票列表（含明细）
func ListInvoices(db *gorm.DB) ([]Invoice, error) {
	var invoices []Invoice
	result := db.Preload("Purchases").Preload("Payment").
		Order("create_time DESC").Find(&invoices)
	if result.Error != nil {
		return nil, result.Error
	}
	return invoices, nil
}

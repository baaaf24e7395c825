package batchimport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"campus/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 打开内存数据库并迁移全部相关表
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}

	// 内存库只能用单连接，否则连接池里是不同的库
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取数据库实例失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.School{},
		&model.Building{},
		&model.Room{},
		&model.Member{},
		&model.Article{},
		&model.Payment{},
		&model.Invoice{},
		&model.Purchase{},
	); err != nil {
		t.Fatalf("迁移表结构失败: %v", err)
	}

	return db
}

// testFixtures 基础数据：学校、支付方式、A栋两个房间、一个商品
type testFixtures struct {
	school  model.School
	payment model.Payment
	room1   model.Room
	room2   model.Room
	article model.Article
}

func seedTestData(t *testing.T, db *gorm.DB) testFixtures {
	t.Helper()

	f := testFixtures{
		school:  model.School{Name: "GTL"},
		payment: model.Payment{Method: "cash"},
	}
	if err := db.Create(&f.school).Error; err != nil {
		t.Fatalf("创建学校失败: %v", err)
	}
	if err := db.Create(&f.payment).Error; err != nil {
		t.Fatalf("创建支付方式失败: %v", err)
	}

	building := model.Building{Name: "A"}
	if err := db.Create(&building).Error; err != nil {
		t.Fatalf("创建楼栋失败: %v", err)
	}
	f.room1 = model.Room{BuildingID: building.ID, Name: "A101-1"}
	f.room2 = model.Room{BuildingID: building.ID, Name: "A101-2"}
	if err := db.Create(&f.room1).Error; err != nil {
		t.Fatalf("创建房间失败: %v", err)
	}
	if err := db.Create(&f.room2).Error; err != nil {
		t.Fatalf("创建房间失败: %v", err)
	}

	f.article = model.Article{
		Name:               "年度会员",
		Price:              50.00,
		DurationMembership: 12,
	}
	if err := db.Create(&f.article).Error; err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	return f
}

func countMembers(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&model.Member{}).Count(&count).Error; err != nil {
		t.Fatalf("统计成员数失败: %v", err)
	}
	return count
}

func TestImportMembers(t *testing.T) {
	db := newTestDB(t)
	f := seedTestData(t, db)

	// 房间A101-1已有占用者，且其用户名会与导入批次冲突
	occupant := model.Member{
		FirstName: "Jean",
		LastName:  "Dupont",
		Username:  "jean-dupont",
		Email:     "old@example.com",
		SchoolID:  f.school.ID,
		RoomID:    &f.room1.ID,
		State:     model.MemberStateActive,
	}
	if err := db.Create(&occupant).Error; err != nil {
		t.Fatalf("创建占用成员失败: %v", err)
	}

	rows := []model.CSVMember{
		{LastName: "Dupont", FirstName: "Jean", Email: "jean.dupont@example.com",
			RoomString: "A101-1", Username: "jean-dupont"},
		// 点写法的房间字符串应当归一化后命中A101-2
		{LastName: "Martin", FirstName: "Alice", Email: "alice@example.com",
			RoomString: "A101.2", Username: "alice"},
	}

	repo := NewImportRepository(db)
	result, err := repo.ImportMembers(rows, model.ImportOptions{
		SchoolID:  f.school.ID,
		PaymentID: f.payment.ID,
		Comment:   "GTL-SUMMER",
		Articles:  []model.ArticleOrder{{ArticleID: f.article.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("ImportMembers: %v", err)
	}

	if result.Summary.MemberCount != 2 {
		t.Errorf("MemberCount = %d, want 2", result.Summary.MemberCount)
	}
	if result.Summary.RenamedCount != 1 {
		t.Errorf("RenamedCount = %d, want 1", result.Summary.RenamedCount)
	}
	if result.Summary.VacatedCount != 1 {
		t.Errorf("VacatedCount = %d, want 1", result.Summary.VacatedCount)
	}
	if result.Summary.InvoiceCount != 2 {
		t.Errorf("InvoiceCount = %d, want 2", result.Summary.InvoiceCount)
	}

	// 冲突的用户名应当带上数字后缀
	renamed, err := model.GetMemberByUsername(db, "jean-dupont1")
	if err != nil {
		t.Fatalf("改名后的成员不存在: %v", err)
	}
	if renamed.State != model.MemberStateActive || renamed.EmailState != model.EmailStateVerified {
		t.Errorf("成员状态错误: state=%d, email_state=%d", renamed.State, renamed.EmailState)
	}
	if renamed.Comment != "GTL-SUMMER" {
		t.Errorf("批次备注 = %q, want GTL-SUMMER", renamed.Comment)
	}
	// 默认路径在事务内生成重置令牌
	if renamed.ResetToken == nil || *renamed.ResetToken == "" {
		t.Error("未生成密码重置令牌")
	}

	// 原占用者应当被迁出房间
	var vacated model.Member
	if err := db.First(&vacated, occupant.ID).Error; err != nil {
		t.Fatalf("查询被迁出成员失败: %v", err)
	}
	if vacated.RoomID != nil {
		t.Error("原占用者未被迁出房间")
	}

	// 每个成员一张生效且已核对的发票，每张发票一条明细
	var invoices []model.Invoice
	if err := db.Preload("Purchases").Find(&invoices).Error; err != nil {
		t.Fatalf("查询发票失败: %v", err)
	}
	if len(invoices) != 2 {
		t.Fatalf("发票数 = %d, want 2", len(invoices))
	}
	for _, invoice := range invoices {
		if !invoice.Valid || !invoice.Control {
			t.Errorf("发票#%d 未标记生效核对", invoice.ID)
		}
		if len(invoice.Purchases) != 1 {
			t.Fatalf("发票#%d 明细数 = %d, want 1", invoice.ID, len(invoice.Purchases))
		}
		if got := model.InvoiceTotal(invoice.Purchases); got != 100.00 {
			t.Errorf("发票#%d 金额 = %.2f, want 100.00", invoice.ID, got)
		}
	}
}

func TestImportMembersRollbackOnMissingRoom(t *testing.T) {
	db := newTestDB(t)
	f := seedTestData(t, db)

	// 第一行房间有效，第二行楼栋不存在：整批必须回滚
	rows := []model.CSVMember{
		{LastName: "Dupont", FirstName: "Jean", Email: "jean@example.com",
			RoomString: "A101-1", Username: "jean"},
		{LastName: "Martin", FirstName: "Alice", Email: "alice@example.com",
			RoomString: "Z999", Username: "alice"},
	}

	repo := NewImportRepository(db)
	_, err := repo.ImportMembers(rows, model.ImportOptions{
		SchoolID: f.school.ID,
		Comment:  "GTL-SUMMER",
	})
	if err == nil {
		t.Fatal("房间解析失败应当返回错误")
	}

	if count := countMembers(t, db); count != 0 {
		t.Errorf("回滚后成员数 = %d, want 0", count)
	}
}

func TestImportMembersRollbackOnResetFailure(t *testing.T) {
	db := newTestDB(t)
	f := seedTestData(t, db)

	// 外部重置接口返回500：成员已创建但整批必须回滚
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	rows := []model.CSVMember{
		{LastName: "Dupont", FirstName: "Jean", Email: "jean@example.com",
			RoomString: "A101-1", Username: "jean"},
	}

	repo := NewImportRepository(db)
	_, err := repo.ImportMembers(rows, model.ImportOptions{
		SchoolID: f.school.ID,
		Comment:  "GTL-SUMMER",
		ResetURL: server.URL,
	})
	if err == nil {
		t.Fatal("密码重置失败应当返回错误")
	}

	if count := countMembers(t, db); count != 0 {
		t.Errorf("回滚后成员数 = %d, want 0", count)
	}
}

func TestImportMembersRollbackOnMissingArticle(t *testing.T) {
	db := newTestDB(t)
	f := seedTestData(t, db)

	rows := []model.CSVMember{
		{LastName: "Dupont", FirstName: "Jean", Email: "jean@example.com",
			RoomString: "A101-1", Username: "jean"},
	}

	repo := NewImportRepository(db)
	_, err := repo.ImportMembers(rows, model.ImportOptions{
		SchoolID:  f.school.ID,
		PaymentID: f.payment.ID,
		Comment:   "GTL-SUMMER",
		Articles:  []model.ArticleOrder{{ArticleID: 9999, Quantity: 1}},
	})
	if err == nil {
		t.Fatal("商品不存在应当返回错误")
	}

	if count := countMembers(t, db); count != 0 {
		t.Errorf("回滚后成员数 = %d, want 0", count)
	}
	var invoiceCount int64
	db.Model(&model.Invoice{}).Count(&invoiceCount)
	if invoiceCount != 0 {
		t.Errorf("回滚后发票数 = %d, want 0", invoiceCount)
	}
}

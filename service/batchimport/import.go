// service/batchimport/import.go
package batchimport

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"campus/model"
	"campus/pkg/resetclient"
	"campus/pkg/tg"
	"campus/repository/batchimport"

	"gorm.io/gorm"
)

type ImportService struct {
	repo *batchimport.ImportRepository
}

func NewImportService(db *gorm.DB) *ImportService {
	return &ImportService{
		repo: batchimport.NewImportRepository(db),
	}
}

// ImportContent 解析CSV内容并执行整批导入
func (s *ImportService) ImportContent(content string, opts model.ImportOptions) (*model.ImportResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("CSV内容为空")
	}
	if opts.SchoolID == 0 {
		return nil, errors.New("未指定学校ID")
	}
	if len(opts.Articles) > 0 && opts.PaymentID == 0 {
		return nil, errors.New("指定了商品清单但未指定支付方式")
	}
	if opts.ResetURL == "" {
		opts.ResetURL = resetclient.Endpoint()
	}

	members, err := model.ParseMemberCSV(strings.NewReader(content))
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, errors.New("CSV中没有有效数据行")
	}
	fmt.Printf("解析结果: 成员数=%d\n", len(members))

	result, err := s.repo.ImportMembers(members, opts)

	// 导入结果通知管理员（未配置TG时为空操作）
	tg.NotifyImport(opts.Comment, result, err)

	return result, err
}

// ImportFile 从文件路径读取CSV并执行整批导入
func (s *ImportService) ImportFile(path string, opts model.ImportOptions) (*model.ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取CSV文件失败: %v", err)
	}
	return s.ImportContent(string(data), opts)
}

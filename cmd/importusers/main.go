// cmd/importusers/main.go
// 一次性批量导入脚本：从CSV文件导入成员及其初始会费发票
//
// CSV每行格式：姓氏,名字,邮箱,房间字符串
// 房间字符串格式为"楼栋+房间号"，例如 A101-2
// 用户名由邮箱本地部分生成
//
// 参数全部为硬编码常量，按需修改后重新编译运行
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"campus/model"
	"campus/repository"
	"campus/service/batchimport"
)

// 导入参数
const (
	// csvPath CSV文件路径（相对或绝对）
	csvPath = "/var/lib/campus/list-users.csv"

	// schoolID 所有成员归属的学校ID
	schoolID = 1

	// paymentMethodID 商品清单的支付方式ID
	paymentMethodID = 1

	// batchComment 写入每个成员的批次备注
	batchComment = "GTL-SUMMER"
)

// articles 附加到每个成员的 (商品ID, 数量) 清单，置空则不开发票
var articles = []model.ArticleOrder{
	{ArticleID: 1, Quantity: 4},
}

func main() {
	// 加载环境变量
	if os.Getenv("MYSQL_HOST") == "" {
		currentDir, _ := os.Getwd()
		envPath := filepath.Join(filepath.Dir(currentDir), ".env")
		_ = godotenv.Load(envPath)
	}

	// 初始化数据库连接
	if err := repository.InitDB(); err != nil {
		fmt.Printf("数据库初始化失败: %v\n", err)
		os.Exit(1)
	}

	importService := batchimport.NewImportService(repository.GetDB())
	result, err := importService.ImportFile(csvPath, model.ImportOptions{
		SchoolID:  schoolID,
		PaymentID: paymentMethodID,
		Comment:   batchComment,
		Articles:  articles,
	})
	if err != nil {
		// 任何一步出错整批已回滚
		fmt.Printf("导入失败，未写入任何数据: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("导入完成: 成员%d个，改名%d个，迁出%d个，发票%d张\n",
		result.Summary.MemberCount,
		result.Summary.RenamedCount,
		result.Summary.VacatedCount,
		result.Summary.InvoiceCount)
}

// repository/batchimport/import.go
package batchimport

import (
	"fmt"
	"time"

	"campus/model"
	"campus/pkg/progress"
	"campus/pkg/resetclient"

	"gorm.io/gorm"
)

type ImportRepository struct {
	db *gorm.DB
}

func NewImportRepository(db *gorm.DB) *ImportRepository {
	return &ImportRepository{
		db: db,
	}
}

// ImportMembers 在单个事务内执行整批导入
// 任何一步出错都会让整批回滚，不存在部分提交
func (r *ImportRepository) ImportMembers(members []model.CSVMember, opts model.ImportOptions) (*model.ImportResult, error) {
	var result model.ImportResult

	err := r.db.Transaction(func(tx *gorm.DB) error {
		// 预先解析学校和支付方式，失败即终止
		school, err := model.GetSchool(tx, opts.SchoolID)
		if err != nil {
			return err
		}

		var payment *model.Payment
		if len(opts.Articles) > 0 {
			payment, err = model.GetPayment(tx, opts.PaymentID)
			if err != nil {
				return err
			}
		}

		fmt.Printf("检测到%d个待导入成员\n", len(members))
		progress.Publish(progress.ImportStarted, opts.Comment, len(members))

		// 第一步：任何写入前确定整批的唯一用户名
		fmt.Println("检查用户名冲突")
		renamed, err := model.AssignUsernames(members, func(username string) (bool, error) {
			return model.UsernameTaken(tx, username)
		})
		if err != nil {
			return err
		}
		for _, entry := range renamed {
			fmt.Printf("用户名已被占用，改名: %s\n", entry)
		}
		result.Summary.RenamedCount = len(renamed)
		result.Details.RenamedList = renamed
		fmt.Println("用户名检查完成")
		progress.Publish(progress.UsernamesChecked, "", len(renamed))

		// 第二步：逐个创建成员，占用房间时先强制迁出原占用者
		fmt.Println("创建成员账号")
		now := time.Now()
		for i := range members {
			row := &members[i]
			fmt.Println(row.Username)

			room, err := model.ResolveRoom(tx, row.RoomString)
			if err != nil {
				return fmt.Errorf("成员%s: %v", row.Username, err)
			}

			vacated, err := model.VacateRoom(tx, room.ID)
			if err != nil {
				return err
			}
			if vacated != "" {
				result.Summary.VacatedCount++
				result.Details.VacatedList = append(result.Details.VacatedList, vacated)
			}

			member := model.Member{
				FirstName:  row.FirstName,
				LastName:   row.LastName,
				Username:   row.Username,
				Email:      row.Email,
				SchoolID:   school.ID,
				RoomID:     &room.ID,
				Comment:    opts.Comment,
				State:      model.MemberStateActive,
				EmailState: model.EmailStateVerified,
				CreateTime: &now,
			}
			if err := tx.Create(&member).Error; err != nil {
				return fmt.Errorf("创建成员%s失败: %v", row.Username, err)
			}
			result.Summary.MemberCount++
		}
		fmt.Println("成员账号创建完成")
		progress.Publish(progress.MembersCreated, "", result.Summary.MemberCount)

		// 第三步：逐个触发密码重置，失败同样回滚整批
		// 配置了外部重置接口时走HTTP，否则在事务内直接生成重置令牌
		fmt.Println("触发密码重置")
		for i := range members {
			if opts.ResetURL != "" {
				err = resetclient.PostReset(opts.ResetURL, members[i].Username, members[i].Email)
			} else {
				_, err = model.IssueResetToken(tx, members[i].Username, members[i].Email)
			}
			if err != nil {
				return err
			}
		}
		fmt.Println("密码重置完成")
		progress.Publish(progress.ResetsSent, "", len(members))

		// 第四步：按商品清单为每个成员开发票
		if len(opts.Articles) > 0 {
			fmt.Println("创建会费发票")
			for i := range members {
				member, err := model.GetMemberByUsername(tx, members[i].Username)
				if err != nil {
					return err
				}

				invoice, err := model.CreateInvoiceWithArticles(tx, member.ID, payment.ID, opts.Articles)
				if err != nil {
					return fmt.Errorf("成员%s开发票失败: %v", member.Username, err)
				}
				fmt.Printf("发票#%d 金额: %.2f\n", invoice.ID, model.InvoiceTotal(invoice.Purchases))
				result.Summary.InvoiceCount++
			}
			fmt.Println("会费发票创建完成")
			progress.Publish(progress.InvoicesCreated, "", result.Summary.InvoiceCount)
		}

		return nil
	})

	if err != nil {
		progress.Publish(progress.ImportFailed, err.Error(), 0)
		return nil, err
	}

	fmt.Println("全部导入完成")
	progress.Publish(progress.ImportFinished, opts.Comment, result.Summary.MemberCount)
	return &result, nil
}

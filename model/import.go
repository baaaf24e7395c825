// model/import.go
package model

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVMember 从CSV解析出的待导入成员
// 每行格式：姓氏,名字,邮箱,房间字符串
type CSVMember struct {
	LastName   string
	FirstName  string
	Email      string
	RoomString string
	Username   string // 从邮箱本地部分生成，冲突时带数字后缀
}

// String 成员的字符串表示
func (c *CSVMember) String() string {
	return fmt.Sprintf("%s (%s %s) - %s (%s)",
		c.Username, c.FirstName, c.LastName, c.Email, c.RoomString)
}

// UsernameFromEmail 从邮箱生成用户名
// 取邮箱本地部分，点替换为横线
func UsernameFromEmail(email string) string {
	localPart := strings.Split(email, "@")[0]
	return strings.ReplaceAll(localPart, ".", "-")
}

// ParseMemberCSV 解析CSV内容为待导入成员列表
// 空行跳过，列数不足4的行视为硬错误，整批终止
func ParseMemberCSV(r io.Reader) ([]CSVMember, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // 列数自行校验
	reader.TrimLeadingSpace = true

	var members []CSVMember
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV解析失败: %v", err)
		}
		// 空白行会被csv包直接吞掉，取真实文件行号用于报错
		line, _ := reader.FieldPos(0)

		// 跳过空行
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) < 4 {
			return nil, fmt.Errorf("第%d行列数不足4列: %q", line, strings.Join(record, ","))
		}

		member := CSVMember{
			LastName:   strings.TrimSpace(record[0]),
			FirstName:  strings.TrimSpace(record[1]),
			Email:      strings.TrimSpace(record[2]),
			RoomString: strings.TrimSpace(record[3]),
		}
		if member.Email == "" {
			return nil, fmt.Errorf("第%d行邮箱为空", line)
		}
		member.Username = UsernameFromEmail(member.Email)
		members = append(members, member)
	}

	return members, nil
}

// AssignUsernames 在任何写入前为整批成员确定唯一用户名
// taken 报告用户名是否已被数据库占用；同批次中先到先得，后来者加数字后缀
// 返回被改名的 "原名 -> 新名" 列表
func AssignUsernames(members []CSVMember, taken func(string) (bool, error)) ([]string, error) {
	claimed := make(map[string]bool)
	var renamed []string

	for i := range members {
		base := members[i].Username
		candidate := base
		suffix := 1
		for {
			inUse := claimed[candidate]
			if !inUse {
				dbUse, err := taken(candidate)
				if err != nil {
					return nil, err
				}
				inUse = dbUse
			}
			if !inUse {
				break
			}
			// 在基础名上追加递增数字，直到找到空闲用户名
			candidate = base + strconv.Itoa(suffix)
			suffix++
		}

		if candidate != base {
			renamed = append(renamed, fmt.Sprintf("%s -> %s", base, candidate))
		}
		members[i].Username = candidate
		claimed[candidate] = true
	}

	return renamed, nil
}

// ImportOptions 导入参数
type ImportOptions struct {
	SchoolID  uint           // 所有成员归属的学校ID
	PaymentID uint           // 商品清单的支付方式ID
	Comment   string         // 写入每个成员的批次备注
	Articles  []ArticleOrder // 附加到每个成员的商品清单，为空则不开发票
	ResetURL  string         // 密码重置接口地址
}

// ImportResult 导入结果汇总
type ImportResult struct {
	Summary struct {
		MemberCount  int `json:"member_count"`  // 创建的成员数量
		RenamedCount int `json:"renamed_count"` // 用户名被改名的数量
		VacatedCount int `json:"vacated_count"` // 被强制迁出房间的数量
		InvoiceCount int `json:"invoice_count"` // 创建的发票数量
	} `json:"summary"`
	Details struct {
		RenamedList []string `json:"renamed_list,omitempty"` // 改名记录列表
		VacatedList []string `json:"vacated_list,omitempty"` // 被迁出成员列表
	} `json:"details"`
}

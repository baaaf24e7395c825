// pkg/tg/tg.go
package tg

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"campus/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TgClient Telegram通知客户端
type TgClient struct {
	bot    *tgbotapi.BotAPI
	chatID int64 // 管理员通知会话ID
}

var (
	client  *TgClient
	once    sync.Once
	initErr error
)

// InitTgClient 初始化TG客户端单例
// 需要 TG_BOT_TOKEN 和 TG_CHAT_ID 两个环境变量
func InitTgClient() error {
	once.Do(func() {
		token := os.Getenv("TG_BOT_TOKEN")
		if token == "" {
			initErr = fmt.Errorf("TG_BOT_TOKEN 环境变量未设置")
			return
		}

		chatIDStr := os.Getenv("TG_CHAT_ID")
		chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			initErr = fmt.Errorf("TG_CHAT_ID 格式不正确: %v", err)
			return
		}

		bot, err := tgbotapi.NewBotAPI(token)
		if err != nil {
			initErr = fmt.Errorf("初始化Telegram Bot失败: %v", err)
			return
		}

		client = &TgClient{
			bot:    bot,
			chatID: chatID,
		}
	})
	return initErr
}

// GetClient 获取TG客户端实例
func GetClient() (*TgClient, error) {
	if client == nil {
		return nil, fmt.Errorf("Telegram客户端尚未初始化，请先调用InitTgClient()")
	}
	return client, nil
}

// send 发送Markdown消息到管理员会话
func (c *TgClient) send(text string) error {
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = "Markdown"
	_, err := c.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("发送TG消息失败: %v", err)
	}
	return nil
}

// SendImportSummary 发送批量导入结果通知
func (c *TgClient) SendImportSummary(comment string, result *model.ImportResult) error {
	text := fmt.Sprintf("✅ *批量导入完成*\n"+
		"*批次*: `%s`\n"+
		"*成员数*: %d\n"+
		"*改名数*: %d\n"+
		"*迁出数*: %d\n"+
		"*发票数*: %d",
		comment,
		result.Summary.MemberCount,
		result.Summary.RenamedCount,
		result.Summary.VacatedCount,
		result.Summary.InvoiceCount)
	return c.send(text)
}

// SendImportFailure 发送批量导入失败通知
func (c *TgClient) SendImportFailure(comment string, cause error) error {
	text := fmt.Sprintf("⚠️ *批量导入失败，已整批回滚*\n"+
		"*批次*: `%s`\n"+
		"*原因*: %v",
		comment, cause)
	return c.send(text)
}

// SendResetNotice 发送密码重置通知
func (c *TgClient) SendResetNotice(username string) error {
	text := fmt.Sprintf("🔑 *密码重置*\n*用户名*: `%s`", username)
	return c.send(text)
}

// NotifyImport 通知导入结果，客户端未初始化时静默跳过
// 通知失败不影响导入流程
func NotifyImport(comment string, result *model.ImportResult, importErr error) {
	c, err := GetClient()
	if err != nil {
		return
	}

	if importErr != nil {
		if err := c.SendImportFailure(comment, importErr); err != nil {
			fmt.Printf("TG通知失败: %v\n", err)
		}
		return
	}
	if err := c.SendImportSummary(comment, result); err != nil {
		fmt.Printf("TG通知失败: %v\n", err)
	}
}

// pkg/logger/logger.go
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger 带轮转功能的日志器
type Logger struct {
	logger *log.Logger
	writer *lumberjack.Logger
}

var (
	instance *Logger
	once     sync.Once
)

// 包加载时自动初始化
func init() {
	// 环境变量不存在时尝试加载上级目录的.env文件
	if os.Getenv("LOG_PATH") == "" && os.Getenv("MYSQL_HOST") == "" {
		currentDir, _ := os.Getwd()
		envPath := filepath.Join(filepath.Dir(currentDir), ".env")
		_ = godotenv.Load(envPath)
	}

	logPath := os.Getenv("LOG_PATH")
	if logPath == "" {
		logPath = "logs/campus.log"
	}

	maxSize, _ := strconv.Atoi(os.Getenv("LOG_MAX_SIZE"))
	if maxSize <= 0 {
		maxSize = 10 // 默认10MB
	}

	consoleOutput := os.Getenv("LOG_CONSOLE_OUTPUT") != "false"

	initLogger(logPath, maxSize, consoleOutput)
}

// 初始化日志器
func initLogger(logPath string, maxSize int, consoleOutput bool) {
	once.Do(func() {
		// 确保日志目录存在
		logDir := filepath.Dir(logPath)
		if _, err := os.Stat(logDir); os.IsNotExist(err) {
			if err := os.MkdirAll(logDir, 0755); err != nil {
				log.Fatalf("无法创建日志目录: %v", err)
			}
		}

		// 日志轮转器
		writer := &lumberjack.Logger{
			Filename: logPath,
			MaxSize:  maxSize, // 单位MB
		}

		var output io.Writer = writer
		if consoleOutput {
			output = io.MultiWriter(os.Stdout, writer)
		}

		instance = &Logger{
			logger: log.New(output, "", log.LstdFlags),
			writer: writer,
		}

		// 替换标准日志输出
		log.SetOutput(output)
		log.SetFlags(log.LstdFlags)

		Info("日志系统初始化完成，最大日志大小: %dMB", maxSize)
	})
}

// 格式化带级别的日志消息
func formatLogWithLevel(level, format string, args ...interface{}) string {
	message := fmt.Sprintf(format, args...)
	return fmt.Sprintf("[%s] %s", level, message)
}

// Info 记录普通日志
func (l *Logger) Info(format string, args ...interface{}) {
	l.logger.Println(formatLogWithLevel("INFO", format, args...))
}

// Error 记录错误日志
func (l *Logger) Error(format string, args ...interface{}) {
	l.logger.Println(formatLogWithLevel("ERROR", format, args...))
}

// GetLogger 获取日志实例
func GetLogger() *Logger {
	if instance == nil {
		initLogger("logs/campus.log", 10, true)
	}
	return instance
}

// Info 全局方法 - 记录普通日志
func Info(format string, args ...interface{}) {
	GetLogger().Info(format, args...)
}

// Error 全局方法 - 记录错误日志
func Error(format string, args ...interface{}) {
	GetLogger().Error(format, args...)
}

// Close 关闭日志文件
func Close() error {
	if instance != nil && instance.writer != nil {
		return instance.writer.Close()
	}
	return nil
}

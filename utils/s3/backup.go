// utils/s3/backup.go
package s3

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"

	"campus/pkg/response"
)

// BackupService 数据库备份服务
type BackupService struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
}

// NewBackupService 从环境变量创建备份服务
func NewBackupService() *BackupService {
	return &BackupService{
		DBHost:          os.Getenv("MYSQL_HOST"),
		DBPort:          os.Getenv("MYSQL_PORT"),
		DBUser:          os.Getenv("MYSQL_USERNAME"),
		DBPassword:      os.Getenv("MYSQL_PASSWORD"),
		DBName:          os.Getenv("MYSQL_DATABASE"),
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		Region:          os.Getenv("AWS_DEFAULT_REGION"),
		BucketName:      os.Getenv("BUCKET_NAME"),
	}
}

// BackupDatabase 用mysqldump导出数据库并上传到S3，返回S3对象键
func (s *BackupService) BackupDatabase() (string, error) {
	// 1. 导出到临时文件
	timestamp := time.Now().Format("20060102_150405")
	fileName := fmt.Sprintf("%s_%s.sql", s.DBName, timestamp)
	filePath := filepath.Join(os.TempDir(), fileName)

	cmd := exec.Command("mysqldump",
		"--host="+s.DBHost,
		"--port="+s.DBPort,
		"--user="+s.DBUser,
		"--password="+s.DBPassword,
		"--databases", s.DBName,
		"--single-transaction",
		"--quick",
		"--lock-tables=false")

	outfile, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("创建备份文件失败: %v", err)
	}
	defer outfile.Close()
	defer os.Remove(filePath)

	var stderr bytes.Buffer
	cmd.Stdout = outfile
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("mysqldump执行失败: %v, 错误信息: %s", err, stderr.String())
	}

	// 备份文件不能为空
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return "", fmt.Errorf("获取备份文件信息失败: %v", err)
	}
	if fileInfo.Size() == 0 {
		return "", fmt.Errorf("备份文件为空")
	}

	// 2. 上传到S3
	key := fmt.Sprintf("backups/%s", fileName)
	if err := s.uploadToS3(filePath, key); err != nil {
		return "", err
	}

	log.Printf("数据库备份完成: %s (%d字节)", key, fileInfo.Size())
	return key, nil
}

// uploadToS3 上传文件到S3
func (s *BackupService) uploadToS3(filePath, key string) error {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(s.Region),
		Credentials: credentials.NewStaticCredentials(s.AccessKeyID, s.SecretAccessKey, ""),
	})
	if err != nil {
		return fmt.Errorf("创建AWS会话失败: %v", err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("打开备份文件失败: %v", err)
	}
	defer file.Close()

	_, err = s3.New(sess).PutObject(&s3.PutObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		return fmt.Errorf("上传S3失败: %v", err)
	}
	return nil
}

// InitBackup 注册备份路由，并按需启动每日自动备份
func InitBackup(r *gin.Engine) {
	r.POST("/backup/run", func(c *gin.Context) {
		service := NewBackupService()
		if service.BucketName == "" {
			response.Error(c, http.StatusServiceUnavailable, "未配置备份存储桶")
			return
		}

		key, err := service.BackupDatabase()
		if err != nil {
			response.Error(c, http.StatusInternalServerError, err.Error())
			return
		}
		response.Success(c, http.StatusOK, gin.H{"key": key})
	})

	// BACKUP_AUTO=true 时每24小时自动备份一次
	if os.Getenv("BACKUP_AUTO") == "true" {
		go func() {
			ticker := time.NewTicker(24 * time.Hour)
			defer ticker.Stop()

			for range ticker.C {
				service := NewBackupService()
				if _, err := service.BackupDatabase(); err != nil {
					log.Printf("自动备份失败: %v", err)
				}
			}
		}()
		log.Printf("自动备份已启用")
	}
}

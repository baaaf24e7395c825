// main.go
package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"campus/middleware"
	_ "campus/pkg/logger" // 导入日志模块，自动初始化
	"campus/pkg/progress"
	"campus/pkg/tg"
	"campus/repository"
	"campus/routes"
	"campus/utils/s3"
)

func init() {
	// 先检查系统环境变量，不存在时才加载.env文件
	if os.Getenv("MYSQL_HOST") == "" {
		currentDir, _ := os.Getwd()
		envPath := filepath.Join(filepath.Dir(currentDir), ".env")
		_ = godotenv.Load(envPath)
	}
}

// setupRouter 配置路由
func setupRouter() *gin.Engine {
	// 禁用 Gin 的日志颜色
	gin.DisableConsoleColor()

	// 设置 gin 运行模式
	gin.SetMode(gin.ReleaseMode)

	r := gin.Default()

	// 使用全局中间件
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.CORSMiddleware())

	// 健康检查路由
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "服务运行正常",
		})
	})

	// 导入进度推送路由
	r.GET("/ws", progress.HandleWebSocket)

	// 注册路由组
	routes.RegisterAuthRoutes(r) // 注册认证和密码重置路由
	routes.RegisterDashRoutes(r) // 注册后台路由

	// 初始化备份功能
	s3.InitBackup(r)
	return r
}

func main() {
	// 初始化数据库连接
	if err := repository.InitDB(); err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}

	// 初始化进度推送服务
	progress.InitHub()

	// 初始化TG客户端
	if err := tg.InitTgClient(); err != nil {
		log.Printf("TG客户端初始化失败: %v", err)
		// 继续运行，不影响主程序
	} else {
		log.Printf("TG客户端初始化成功")
	}

	// 获取路由
	r := setupRouter()

	// 启动服务器
	serverAddr := "0.0.0.0:8080"
	log.Printf("服务器启动于 %s", serverAddr)

	if err := r.Run(serverAddr); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}

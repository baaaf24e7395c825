// utils/db/migrate.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"campus/model"
)

// 数据库配置
type DBConfig struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
}

// 列信息
type Column struct {
	Name     string `gorm:"column:COLUMN_NAME"`
	DataType string `gorm:"column:COLUMN_TYPE"`
	IsNull   string `gorm:"column:IS_NULLABLE"`
}

// 管理员操作员配置
type AdminConfig struct {
	Email    string
	Password string
}

// 加载环境变量
func loadConfig() (*DBConfig, *AdminConfig, error) {
	currentDir, _ := os.Getwd()
	envPath := filepath.Join(filepath.Dir(currentDir), ".env")

	// 尝试加载.env文件，如果不存在则使用环境变量
	_ = godotenv.Load(envPath)

	dbConfig := &DBConfig{
		Host:     getEnvWithDefault("MYSQL_HOST", "localhost"),
		Port:     getEnvWithDefault("MYSQL_PORT", "3306"),
		Database: getEnvWithDefault("MYSQL_DATABASE", "campus"),
		Username: getEnvWithDefault("MYSQL_USERNAME", "root"),
		Password: getEnvWithDefault("MYSQL_PASSWORD", ""),
	}

	adminConfig := &AdminConfig{
		Email:    getEnvWithDefault("ADMIN_EMAIL", "admin@campus.local"),
		Password: getEnvWithDefault("ADMIN_PASSWORD", "Aa112233"),
	}

	return dbConfig, adminConfig, nil
}

// 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// 获取整数环境变量，不存在或非法时返回默认值
func getEnvIntWithDefault(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

// 连接数据库
func connectDB(config *DBConfig, dbName string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.Username, config.Password, config.Host, config.Port, dbName)
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

// 创建管理员操作员
func createAdminUser(db *gorm.DB, adminConfig *AdminConfig) error {
	var count int64
	db.Model(&model.User{}).Where("email = ? OR is_admin = 1", adminConfig.Email).Count(&count)

	if count > 0 {
		fmt.Println("管理员用户已存在，跳过创建")
		return nil
	}

	admin := model.User{
		Email:    adminConfig.Email,
		Password: adminConfig.Password, // BeforeCreate钩子会自动处理密码加密
		IsAdmin:  1,
	}

	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("创建管理员用户失败: %v", err)
	}

	fmt.Printf("管理员用户 '%s' 创建成功\n", adminConfig.Email)
	return nil
}

// 初始化基础数据：学校、支付方式、楼栋、商品目录
func seedBaseData(db *gorm.DB) error {
	// 默认学校
	schoolName := getEnvWithDefault("SCHOOL_NAME", "GTL")
	var school model.School
	if err := db.FirstOrCreate(&school, model.School{Name: schoolName}).Error; err != nil {
		return fmt.Errorf("初始化学校失败: %v", err)
	}

	// 支付方式
	for _, method := range []string{"cash", "card", "transfer"} {
		var payment model.Payment
		if err := db.FirstOrCreate(&payment, model.Payment{Method: method}).Error; err != nil {
			return fmt.Errorf("初始化支付方式失败: %v", err)
		}
	}

	// 楼栋A-F及各楼栋的房间
	floors := getEnvIntWithDefault("ROOM_FLOORS", 4)
	roomsPerFloor := getEnvIntWithDefault("ROOMS_PER_FLOOR", 10)
	subRooms := getEnvIntWithDefault("ROOM_SUBROOMS", 2)

	for letter := 'A'; letter <= 'F'; letter++ {
		var building model.Building
		if err := db.FirstOrCreate(&building, model.Building{Name: string(letter)}).Error; err != nil {
			return fmt.Errorf("初始化楼栋失败: %v", err)
		}

		// 已有房间的楼栋跳过，避免重复生成
		var roomCount int64
		db.Model(&model.Room{}).Where("building_id = ?", building.ID).Count(&roomCount)
		if roomCount > 0 {
			continue
		}

		// 房间名格式：楼栋+楼层+两位房号+分间编号，例如 A101-2
		var rooms []model.Room
		for floor := 1; floor <= floors; floor++ {
			for number := 1; number <= roomsPerFloor; number++ {
				for sub := 1; sub <= subRooms; sub++ {
					rooms = append(rooms, model.Room{
						BuildingID: building.ID,
						Name:       fmt.Sprintf("%s%d%02d-%d", building.Name, floor, number, sub),
					})
				}
			}
		}
		if err := db.Create(&rooms).Error; err != nil {
			return fmt.Errorf("初始化楼栋%s房间失败: %v", building.Name, err)
		}
		fmt.Printf("楼栋%s: 创建%d个房间\n", building.Name, len(rooms))
	}

	// 默认商品
	var count int64
	db.Model(&model.Article{}).Count(&count)
	if count == 0 {
		article := model.Article{
			Name:               "年度会员+网络连接",
			Price:              50.00,
			DurationConnection: 12,
			DurationMembership: 12,
		}
		if err := db.Create(&article).Error; err != nil {
			return fmt.Errorf("初始化商品目录失败: %v", err)
		}
	}

	fmt.Println("基础数据初始化完成")
	return nil
}

func main() {
	// 解析命令行参数
	createAdmin := flag.Bool("create-admin", true, "创建管理员用户")
	seed := flag.Bool("seed", true, "初始化基础数据")
	flag.Parse()

	// 1. 加载配置
	dbConfig, adminConfig, err := loadConfig()
	if err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 先连接MySQL并创建数据库
	db, err := connectDB(dbConfig, "")
	if err != nil {
		fmt.Printf("连接MySQL失败: %v\n", err)
		os.Exit(1)
	}

	createDB := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", dbConfig.Database)
	if err := db.Exec(createDB).Error; err != nil {
		fmt.Printf("创建数据库失败: %v\n", err)
		os.Exit(1)
	}

	// 3. 连接到目标数据库
	db, err = connectDB(dbConfig, dbConfig.Database)
	if err != nil {
		fmt.Printf("连接数据库失败: %v\n", err)
		os.Exit(1)
	}

	// 4. 同步表结构
	models := []interface{}{
		&model.User{},
		&model.School{},
		&model.Building{},
		&model.Room{},
		&model.Member{},
		&model.Article{},
		&model.Payment{},
		&model.Invoice{},
		&model.Purchase{},
	}
	fmt.Printf("开始迁移数据表...\n")

	for _, m := range models {
		// 获取表名
		stmt := &gorm.Statement{DB: db}
		stmt.Parse(m)
		tableName := stmt.Schema.Table

		// 获取当前表的列
		var columns []Column
		db.Raw(`
			SELECT COLUMN_NAME, COLUMN_TYPE, IS_NULLABLE
			FROM INFORMATION_SCHEMA.COLUMNS
			WHERE TABLE_SCHEMA = DATABASE()
			AND TABLE_NAME = ?
		`, tableName).Scan(&columns)

		currentColumns := make(map[string]bool)
		for _, col := range columns {
			if col.Name != "" {
				currentColumns[strings.ToLower(col.Name)] = true
			}
		}

		// 删除模型中已不存在的列
		for colName := range currentColumns {
			if colName == "id" || strings.HasSuffix(colName, "_at") {
				continue
			}

			field := stmt.Schema.LookUpField(colName)
			if field == nil {
				sql := fmt.Sprintf("ALTER TABLE `%s` DROP COLUMN `%s`", tableName, colName)
				if err := db.Exec(sql).Error; err != nil {
					fmt.Printf("删除列 %s 失败: %v\n", colName, err)
				} else {
					fmt.Printf("表 %s: 删除多余字段 %s\n", tableName, colName)
				}
			}
		}

		// 使用AutoMigrate添加或更新列
		if err := db.AutoMigrate(m); err != nil {
			fmt.Printf("同步表 %s 结构失败: %v\n", tableName, err)
			continue
		}
		fmt.Printf("表 %s: 迁移完成\n", tableName)
	}

	fmt.Println("所有数据表迁移完成")

	// 5. 创建管理员(如果启用)
	if *createAdmin {
		if err := createAdminUser(db, adminConfig); err != nil {
			fmt.Printf("创建管理员失败: %v\n", err)
		}
	}

	// 6. 初始化基础数据(如果启用)
	if *seed {
		if err := seedBaseData(db); err != nil {
			fmt.Printf("初始化基础数据失败: %v\n", err)
		}
	}
}

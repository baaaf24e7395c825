// pkg/resetclient/resetclient.go
package resetclient

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

// Endpoint 从环境变量获取外部密码重置接口地址
// 未配置时返回空字符串，导入流程会改为在事务内直接生成重置令牌
func Endpoint() string {
	return os.Getenv("RESET_ENDPOINT")
}

var httpClient = &http.Client{
	Timeout: 10 * time.Second,
}

// PostReset 触发一次密码重置（表单POST用户名和邮箱）
// 非2xx响应视为失败
func PostReset(endpoint, username, email string) error {
	form := url.Values{}
	form.Set("username", username)
	form.Set("email", email)

	resp, err := httpClient.PostForm(endpoint, form)
	if err != nil {
		return fmt.Errorf("密码重置请求失败: %s: %v", username, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("密码重置请求被拒绝: %s: 状态码%d", username, resp.StatusCode)
	}
	return nil
}

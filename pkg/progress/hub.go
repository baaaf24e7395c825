// pkg/progress/hub.go
package progress

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有来源的连接,生产环境需要更严格的检查
	},
}

// Client 一个WebSocket连接
type Client struct {
	Conn *websocket.Conn
	Send chan Event
}

// Hub 进度事件广播中心
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	mu         sync.RWMutex
}

var globalHub *Hub

// InitHub 初始化进度广播中心并启动广播协程
func InitHub() {
	globalHub = &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 64),
	}
	go globalHub.run()
	log.Printf("进度推送服务已启动")
}

// GetHub 获取全局广播中心，未初始化时返回nil
func GetHub() *Hub {
	return globalHub
}

// Broadcast 向所有连接广播事件
func (h *Hub) Broadcast(event Event) {
	select {
	case h.broadcast <- event:
	default:
		// 广播队列已满时丢弃，导入流程不能被推送阻塞
		log.Printf("警告: 进度事件队列已满，丢弃事件[%s]", event.Type)
	}
}

// run 广播中心主循环
func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			log.Printf("新的进度推送连接，当前连接数: %d", total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- event:
				default:
					// 发送缓冲已满的连接直接跳过
				}
			}
			h.mu.RUnlock()
		}
	}
}

// HandleWebSocket 处理新的WebSocket连接
func HandleWebSocket(c *gin.Context) {
	if globalHub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"msg": "进度推送服务未初始化"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket升级失败: %v", err)
		return
	}

	client := &Client{
		Conn: conn,
		Send: make(chan Event, 16),
	}
	globalHub.register <- client

	// 写协程：把事件推给客户端
	go func() {
		defer conn.Close()
		for event := range client.Send {
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}()

	// 读协程：只用于感知连接断开
	go func() {
		defer func() {
			globalHub.unregister <- client
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("WebSocket连接异常关闭: %v", err)
				}
				return
			}
		}
	}()
}

package socket

import (
	"log"
)

// delivery 一次投遞：把封包發給 targets 中每個使用者的所有活躍連線。
// exclude 用來跳過發送者自己的連線。
type delivery struct {
	targets  []uint
	exclude  *Client
	envelope []byte
}

// Hub 維護所有活躍的會話，並處理事件的投遞。
// 所有註冊表讀寫與廣播都在 Run 迴圈內序列化，
// 同一房間的消息經同一條 deliver 通道扇出，不會亂序。
type Hub struct {
	sessions   map[uint]map[*Client]bool // userID -> 該使用者的活躍連線
	register   chan *Client
	unregister chan *Client
	deliver    chan delivery
	quit       chan struct{}
}

// NewHub 創建並返回一個新的 Hub 實例
func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[uint]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan delivery, 256),
		quit:       make(chan struct{}),
	}
}

// Run 啟動 Hub 的運行迴圈
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if _, ok := h.sessions[client.UserID]; !ok {
				h.sessions[client.UserID] = make(map[*Client]bool)
			}
			h.sessions[client.UserID][client] = true
			log.Printf("Client registered for user %d. Active sessions: %d", client.UserID, len(h.sessions[client.UserID]))

		case client := <-h.unregister:
			if clients, ok := h.sessions[client.UserID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					client.closeSend()
					if len(clients) == 0 {
						delete(h.sessions, client.UserID)
					}
					log.Printf("Client unregistered for user %d", client.UserID)
				}
			}

		case d := <-h.deliver:
			for _, userID := range d.targets {
				clients, ok := h.sessions[userID]
				if !ok {
					// 離線成員直接跳過，協議不做補投
					continue
				}
				for client := range clients {
					if client == d.exclude {
						continue
					}
					if !client.enqueue(d.envelope) {
						// 消費太慢的連線直接踢掉，避免拖住整個投遞迴圈
						client.closeSend()
						delete(clients, client)
						if len(clients) == 0 {
							delete(h.sessions, userID)
						}
						log.Printf("Client channel is full, dropped session for user %d", userID)
					}
				}
			}

		case <-h.quit:
			return
		}
	}
}

// Stop 結束運行迴圈
func (h *Hub) Stop() {
	close(h.quit)
}

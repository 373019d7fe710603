package socket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	apperr "github.com/Ireoo/sixin-server/pkg/errors"
)

const (
	// 將訊息寫入到遠端對等點的最長時間
	writeWait = 10 * time.Second

	// 允許從遠端對等點讀取下一個 pong 訊息的最長時間
	pongWait = 60 * time.Second

	// 發送 ping 訊息給遠端對等點的週期
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 8192
)

// Client 代表一個活躍會話：一條連線與一個使用者 ID 的綁定。
// 連線斷開即銷毀，不落盤。
type Client struct {
	gateway *Gateway
	conn    *websocket.Conn
	send    chan []byte
	UserID  uint

	mu     sync.Mutex
	closed bool
}

// enqueue 把封包放進發送佇列；連線已關閉或佇列已滿時返回 false
func (c *Client) enqueue(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// closeSend 關閉發送佇列，重複調用安全
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// emit 向這個會話發送一個事件
func (c *Client) emit(event EventKind, data interface{}) {
	envelope, err := newEnvelope(event, data)
	if err != nil {
		log.Printf("Error marshalling %s event: %v", event, err)
		return
	}
	c.enqueue(envelope)
}

// emitError 把錯誤回報給客戶端，連線保持打開
func (c *Client) emitError(err error) {
	c.emit(EventError, ErrorPayload{
		Kind:    apperr.CodeOf(err),
		Message: err.Error(),
	})
}

// 讀取客戶端傳來的事件，逐一分發給對應的處理函數
func (c *Client) readPump() {
	defer func() {
		c.gateway.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, p, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("Client disconnected gracefully.")
			} else {
				log.Printf("Error reading message: %v", err)
			}
			break
		}

		var envelope Envelope
		if err := json.Unmarshal(p, &envelope); err != nil {
			c.emitError(apperr.InvalidArg("failed to parse event envelope"))
			continue
		}

		c.gateway.dispatch(c, envelope)
	}
}

// 從發送佇列取出封包寫給客戶端，並以 ping 保持連線活躍
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// 佇列被關閉，送出 CloseMessage 後結束
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Error writing message: %v", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

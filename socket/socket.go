package socket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Ireoo/sixin-server/database"
	"github.com/Ireoo/sixin-server/models"
	apperr "github.com/Ireoo/sixin-server/pkg/errors"
)

// 單個事件處理的時間上限，超時按內部錯誤回報
const handlerTimeout = 10 * time.Second

// upgrader 用於將 HTTP 連線升級為 WebSocket 連線
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 允許所有來源的連線，傳輸層協商由外部代理負責
		return true
	},
}

// handlerFunc 事件處理函數；返回錯誤時由分發器統一回報 error 事件
type handlerFunc func(ctx context.Context, c *Client, data json.RawMessage) error

// Gateway 即時會話閘道：管理所有持久連線，
// 把入站事件轉成資料庫操作，再把結果推回對應的會話。
type Gateway struct {
	hub      *Hub
	db       database.DatabaseManager
	handlers map[EventKind]handlerFunc

	// 設備接收與郵件通知狀態，全局開關
	mu            sync.Mutex
	receiveDevice bool
	emailNote     bool
}

// NewGateway 建立閘道並註冊事件處理表
func NewGateway(db database.DatabaseManager) *Gateway {
	g := &Gateway{
		hub: NewHub(),
		db:  db,
	}
	g.handlers = map[EventKind]handlerFunc{
		EventSelf:               g.handleSelf,
		EventReceive:            g.handleReceive,
		EventEmail:              g.handleEmail,
		EventMessage:            g.handleMessage,
		EventGetChats:           g.handleGetChats,
		EventGetRooms:           g.handleGetRooms,
		EventGetUsers:           g.handleGetUsers,
		EventCreateRoom:         g.handleCreateRoom,
		EventAddUserToRoom:      g.handleAddUserToRoom,
		EventRemoveUserFromRoom: g.handleRemoveUserFromRoom,
	}
	return g
}

// Start 啟動投遞迴圈
func (g *Gateway) Start() {
	go g.hub.Run()
}

// Stop 結束投遞迴圈；既有連線由各自的讀寫迴圈收尾
func (g *Gateway) Stop() {
	g.hub.Stop()
}

// HandleSocketIO 處理 /socket.io 的連線請求。
// userId 查詢參數決定會話綁定的使用者，身份驗證由外部收斂。
func (g *Gateway) HandleSocketIO(w http.ResponseWriter, r *http.Request) {
	userIDStr := r.URL.Query().Get("userId")
	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil || userID == 0 {
		http.Error(w, "Valid userId is required for socket connection", http.StatusBadRequest)
		return
	}

	if _, err := g.db.GetUserByID(r.Context(), uint(userID)); err != nil {
		if apperr.IsNotFound(err) {
			http.Error(w, "User not found", http.StatusNotFound)
		} else {
			log.Printf("Error loading user %d: %v", userID, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	client := &Client{
		gateway: g,
		conn:    conn,
		send:    make(chan []byte, 256),
		UserID:  uint(userID),
	}
	g.hub.register <- client

	go client.writePump()

	// 連線建立後先推送初始狀態
	g.emitInitialState(client)

	client.readPump() // readPump 會在連線關閉時自動取消註冊
}

// emitInitialState 推送設備接收狀態、郵件通知狀態與自身資訊
func (g *Gateway) emitInitialState(client *Client) {
	g.mu.Lock()
	receive, email := g.receiveDevice, g.emailNote
	g.mu.Unlock()

	client.emit(EventReceive, receive)
	client.emit(EventEmail, email)

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()
	user, err := g.db.GetUserByID(ctx, client.UserID)
	if err != nil {
		log.Printf("Error loading user %d for initial state: %v", client.UserID, err)
		client.emitError(err)
		return
	}
	client.emit(EventSelf, user)
}

// dispatch 查表分發事件；單個會話的錯誤只回報給它自己，絕不拖垮整個服務
func (g *Gateway) dispatch(c *Client, envelope Envelope) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in %s handler: %v", envelope.Event, r)
			c.emitError(apperr.Internal("internal server error"))
		}
	}()

	handler, ok := g.handlers[envelope.Event]
	if !ok {
		c.emitError(apperr.InvalidArg(fmt.Sprintf("unknown event: %s", envelope.Event)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	if err := handler(ctx, c, envelope.Data); err != nil {
		c.emitError(err)
	}
}

func (g *Gateway) handleSelf(ctx context.Context, c *Client, _ json.RawMessage) error {
	user, err := g.db.GetUserByID(ctx, c.UserID)
	if err != nil {
		return err
	}
	c.emit(EventSelf, user)
	return nil
}

func (g *Gateway) handleReceive(ctx context.Context, c *Client, _ json.RawMessage) error {
	g.mu.Lock()
	g.receiveDevice = !g.receiveDevice
	receive := g.receiveDevice
	g.mu.Unlock()

	c.emit(EventReceive, receive)
	return nil
}

func (g *Gateway) handleEmail(ctx context.Context, c *Client, _ json.RawMessage) error {
	g.mu.Lock()
	g.emailNote = !g.emailNote
	email := g.emailNote
	g.mu.Unlock()

	c.emit(EventEmail, email)
	return nil
}

// handleMessage 校驗並保存消息，然後廣播給房間內其他成員或私聊對象。
// 離線成員直接跳過，不做補投；保存失敗不會有任何廣播。
func (g *Gateway) handleMessage(ctx context.Context, c *Client, data json.RawMessage) error {
	message, err := decodeMessagePayload(data)
	if err != nil {
		return err
	}
	message.TalkerID = c.UserID

	if err := g.db.CreateMessage(ctx, message); err != nil {
		return err
	}

	fullMessage, err := g.db.GetFullMessage(ctx, message.ID)
	if err != nil {
		return err
	}

	var targets []uint
	if message.RoomID != 0 {
		members, err := g.db.GetRoomMembers(ctx, message.RoomID)
		if err != nil {
			return err
		}
		targets = members
	} else {
		targets = []uint{message.ListenerID}
	}

	envelope, err := newEnvelope(EventMessage, fullMessage)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to encode message", err)
	}
	// 落盤到入列之間有空窗：不同發送者的消息入列順序可能與落盤順序不同。
	// 所有接收者看到的仍是同一條 deliver 通道的順序；同一發送者的消息不受影響。
	g.hub.deliver <- delivery{targets: targets, exclude: c, envelope: envelope}
	return nil
}

func (g *Gateway) handleGetChats(ctx context.Context, c *Client, _ json.RawMessage) error {
	messages, err := g.db.GetChats(ctx, c.UserID)
	if err != nil {
		return err
	}
	c.emit(EventGetChats, messages)
	return nil
}

func (g *Gateway) handleGetRooms(ctx context.Context, c *Client, _ json.RawMessage) error {
	rooms, err := g.db.GetAllRooms(ctx)
	if err != nil {
		return err
	}
	c.emit(EventGetRooms, rooms)
	return nil
}

func (g *Gateway) handleGetUsers(ctx context.Context, c *Client, _ json.RawMessage) error {
	users, err := g.db.GetAllUsers(ctx)
	if err != nil {
		return err
	}
	c.emit(EventGetUsers, users)
	return nil
}

func (g *Gateway) handleCreateRoom(ctx context.Context, c *Client, data json.RawMessage) error {
	var payload createRoomPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return apperr.InvalidArg("failed to parse room payload")
	}

	room := models.Room{Name: payload.Name, OwnerID: c.UserID, Avatar: payload.Avatar}
	if err := g.db.CreateRoom(ctx, &room); err != nil {
		return err
	}
	c.emit(EventRoomCreated, room)
	return nil
}

func (g *Gateway) handleAddUserToRoom(ctx context.Context, c *Client, data json.RawMessage) error {
	var payload roomMemberPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return apperr.InvalidArg("failed to parse member payload")
	}
	if payload.UserID == 0 || payload.RoomID == 0 {
		return apperr.InvalidArg("userId and roomId are required")
	}

	if _, err := g.db.GetRoomByID(ctx, payload.RoomID); err != nil {
		return err
	}
	if _, err := g.db.GetUserByID(ctx, payload.UserID); err != nil {
		return err
	}
	if err := g.db.AddUserToRoom(ctx, payload.UserID, payload.RoomID, "", false); err != nil {
		return err
	}
	c.emit(EventUserAddedToRoom, payload)
	return nil
}

func (g *Gateway) handleRemoveUserFromRoom(ctx context.Context, c *Client, data json.RawMessage) error {
	var payload roomMemberPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return apperr.InvalidArg("failed to parse member payload")
	}
	if payload.UserID == 0 || payload.RoomID == 0 {
		return apperr.InvalidArg("userId and roomId are required")
	}

	if err := g.db.RemoveUserFromRoom(ctx, payload.UserID, payload.RoomID); err != nil {
		return err
	}
	c.emit(EventUserRemovedFromRoom, payload)
	return nil
}

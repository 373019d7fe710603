package models

import (
	"time"

	"gorm.io/gorm"
)

// GetAllModels 返回所有需要遷移的模型
func GetAllModels() []interface{} {
	return []interface{}{
		&User{},
		&Room{},
		&UserRoom{},
		&Message{},
	}
}

// MessageType 定義消息類型
const (
	MessageTypeText   = 1 // 文字消息
	MessageTypeImage  = 2 // 圖片消息
	MessageTypeSystem = 3 // 系統消息
)

// User 使用者資料；Password 等敏感欄位不在此服務範圍內
type User struct {
	ID        uint           `gorm:"primaryKey" bson:"id" json:"id"`
	Name      string         `bson:"name" json:"name"`
	Email     string         `bson:"email" json:"email"`
	WechatID  string         `gorm:"uniqueIndex" bson:"wechatId,omitempty" json:"wechatId,omitempty"`
	Avatar    string         `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Signature string         `bson:"signature,omitempty" json:"signature,omitempty"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time      `bson:"updatedAt" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" bson:"-" json:"-"`
}

// UserUpdate 表示使用者的部分更新；nil 欄位表示不修改
type UserUpdate struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Avatar    *string `json:"avatar"`
	Signature *string `json:"signature"`
}

// Room 聊天室；Members 透過 user_rooms 關聯
type Room struct {
	ID        uint           `gorm:"primaryKey" bson:"id" json:"id"`
	Name      string         `bson:"name" json:"name"`
	OwnerID   uint           `bson:"ownerId" json:"ownerId"`
	Avatar    string         `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Members   []User         `gorm:"many2many:user_rooms;" bson:"members,omitempty" json:"members,omitempty"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time      `bson:"updatedAt" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" bson:"-" json:"-"`
}

// UserRoom 使用者與房間的成員關係
type UserRoom struct {
	ID        uint   `gorm:"primaryKey" bson:"-" json:"id"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_user_room" bson:"userId" json:"userId"`
	RoomID    uint   `gorm:"not null;uniqueIndex:idx_user_room" bson:"roomId" json:"roomId"`
	Alias     string `bson:"alias,omitempty" json:"alias,omitempty"`
	IsPrivate bool   `gorm:"default:false" bson:"isPrivate" json:"isPrivate"`
}

// MessageText 消息正文，文字與圖片至少要有一項
type MessageText struct {
	Message string `bson:"message" json:"message"`
	Image   string `bson:"image,omitempty" json:"image"`
}

// Message 聊天消息，寫入後不可修改。RoomID 與 ListenerID 必須恰好填一個：
// 填 RoomID 的是群聊消息，填 ListenerID 的是私聊消息。
// TalkerID 只保留數值，發送者之後被刪除也不影響歷史記錄。
type Message struct {
	ID            uint        `gorm:"primaryKey" bson:"id" json:"id"`
	MsgID         string      `gorm:"uniqueIndex" bson:"msgId" json:"msgId"`
	TalkerID      uint        `gorm:"index" bson:"talkerId" json:"talkerId"`
	ListenerID    uint        `gorm:"index" bson:"listenerId,omitempty" json:"listenerId,omitempty"`
	RoomID        uint        `gorm:"index" bson:"roomId,omitempty" json:"roomId,omitempty"`
	Text          MessageText `gorm:"serializer:json" bson:"text" json:"text"`
	Timestamp     int64       `bson:"timestamp" json:"timestamp"`
	Type          int         `bson:"type" json:"type"`
	MentionIDList []uint      `gorm:"serializer:json" bson:"mentionIdList,omitempty" json:"mentionIdList,omitempty"`
}

// FullMessage 消息加上關聯的發送者、接收者與房間快照，用於推送給客戶端
type FullMessage struct {
	Message
	Talker   *User `bson:"talker,omitempty" json:"talker,omitempty"`
	Listener *User `bson:"listener,omitempty" json:"listener,omitempty"`
	Room     *Room `bson:"room,omitempty" json:"room,omitempty"`
}

// ErrorResponse 用於返回 JSON 格式的錯誤訊息
type ErrorResponse struct {
	Message string `json:"message"`
}

// CreateUserRequest 建立使用者的請求內容
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateRoomRequest 建立房間的請求內容
type CreateRoomRequest struct {
	Name    string `json:"name"`
	OwnerID uint   `json:"ownerId"`
	Avatar  string `json:"avatar"`
}

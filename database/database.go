package database

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/Ireoo/sixin-server/models"
	apperr "github.com/Ireoo/sixin-server/pkg/errors"
)

// DatabaseType 支援的資料庫類型
type DatabaseType string

const (
	SQLite  DatabaseType = "sqlite"
	MongoDB DatabaseType = "mongodb"
)

// DatabaseManager 聚合使用者目錄、房間成員關係與聊天記錄三類操作。
// 所有實作必須保證：消息只增不改，同一房間的消息按寫入順序讀出。
type DatabaseManager interface {
	// 使用者目錄
	GetAllUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	UpdateUser(ctx context.Context, id uint, update models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error

	// 房間與成員關係
	GetAllRooms(ctx context.Context) ([]models.Room, error)
	CreateRoom(ctx context.Context, room *models.Room) error
	GetRoomByID(ctx context.Context, id uint) (*models.Room, error)
	GetRoomMembers(ctx context.Context, roomID uint) ([]uint, error)
	AddUserToRoom(ctx context.Context, userID, roomID uint, alias string, isPrivate bool) error
	RemoveUserFromRoom(ctx context.Context, userID, roomID uint) error

	// 聊天記錄
	CreateMessage(ctx context.Context, message *models.Message) error
	GetFullMessage(ctx context.Context, id uint) (*models.FullMessage, error)
	GetChatHistory(ctx context.Context, roomID uint, limit, offset int) ([]models.Message, error)
	GetChats(ctx context.Context, userID uint) ([]models.Message, error)

	Close(ctx context.Context) error
}

// NewDatabaseManager 根據配置建立對應的資料庫管理器
func NewDatabaseManager(dbType DatabaseType, connectionString, dbName string) (DatabaseManager, error) {
	switch dbType {
	case SQLite:
		return NewSQLiteManager(connectionString)
	case MongoDB:
		return NewMongoManager(connectionString, dbName)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}
}

// validateNewUser 檢查建立使用者的必填欄位
func validateNewUser(user *models.User) error {
	if user.Name == "" {
		return apperr.InvalidArg("name is required")
	}
	if user.Email == "" {
		return apperr.InvalidArg("email is required")
	}
	if _, err := mail.ParseAddress(user.Email); err != nil {
		return apperr.InvalidArg("invalid email format")
	}
	return nil
}

// prepareUser 補齊服務端欄位；WechatID 有唯一索引，留空時代為發號
func prepareUser(user *models.User) {
	if user.WechatID == "" {
		user.WechatID = uuid.NewString()
	}
}

// validateMessage 檢查消息的歸屬與正文。
// RoomID 與 ListenerID 必須恰好填一個，正文的文字與圖片至少要有一項。
func validateMessage(message *models.Message) error {
	if (message.RoomID == 0) == (message.ListenerID == 0) {
		return apperr.InvalidArg("message must have exactly one of roomId or listenerId")
	}
	if message.Text.Message == "" && message.Text.Image == "" {
		return apperr.InvalidArg("message text or image is required")
	}
	return nil
}

// prepareMessage 補齊服務端欄位：MsgID 與時間戳
func prepareMessage(message *models.Message) {
	if message.MsgID == "" {
		message.MsgID = uuid.NewString()
	}
	if message.Timestamp == 0 {
		message.Timestamp = time.Now().UnixMilli()
	}
}

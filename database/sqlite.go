package database

import (
	"context"
	"errors"
	"log"
	"net/mail"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/Ireoo/sixin-server/models"
	apperr "github.com/Ireoo/sixin-server/pkg/errors"
)

// SQLiteManager 以 gorm + SQLite 實作 DatabaseManager
type SQLiteManager struct {
	DB *gorm.DB
}

// NewSQLiteManager 打開 SQLite 資料庫並完成遷移
func NewSQLiteManager(path string) (*SQLiteManager, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to open sqlite database", err)
	}

	// Members 關聯與成員寫入共用 user_rooms 表
	if err := db.SetupJoinTable(&models.Room{}, "Members", &models.UserRoom{}); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to set up room members join table", err)
	}

	if err := db.AutoMigrate(models.GetAllModels()...); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to migrate sqlite database", err)
	}

	log.Println("Connected to SQLite successfully!")
	return &SQLiteManager{DB: db}, nil
}

func (m *SQLiteManager) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := m.DB.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to list users", err)
	}
	return users, nil
}

func (m *SQLiteManager) CreateUser(ctx context.Context, user *models.User) error {
	if err := validateNewUser(user); err != nil {
		return err
	}
	prepareUser(user)
	if err := m.DB.WithContext(ctx).Create(user).Error; err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to create user", err)
	}
	return nil
}

func (m *SQLiteManager) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := m.DB.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to get user", err)
	}
	return &user, nil
}

func (m *SQLiteManager) UpdateUser(ctx context.Context, id uint, update models.UserUpdate) (*models.User, error) {
	updates := make(map[string]interface{})
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Email != nil {
		if _, err := mail.ParseAddress(*update.Email); err != nil {
			return nil, apperr.InvalidArg("invalid email format")
		}
		updates["email"] = *update.Email
	}
	if update.Avatar != nil {
		updates["avatar"] = *update.Avatar
	}
	if update.Signature != nil {
		updates["signature"] = *update.Signature
	}

	// 先確認使用者存在，找不到就直接回報 NotFound
	user, err := m.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := m.DB.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to update user", err)
	}
	return m.GetUserByID(ctx, id)
}

func (m *SQLiteManager) DeleteUser(ctx context.Context, id uint) error {
	result := m.DB.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to delete user", result.Error)
	}
	// 重複刪除視同找不到，歷史消息保留原本的 talkerId 不受影響
	if result.RowsAffected == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (m *SQLiteManager) GetAllRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := m.DB.WithContext(ctx).Preload("Members").Find(&rooms).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to list rooms", err)
	}
	return rooms, nil
}

func (m *SQLiteManager) CreateRoom(ctx context.Context, room *models.Room) error {
	if room.Name == "" {
		return apperr.InvalidArg("room name is required")
	}
	if err := m.DB.WithContext(ctx).Create(room).Error; err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to create room", err)
	}
	// 房主自動成為成員
	if room.OwnerID != 0 {
		if err := m.AddUserToRoom(ctx, room.OwnerID, room.ID, "", false); err != nil {
			return err
		}
	}
	return nil
}

func (m *SQLiteManager) GetRoomByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := m.DB.WithContext(ctx).Preload("Members").First(&room, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("room not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to get room", err)
	}
	return &room, nil
}

func (m *SQLiteManager) GetRoomMembers(ctx context.Context, roomID uint) ([]uint, error) {
	if _, err := m.GetRoomByID(ctx, roomID); err != nil {
		return nil, err
	}
	var userRooms []models.UserRoom
	if err := m.DB.WithContext(ctx).Where("room_id = ?", roomID).Find(&userRooms).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to get room members", err)
	}
	members := make([]uint, 0, len(userRooms))
	for _, ur := range userRooms {
		members = append(members, ur.UserID)
	}
	return members, nil
}

func (m *SQLiteManager) AddUserToRoom(ctx context.Context, userID, roomID uint, alias string, isPrivate bool) error {
	// OnConflict 處理重複加入，讓操作保持冪等
	err := m.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "room_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"alias", "is_private"}),
	}).Create(&models.UserRoom{
		UserID:    userID,
		RoomID:    roomID,
		Alias:     alias,
		IsPrivate: isPrivate,
	}).Error
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to add user to room", err)
	}
	return nil
}

func (m *SQLiteManager) RemoveUserFromRoom(ctx context.Context, userID, roomID uint) error {
	err := m.DB.WithContext(ctx).
		Where("user_id = ? AND room_id = ?", userID, roomID).
		Delete(&models.UserRoom{}).Error
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to remove user from room", err)
	}
	return nil
}

func (m *SQLiteManager) CreateMessage(ctx context.Context, message *models.Message) error {
	if err := validateMessage(message); err != nil {
		return err
	}
	prepareMessage(message)
	if err := m.DB.WithContext(ctx).Create(message).Error; err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to create message", err)
	}
	return nil
}

func (m *SQLiteManager) GetFullMessage(ctx context.Context, id uint) (*models.FullMessage, error) {
	var message models.Message
	err := m.DB.WithContext(ctx).First(&message, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("message not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to get message", err)
	}

	full := &models.FullMessage{Message: message}
	// 關聯的使用者或房間可能已被刪除，快照欄位留空即可
	if message.TalkerID != 0 {
		if talker, err := m.GetUserByID(ctx, message.TalkerID); err == nil {
			full.Talker = talker
		}
	}
	if message.ListenerID != 0 {
		if listener, err := m.GetUserByID(ctx, message.ListenerID); err == nil {
			full.Listener = listener
		}
	}
	if message.RoomID != 0 {
		if room, err := m.GetRoomByID(ctx, message.RoomID); err == nil {
			full.Room = room
		}
	}
	return full, nil
}

func (m *SQLiteManager) GetChatHistory(ctx context.Context, roomID uint, limit, offset int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	var messages []models.Message
	// 主鍵單調遞增，按 id 升序讀出即寫入順序
	err := m.DB.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("id ASC").
		Limit(limit).Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to get chat history", err)
	}
	return messages, nil
}

func (m *SQLiteManager) GetChats(ctx context.Context, userID uint) ([]models.Message, error) {
	var messages []models.Message
	err := m.DB.WithContext(ctx).Model(&models.Message{}).
		Joins("LEFT JOIN user_rooms ON messages.room_id = user_rooms.room_id AND user_rooms.user_id = ?", userID).
		Where("messages.talker_id = ? OR messages.listener_id = ? OR user_rooms.user_id IS NOT NULL", userID, userID).
		Order("messages.id DESC").Limit(400).
		Find(&messages).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to get chats", err)
	}
	return messages, nil
}

func (m *SQLiteManager) Close(ctx context.Context) error {
	sqlDB, err := m.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

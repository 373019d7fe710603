package database

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Ireoo/sixin-server/models"
	apperr "github.com/Ireoo/sixin-server/pkg/errors"
)

// MongoManager 以官方 mongo-driver 實作 DatabaseManager。
// 為了與 SQLite 後端保持一致的對外 ID 形態，數值 ID 由 counters 集合發號。
type MongoManager struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoManager 建立並初始化 MongoDB 連線
func NewMongoManager(uri, dbName string) (*MongoManager, error) {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to connect to MongoDB", err)
	}

	// Ping the primary to verify connection
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to ping MongoDB", err)
	}

	log.Println("Connected to MongoDB successfully!")
	m := &MongoManager{client: client, db: client.Database(dbName)}

	// msgId 唯一索引；user_rooms 複合唯一索引防止重複成員
	_, err = m.db.Collection("messages").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "msgId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to create msgId index", err)
	}
	_, err = m.db.Collection("user_rooms").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "roomId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to create user_rooms index", err)
	}

	return m, nil
}

// nextSeq 從 counters 集合取得下一個自增 ID
func (m *MongoManager) nextSeq(ctx context.Context, name string) (uint, error) {
	var result struct {
		Seq uint `bson:"seq"`
	}
	err := m.db.Collection("counters").FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&result)
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeInternal, "failed to allocate id", err)
	}
	return result.Seq, nil
}

func (m *MongoManager) GetAllUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := m.db.Collection("users").Find(ctx, bson.M{})
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to list users", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to decode users", err)
	}
	return users, nil
}

func (m *MongoManager) CreateUser(ctx context.Context, user *models.User) error {
	if err := validateNewUser(user); err != nil {
		return err
	}
	prepareUser(user)
	id, err := m.nextSeq(ctx, "users")
	if err != nil {
		return err
	}
	user.ID = id
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	if _, err := m.db.Collection("users").InsertOne(ctx, user); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to create user", err)
	}
	return nil
}

func (m *MongoManager) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := m.db.Collection("users").FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to get user", err)
	}
	return &user, nil
}

func (m *MongoManager) UpdateUser(ctx context.Context, id uint, update models.UserUpdate) (*models.User, error) {
	updates := bson.M{}
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
	updates["updatedAt"] = time.Now()

	result, err := m.db.Collection("users").UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updates})
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to update user", err)
	}
	if result.MatchedCount == 0 {
		return nil, apperr.NotFound("user not found")
	}
	return m.GetUserByID(ctx, id)
}

func (m *MongoManager) DeleteUser(ctx context.Context, id uint) error {
	result, err := m.db.Collection("users").DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to delete user", err)
	}
	if result.DeletedCount == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (m *MongoManager) GetAllRooms(ctx context.Context) ([]models.Room, error) {
	cursor, err := m.db.Collection("rooms").Find(ctx, bson.M{})
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to list rooms", err)
	}
	defer cursor.Close(ctx)

	rooms := []models.Room{}
	if err = cursor.All(ctx, &rooms); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to decode rooms", err)
	}
	for i := range rooms {
		if err := m.loadRoomMembers(ctx, &rooms[i]); err != nil {
			return nil, err
		}
	}
	return rooms, nil
}

func (m *MongoManager) CreateRoom(ctx context.Context, room *models.Room) error {
	if room.Name == "" {
		return apperr.InvalidArg("room name is required")
	}
	id, err := m.nextSeq(ctx, "rooms")
	if err != nil {
		return err
	}
	room.ID = id
	room.CreatedAt = time.Now()
	room.UpdatedAt = room.CreatedAt
	if _, err := m.db.Collection("rooms").InsertOne(ctx, room); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to create room", err)
	}
	if room.OwnerID != 0 {
		return m.AddUserToRoom(ctx, room.OwnerID, room.ID, "", false)
	}
	return nil
}

func (m *MongoManager) GetRoomByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := m.db.Collection("rooms").FindOne(ctx, bson.M{"id": id}).Decode(&room)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("room not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to get room", err)
	}
	if err := m.loadRoomMembers(ctx, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// loadRoomMembers 依 user_rooms 關係補上房間的成員快照
func (m *MongoManager) loadRoomMembers(ctx context.Context, room *models.Room) error {
	memberIDs, err := m.roomMemberIDs(ctx, room.ID)
	if err != nil {
		return err
	}
	if len(memberIDs) == 0 {
		room.Members = []models.User{}
		return nil
	}
	cursor, err := m.db.Collection("users").Find(ctx, bson.M{"id": bson.M{"$in": memberIDs}})
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to load room members", err)
	}
	defer cursor.Close(ctx)
	members := []models.User{}
	if err = cursor.All(ctx, &members); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to decode room members", err)
	}
	room.Members = members
	return nil
}

func (m *MongoManager) roomMemberIDs(ctx context.Context, roomID uint) ([]uint, error) {
	cursor, err := m.db.Collection("user_rooms").Find(ctx, bson.M{"roomId": roomID})
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to get room members", err)
	}
	defer cursor.Close(ctx)

	var userRooms []models.UserRoom
	if err = cursor.All(ctx, &userRooms); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to decode room members", err)
	}
	ids := make([]uint, 0, len(userRooms))
	for _, ur := range userRooms {
		ids = append(ids, ur.UserID)
	}
	return ids, nil
}

func (m *MongoManager) GetRoomMembers(ctx context.Context, roomID uint) ([]uint, error) {
	count, err := m.db.Collection("rooms").CountDocuments(ctx, bson.M{"id": roomID})
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to check room", err)
	}
	if count == 0 {
		return nil, apperr.NotFound("room not found")
	}
	return m.roomMemberIDs(ctx, roomID)
}

func (m *MongoManager) AddUserToRoom(ctx context.Context, userID, roomID uint, alias string, isPrivate bool) error {
	_, err := m.db.Collection("user_rooms").UpdateOne(ctx,
		bson.M{"userId": userID, "roomId": roomID},
		bson.M{"$set": bson.M{"alias": alias, "isPrivate": isPrivate}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to add user to room", err)
	}
	return nil
}

func (m *MongoManager) RemoveUserFromRoom(ctx context.Context, userID, roomID uint) error {
	_, err := m.db.Collection("user_rooms").DeleteOne(ctx, bson.M{"userId": userID, "roomId": roomID})
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to remove user from room", err)
	}
	return nil
}

func (m *MongoManager) CreateMessage(ctx context.Context, message *models.Message) error {
	if err := validateMessage(message); err != nil {
		return err
	}
	prepareMessage(message)
	id, err := m.nextSeq(ctx, "messages")
	if err != nil {
		return err
	}
	message.ID = id
	if _, err := m.db.Collection("messages").InsertOne(ctx, message); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to create message", err)
	}
	return nil
}

func (m *MongoManager) GetFullMessage(ctx context.Context, id uint) (*models.FullMessage, error) {
	var message models.Message
	err := m.db.Collection("messages").FindOne(ctx, bson.M{"id": id}).Decode(&message)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("message not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to get message", err)
	}

	full := &models.FullMessage{Message: message}
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

func (m *MongoManager) GetChatHistory(ctx context.Context, roomID uint, limit, offset int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	// 發號的 id 單調遞增，按 id 升序讀出即寫入順序
	findOptions := options.Find().
		SetSort(bson.D{{Key: "id", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	cursor, err := m.db.Collection("messages").Find(ctx, bson.M{"roomId": roomID}, findOptions)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to get chat history", err)
	}
	defer cursor.Close(ctx)

	messages := []models.Message{}
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to decode chat history", err)
	}
	return messages, nil
}

func (m *MongoManager) GetChats(ctx context.Context, userID uint) ([]models.Message, error) {
	// 先找出使用者所屬的房間
	cursor, err := m.db.Collection("user_rooms").Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to get user rooms", err)
	}
	var userRooms []models.UserRoom
	if err = cursor.All(ctx, &userRooms); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to decode user rooms", err)
	}
	roomIDs := make([]uint, 0, len(userRooms))
	for _, ur := range userRooms {
		roomIDs = append(roomIDs, ur.RoomID)
	}

	filter := bson.M{"$or": []bson.M{
		{"talkerId": userID},
		{"listenerId": userID},
		{"roomId": bson.M{"$in": roomIDs}},
	}}
	findOptions := options.Find().SetSort(bson.D{{Key: "id", Value: -1}}).SetLimit(400)
	msgCursor, err := m.db.Collection("messages").Find(ctx, filter, findOptions)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to get chats", err)
	}
	defer msgCursor.Close(ctx)

	messages := []models.Message{}
	if err = msgCursor.All(ctx, &messages); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to decode chats", err)
	}
	return messages, nil
}

func (m *MongoManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

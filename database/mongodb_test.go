package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/Ireoo/sixin-server/models"
	apperr "github.com/Ireoo/sixin-server/pkg/errors"
)

// setupMongo 啟動一個 MongoDB 容器；環境沒有 Docker 就跳過
func setupMongo(t *testing.T) *MongoManager {
	t.Helper()

	ctx := context.Background()
	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Skipf("skipping: could not start mongodb container: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	m, err := NewMongoManager(uri, "sixin_test")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = m.Close(ctx)
	})
	return m
}

func TestMongoUserLifecycle(t *testing.T) {
	m := setupMongo(t)
	ctx := context.Background()

	user := &models.User{Name: "测试用户", Email: "test@example.com"}
	require.NoError(t, m.CreateUser(ctx, user))
	assert.NotZero(t, user.ID, "建立使用者後應該分配 ID")

	got, err := m.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "测试用户", got.Name)
	assert.Equal(t, "test@example.com", got.Email)

	name := "更新的用戶名"
	updated, err := m.UpdateUser(ctx, user.ID, models.UserUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "更新的用戶名", updated.Name)
	assert.Equal(t, "test@example.com", updated.Email)

	require.NoError(t, m.DeleteUser(ctx, user.ID))
	_, err = m.GetUserByID(ctx, user.ID)
	assert.True(t, apperr.IsNotFound(err))
	assert.True(t, apperr.IsNotFound(m.DeleteUser(ctx, user.ID)), "重複刪除應該返回 NotFound")
}

func TestMongoChatHistoryOrder(t *testing.T) {
	m := setupMongo(t)
	ctx := context.Background()

	const roomID = 3
	want := []string{"first", "second", "third"}
	for _, text := range want {
		require.NoError(t, m.CreateMessage(ctx, &models.Message{
			TalkerID: 1,
			RoomID:   roomID,
			Text:     models.MessageText{Message: text},
		}))
	}

	history, err := m.GetChatHistory(ctx, roomID, 50, 0)
	require.NoError(t, err)
	require.Len(t, history, len(want))
	for i, msg := range history {
		assert.Equal(t, want[i], msg.Text.Message, "歷史記錄應該按寫入順序讀出")
	}
}

func TestMongoRoomMembership(t *testing.T) {
	m := setupMongo(t)
	ctx := context.Background()

	owner := &models.User{Name: "owner", Email: "owner@example.com"}
	require.NoError(t, m.CreateUser(ctx, owner))

	room := &models.Room{Name: "general", OwnerID: owner.ID}
	require.NoError(t, m.CreateRoom(ctx, room))

	members, err := m.GetRoomMembers(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{owner.ID}, members)

	_, err = m.GetRoomMembers(ctx, 999)
	assert.True(t, apperr.IsNotFound(err), "查詢不存在的房間應該返回 NotFound")
}

package socket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Ireoo/sixin-server/database/mocks"
	"github.com/Ireoo/sixin-server/models"
	apperr "github.com/Ireoo/sixin-server/pkg/errors"
)

// 用 mock 儲存層驗證閘道對後端故障的處理：
// 錯誤以 error 事件回報，連線本身不受影響。
func setupMockGateway(t *testing.T) (*mocks.MockDatabaseManager, *websocket.Conn) {
	t.Helper()

	ctrl := gomock.NewController(t)
	db := mocks.NewMockDatabaseManager(ctrl)

	user := &models.User{ID: 1, Name: "alice", Email: "alice@example.com"}
	db.EXPECT().GetUserByID(gomock.Any(), uint(1)).Return(user, nil).AnyTimes()

	gateway := NewGateway(db)
	gateway.Start()
	t.Cleanup(gateway.Stop)

	server := httptest.NewServer(http.HandlerFunc(gateway.HandleSocketIO))
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/?userId=1"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	for _, want := range []EventKind{EventReceive, EventEmail, EventSelf} {
		envelope := readEnvelope(t, conn)
		require.Equal(t, want, envelope.Event)
	}
	return db, conn
}

// 初始狀態的 self 載入失敗要回報 error 事件，而不是無聲吞掉
func TestInitialStateLoadFailureReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := mocks.NewMockDatabaseManager(ctrl)

	user := &models.User{ID: 1, Name: "alice", Email: "alice@example.com"}
	gomock.InOrder(
		// 升級前的存在性檢查成功，之後載入初始狀態時儲存層故障
		db.EXPECT().GetUserByID(gomock.Any(), uint(1)).Return(user, nil),
		db.EXPECT().GetUserByID(gomock.Any(), uint(1)).Return(nil, apperr.Internal("database unavailable")),
	)

	gateway := NewGateway(db)
	gateway.Start()
	t.Cleanup(gateway.Stop)

	server := httptest.NewServer(http.HandlerFunc(gateway.HandleSocketIO))
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/?userId=1"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	for _, want := range []EventKind{EventReceive, EventEmail} {
		envelope := readEnvelope(t, conn)
		require.Equal(t, want, envelope.Event)
	}
	payload := decodeError(t, readEnvelope(t, conn))
	assert.Equal(t, apperr.CodeInternal, payload.Kind)

	// 連線依然可用
	db.EXPECT().GetAllRooms(gomock.Any()).Return([]models.Room{}, nil)
	sendEvent(t, conn, EventGetRooms, nil)
	envelope := readEnvelope(t, conn)
	assert.Equal(t, EventGetRooms, envelope.Event)
}

func TestStoreFailureReportedToClient(t *testing.T) {
	db, conn := setupMockGateway(t)

	db.EXPECT().GetAllUsers(gomock.Any()).
		Return(nil, apperr.Internal("database unavailable"))

	sendEvent(t, conn, EventGetUsers, nil)
	payload := decodeError(t, readEnvelope(t, conn))
	assert.Equal(t, apperr.CodeInternal, payload.Kind)
	assert.Contains(t, payload.Message, "database unavailable")

	// 故障回報後連線依然可用
	db.EXPECT().GetAllRooms(gomock.Any()).Return([]models.Room{}, nil)
	sendEvent(t, conn, EventGetRooms, nil)
	envelope := readEnvelope(t, conn)
	assert.Equal(t, EventGetRooms, envelope.Event)
}

func TestMessageSaveFailureMeansNoBroadcast(t *testing.T) {
	db, conn := setupMockGateway(t)

	db.EXPECT().CreateMessage(gomock.Any(), gomock.Any()).
		Return(apperr.Internal("write failed"))
	// 保存失敗時不查房間成員，也不投遞

	sendEvent(t, conn, EventMessage, messagePayload{Message: &models.Message{
		RoomID: 7,
		Text:   models.MessageText{Message: "lost"},
	}})

	payload := decodeError(t, readEnvelope(t, conn))
	assert.Equal(t, apperr.CodeInternal, payload.Kind)
}

func TestMessageToUnknownRoomReported(t *testing.T) {
	db, conn := setupMockGateway(t)

	db.EXPECT().CreateMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, message *models.Message) error {
			message.ID = 42
			return nil
		})
	db.EXPECT().GetFullMessage(gomock.Any(), uint(42)).
		Return(&models.FullMessage{}, nil)
	db.EXPECT().GetRoomMembers(gomock.Any(), uint(7)).
		Return(nil, apperr.NotFound("room not found"))

	sendEvent(t, conn, EventMessage, messagePayload{Message: &models.Message{
		RoomID: 7,
		Text:   models.MessageText{Message: "hello"},
	}})

	payload := decodeError(t, readEnvelope(t, conn))
	assert.Equal(t, apperr.CodeNotFound, payload.Kind)
}

func TestHandlerPanicRecovered(t *testing.T) {
	db, conn := setupMockGateway(t)

	db.EXPECT().GetChats(gomock.Any(), uint(1)).
		DoAndReturn(func(_ context.Context, _ uint) ([]models.Message, error) {
			panic("boom")
		})

	sendEvent(t, conn, EventGetChats, nil)
	payload := decodeError(t, readEnvelope(t, conn))
	assert.Equal(t, apperr.CodeInternal, payload.Kind)

	// panic 被吞掉，會話繼續工作
	db.EXPECT().GetAllRooms(gomock.Any()).Return(nil, nil)
	sendEvent(t, conn, EventGetRooms, nil)
	envelope := readEnvelope(t, conn)
	assert.Equal(t, EventGetRooms, envelope.Event)
}

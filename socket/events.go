package socket

import (
	"encoding/json"

	"github.com/Ireoo/sixin-server/models"
	apperr "github.com/Ireoo/sixin-server/pkg/errors"
)

// EventKind 事件種類。分發不走字串比對，而是查表取處理函數。
type EventKind string

const (
	// 客戶端發起的事件
	EventSelf               EventKind = "self"
	EventReceive            EventKind = "receive"
	EventEmail              EventKind = "email"
	EventMessage            EventKind = "message"
	EventGetChats           EventKind = "getChats"
	EventGetRooms           EventKind = "getRooms"
	EventGetUsers           EventKind = "getUsers"
	EventCreateRoom         EventKind = "createRoom"
	EventAddUserToRoom      EventKind = "addUserToRoom"
	EventRemoveUserFromRoom EventKind = "removeUserFromRoom"

	// 僅服務端發出的事件
	EventError               EventKind = "error"
	EventRoomCreated         EventKind = "roomCreated"
	EventUserAddedToRoom     EventKind = "userAddedToRoom"
	EventUserRemovedFromRoom EventKind = "userRemovedFromRoom"
)

// Envelope 連線上的雙向封包：事件名加上 JSON 內容
type Envelope struct {
	Event EventKind       `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ErrorPayload error 事件的內容，帶錯誤種類與訊息
type ErrorPayload struct {
	Kind    apperr.Code `json:"kind"`
	Message string      `json:"message"`
}

// newEnvelope 組裝一個事件封包
func newEnvelope(event EventKind, data interface{}) ([]byte, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}

// messagePayload message 事件的內容
type messagePayload struct {
	Message *models.Message `json:"message"`
}

// decodeMessagePayload 解析 message 事件的內容。
// 有些客戶端先把整個 payload 序列化成字串再發送，這裡兩種形態都接受。
func decodeMessagePayload(data json.RawMessage) (*models.Message, error) {
	raw := []byte(data)
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		raw = []byte(s)
	}

	var payload messagePayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Message == nil {
		return nil, apperr.InvalidArg("failed to parse message payload")
	}
	return payload.Message, nil
}

// roomMemberPayload addUserToRoom / removeUserFromRoom 事件的內容
type roomMemberPayload struct {
	UserID uint `json:"userId"`
	RoomID uint `json:"roomId"`
}

// createRoomPayload createRoom 事件的內容
type createRoomPayload struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

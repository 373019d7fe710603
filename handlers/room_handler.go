package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Ireoo/sixin-server/models"
)

// roomResponse 房間相關接口的統一響應格式
type roomResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func sendRoomJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	writeJSON(w, statusCode, roomResponse{Success: true, Data: data})
}

func sendRoomError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		message = "Internal server error"
	}
	writeJSON(w, status, roomResponse{Success: false, Error: message})
}

// GetRooms 返回所有房間及成員快照
func (h *HTTPHandler) GetRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.db.GetAllRooms(r.Context())
	if err != nil {
		sendRoomError(w, err)
		return
	}
	sendRoomJSON(w, http.StatusOK, rooms)
}

// CreateRoom 建立房間，房主自動成為成員
func (h *HTTPHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("JSON decode error: %v", err)
		writeJSON(w, http.StatusBadRequest, roomResponse{Success: false, Error: "Invalid request payload"})
		return
	}

	room := models.Room{Name: req.Name, OwnerID: req.OwnerID, Avatar: req.Avatar}
	if err := h.db.CreateRoom(r.Context(), &room); err != nil {
		sendRoomError(w, err)
		return
	}
	sendRoomJSON(w, http.StatusCreated, room)
}

// GetRoom 返回指定房間
func (h *HTTPHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, roomResponse{Success: false, Error: "Invalid room ID"})
		return
	}

	room, err := h.db.GetRoomByID(r.Context(), id)
	if err != nil {
		sendRoomError(w, err)
		return
	}
	sendRoomJSON(w, http.StatusOK, room)
}

// GetRoomMembers 返回房間成員的使用者 ID 集合
func (h *HTTPHandler) GetRoomMembers(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, roomResponse{Success: false, Error: "Invalid room ID"})
		return
	}

	members, err := h.db.GetRoomMembers(r.Context(), id)
	if err != nil {
		sendRoomError(w, err)
		return
	}
	sendRoomJSON(w, http.StatusOK, members)
}

// AddRoomMember 將使用者加入房間，重複加入為冪等操作
func (h *HTTPHandler) AddRoomMember(w http.ResponseWriter, r *http.Request) {
	roomID, ok := parseID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, roomResponse{Success: false, Error: "Invalid room ID"})
		return
	}
	userID, ok := parseID(r, "userId")
	if !ok {
		writeJSON(w, http.StatusBadRequest, roomResponse{Success: false, Error: "Invalid user ID"})
		return
	}

	// 先確認兩邊都存在
	if _, err := h.db.GetRoomByID(r.Context(), roomID); err != nil {
		sendRoomError(w, err)
		return
	}
	if _, err := h.db.GetUserByID(r.Context(), userID); err != nil {
		sendRoomError(w, err)
		return
	}

	if err := h.db.AddUserToRoom(r.Context(), userID, roomID, "", false); err != nil {
		sendRoomError(w, err)
		return
	}
	sendRoomJSON(w, http.StatusOK, map[string]uint{"userId": userID, "roomId": roomID})
}

// RemoveRoomMember 將使用者移出房間
func (h *HTTPHandler) RemoveRoomMember(w http.ResponseWriter, r *http.Request) {
	roomID, ok := parseID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, roomResponse{Success: false, Error: "Invalid room ID"})
		return
	}
	userID, ok := parseID(r, "userId")
	if !ok {
		writeJSON(w, http.StatusBadRequest, roomResponse{Success: false, Error: "Invalid user ID"})
		return
	}

	if err := h.db.RemoveUserFromRoom(r.Context(), userID, roomID); err != nil {
		sendRoomError(w, err)
		return
	}
	sendRoomJSON(w, http.StatusOK, map[string]uint{"userId": userID, "roomId": roomID})
}

package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Ireoo/sixin-server/models"
)

// parseID 從路徑參數解析數值 ID
func parseID(r *http.Request, key string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[key], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// GetUsers 返回所有使用者
func (h *HTTPHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.db.GetAllUsers(r.Context())
	if err != nil {
		sendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// CreateUser 建立使用者，成功返回 201 與分配的 ID
func (h *HTTPHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("JSON decode error: %v", err)
		sendJSONError(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	user := models.User{Name: req.Name, Email: req.Email}
	if err := h.db.CreateUser(r.Context(), &user); err != nil {
		sendError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// GetUser 返回指定使用者，不存在返回 404
func (h *HTTPHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		sendJSONError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	user, err := h.db.GetUserByID(r.Context(), id)
	if err != nil {
		sendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateUser 部分更新使用者欄位
func (h *HTTPHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		sendJSONError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	var update models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Printf("JSON decode error: %v", err)
		sendJSONError(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	user, err := h.db.UpdateUser(r.Context(), id, update)
	if err != nil {
		sendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// DeleteUser 刪除使用者；歷史消息保留不動
func (h *HTTPHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		sendJSONError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	if err := h.db.DeleteUser(r.Context(), id); err != nil {
		sendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Ireoo/sixin-server/database"
	"github.com/Ireoo/sixin-server/models"
	apperr "github.com/Ireoo/sixin-server/pkg/errors"
)

// HTTPHandler 持有資料庫管理器，所有 API 處理函數掛在其上
type HTTPHandler struct {
	db database.DatabaseManager
}

// NewHTTPHandler 建立 HTTP 處理器
func NewHTTPHandler(db database.DatabaseManager) *HTTPHandler {
	return &HTTPHandler{db: db}
}

// RegisterRoutes 註冊所有 API 路由
func (h *HTTPHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/ping", h.Ping).Methods("GET")

	router.HandleFunc("/api/users", h.GetUsers).Methods("GET")
	router.HandleFunc("/api/users", h.CreateUser).Methods("POST")
	router.HandleFunc("/api/users/{id}", h.GetUser).Methods("GET")
	router.HandleFunc("/api/users/{id}", h.UpdateUser).Methods("PUT")
	router.HandleFunc("/api/users/{id}", h.DeleteUser).Methods("DELETE")

	router.HandleFunc("/api/rooms", h.GetRooms).Methods("GET")
	router.HandleFunc("/api/rooms", h.CreateRoom).Methods("POST")
	router.HandleFunc("/api/rooms/{id}", h.GetRoom).Methods("GET")
	router.HandleFunc("/api/rooms/{id}/members", h.GetRoomMembers).Methods("GET")
	router.HandleFunc("/api/rooms/{id}/members/{userId}", h.AddRoomMember).Methods("POST")
	router.HandleFunc("/api/rooms/{id}/members/{userId}", h.RemoveRoomMember).Methods("DELETE")
}

// Ping 存活探測
func (h *HTTPHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}

// writeJSON 輸出 JSON 響應
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

// sendJSONError 統一發送 JSON 格式錯誤響應
func sendJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, models.ErrorResponse{Message: message})
}

// statusOf 將錯誤種類對應到 HTTP 狀態碼
func statusOf(err error) int {
	switch apperr.CodeOf(err) {
	case apperr.CodeInvalidArgument:
		return http.StatusBadRequest
	case apperr.CodeNotFound:
		return http.StatusNotFound
	case apperr.CodeAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// sendError 依錯誤種類回報；內部錯誤不外洩細節
func sendError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		sendJSONError(w, "Internal server error", status)
		return
	}
	sendJSONError(w, err.Error(), status)
}

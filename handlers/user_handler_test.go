package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ireoo/sixin-server/database"
	"github.com/Ireoo/sixin-server/models"
)

// setupRouter 建立帶 in-memory SQLite 的測試路由
func setupRouter(t *testing.T) *mux.Router {
	t.Helper()

	db, err := database.NewSQLiteManager(":memory:")
	require.NoError(t, err)

	router := mux.NewRouter()
	NewHTTPHandler(db).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestPing(t *testing.T) {
	router := setupRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/ping", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pong", resp["message"])
}

// TestUserCRUDScenario 走一遍完整的使用者生命週期：
// 建立 → 查詢 → 更新 → 刪除 → 再查詢返回 404
func TestUserCRUDScenario(t *testing.T) {
	router := setupRouter(t)

	// 建立使用者，應該返回 201 與分配的 ID
	rec := doJSON(t, router, http.MethodPost, "/api/users",
		models.CreateUserRequest{Name: "测试用户", Email: "test@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID, "建立使用者後應該返回非空 ID")
	assert.Equal(t, "测试用户", created.Name)

	userPath := fmt.Sprintf("/api/users/%d", created.ID)

	// 查詢返回相同的欄位
	rec = doJSON(t, router, http.MethodGet, userPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "测试用户", got.Name)
	assert.Equal(t, "test@example.com", got.Email)

	// 部分更新
	name := "更新的用戶名"
	rec = doJSON(t, router, http.MethodPut, userPath, models.UserUpdate{Name: &name})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "更新的用戶名", updated.Name)
	assert.Equal(t, "test@example.com", updated.Email)

	// 刪除後再查詢返回 404
	rec = doJSON(t, router, http.MethodDelete, userPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, userPath, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateUserValidation(t *testing.T) {
	router := setupRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/users", models.CreateUserRequest{Name: "no-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/users",
		models.CreateUserRequest{Name: "bad-email", Email: "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUsersList(t *testing.T) {
	router := setupRouter(t)

	for i := 0; i < 3; i++ {
		rec := doJSON(t, router, http.MethodPost, "/api/users",
			models.CreateUserRequest{Name: fmt.Sprintf("user-%d", i), Email: fmt.Sprintf("u%d@example.com", i)})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var users []models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Len(t, users, 3)
}

func TestUserNotFoundResponses(t *testing.T) {
	router := setupRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/users/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	name := "x"
	rec = doJSON(t, router, http.MethodPut, "/api/users/999", models.UserUpdate{Name: &name})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/users/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoomEndpoints(t *testing.T) {
	router := setupRouter(t)

	// 先建立房主與成員
	rec := doJSON(t, router, http.MethodPost, "/api/users",
		models.CreateUserRequest{Name: "owner", Email: "owner@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var owner models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &owner))

	rec = doJSON(t, router, http.MethodPost, "/api/users",
		models.CreateUserRequest{Name: "member", Email: "member@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var member models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &member))

	// 建立房間
	rec = doJSON(t, router, http.MethodPost, "/api/rooms",
		models.CreateRoomRequest{Name: "general", OwnerID: owner.ID})
	require.Equal(t, http.StatusCreated, rec.Code)

	var createResp struct {
		Success bool        `json:"success"`
		Data    models.Room `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &createResp))
	assert.True(t, createResp.Success)
	require.NotZero(t, createResp.Data.ID)
	roomID := createResp.Data.ID

	// 加入成員並驗證成員列表
	rec = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/rooms/%d/members/%d", roomID, member.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/rooms/%d/members", roomID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var membersResp struct {
		Success bool   `json:"success"`
		Data    []uint `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &membersResp))
	assert.ElementsMatch(t, []uint{owner.ID, member.ID}, membersResp.Data)

	// 移除成員
	rec = doJSON(t, router, http.MethodDelete,
		fmt.Sprintf("/api/rooms/%d/members/%d", roomID, member.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// 不存在的房間返回 404
	rec = doJSON(t, router, http.MethodGet, "/api/rooms/999/members", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

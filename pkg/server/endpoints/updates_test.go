package endpoints

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/shiplog/pkg/model"
	"github.com/doodlesbykumbi/shiplog/pkg/server/store"
)

func testUpdate() *model.Update {
	return &model.Update{
		ID:        updateID,
		CreatedAt: fixedTime,
		UpdatedAt: fixedTime,
		Title:     "Dark mode",
		Body:      "Now with **bold** colors.",
		Status:    model.UpdateStatusLive,
		Version:   ptr("1.2.0"),
		ProductID: productID,
	}
}

func TestListUpdates(t *testing.T) {
	env := newTestEnv(t)
	env.updates.On("ListUpdates", anyCtx, aliceID).Return([]model.Update{*testUpdate()}, nil).Once()

	w := env.as(t, "GET", "/api/update", "")

	require.Equal(t, http.StatusOK, w.Code)
	var updates []model.Update
	decodeData(t, w, &updates)
	require.Len(t, updates, 1)
	assert.Equal(t, model.UpdateStatusLive, updates[0].Status)
	assert.Contains(t, w.Body.String(), `"status":"LIVE"`)
}

func TestFetchUpdate(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		env := newTestEnv(t)
		env.updates.On("FetchUpdate", anyCtx, aliceID, updateID).Return(testUpdate(), nil).Once()

		w := env.as(t, "GET", "/api/update/"+updateID, "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "bodyHtml")
	})

	t.Run("rendered", func(t *testing.T) {
		env := newTestEnv(t)
		env.updates.On("FetchUpdate", anyCtx, aliceID, updateID).Return(testUpdate(), nil).Once()

		w := env.as(t, "GET", "/api/update/"+updateID+"?render=html", "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp UpdateResponse
		decodeData(t, w, &resp)
		assert.Equal(t, "Dark mode", resp.Title)
		assert.Contains(t, resp.BodyHTML, "<strong>bold</strong>")
	})

	t.Run("not owned", func(t *testing.T) {
		env := newTestEnv(t)
		env.updates.On("FetchUpdate", anyCtx, aliceID, updateID).Return(nil, store.ErrUpdateNotFound).Once()

		w := env.as(t, "GET", "/api/update/"+updateID, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"No update found"}`, w.Body.String())
	})
}

func TestCreateUpdate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		env := newTestEnv(t)
		env.updates.On("CreateUpdate", anyCtx, aliceID, mock.MatchedBy(func(u *model.Update) bool {
			return u.Title == "Dark mode" &&
				u.Status == model.UpdateStatusDeprecated &&
				u.ProductID == productID &&
				u.Version != nil && *u.Version == "1.2.0"
		})).Return(nil).Once()

		w := env.as(t, "POST", "/api/update",
			`{"title":"Dark mode","body":"Ships today","status":"DEPRECATED","version":"1.2.0","productId":"`+productID+`"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		var update model.Update
		decodeData(t, w, &update)
		assert.Equal(t, model.UpdateStatusDeprecated, update.Status)
	})

	t.Run("product not owned", func(t *testing.T) {
		env := newTestEnv(t)
		env.updates.On("CreateUpdate", anyCtx, aliceID, mock.Anything).Return(store.ErrProductNotFound).Once()

		w := env.as(t, "POST", "/api/update",
			`{"title":"Dark mode","body":"Ships today","status":"LIVE","productId":"`+productID+`"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"No product found"}`, w.Body.String())
	})

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"title too short", `{"title":"abc","body":"Ships today","status":"LIVE","productId":"` + productID + `"}`, "title"},
		{"body missing", `{"title":"Dark mode","status":"LIVE","productId":"` + productID + `"}`, "body"},
		{"status missing", `{"title":"Dark mode","body":"Ships today","productId":"` + productID + `"}`, "status"},
		{"unknown status", `{"title":"Dark mode","body":"Ships today","status":"SHIPPED","productId":"` + productID + `"}`, "status"},
		{"lower case status", `{"title":"Dark mode","body":"Ships today","status":"live","productId":"` + productID + `"}`, "status"},
		{"product id not a uuid", `{"title":"Dark mode","body":"Ships today","status":"LIVE","productId":"latest"}`, "productId"},
		{"empty version", `{"title":"Dark mode","body":"Ships today","status":"LIVE","version":"","productId":"` + productID + `"}`, "version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			w := env.as(t, "POST", "/api/update", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			_, fields := decodeError(t, w)
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestPatchUpdate(t *testing.T) {
	t.Run("status only", func(t *testing.T) {
		env := newTestEnv(t)
		archived := model.UpdateStatusArchived
		patched := testUpdate()
		patched.Status = archived
		env.updates.On("PatchUpdate", anyCtx, aliceID, updateID, store.UpdatePatch{Status: &archived}).
			Return(patched, nil).Once()

		w := env.as(t, "PUT", "/api/update/"+updateID, `{"status":"ARCHIVED"}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ARCHIVED"`)
	})

	t.Run("invalid title", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.as(t, "PUT", "/api/update/"+updateID, `{"title":"ab"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		_, fields := decodeError(t, w)
		assert.Contains(t, fields, "title")
	})

	t.Run("not owned", func(t *testing.T) {
		env := newTestEnv(t)
		env.updates.On("PatchUpdate", anyCtx, aliceID, updateID, mock.Anything).Return(nil, store.ErrUpdateNotFound).Once()

		w := env.as(t, "PUT", "/api/update/"+updateID, `{"title":"Hijacked"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteUpdate(t *testing.T) {
	env := newTestEnv(t)
	env.updates.On("DeleteUpdate", anyCtx, aliceID, updateID).Return(testUpdate(), nil).Once()

	w := env.as(t, "DELETE", "/api/update/"+updateID, "")

	require.Equal(t, http.StatusOK, w.Code)
	var update model.Update
	decodeData(t, w, &update)
	assert.Equal(t, updateID, update.ID)
}

package endpoints

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/shiplog/pkg/apierror"
	"github.com/doodlesbykumbi/shiplog/pkg/markdown"
	"github.com/doodlesbykumbi/shiplog/pkg/model"
	"github.com/doodlesbykumbi/shiplog/pkg/server"
	"github.com/doodlesbykumbi/shiplog/pkg/server/store"
)

const msgNoUpdate = "No update found"

// CreateUpdateRequest is the body of POST /api/update.
type CreateUpdateRequest struct {
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	Status    string  `json:"status"`
	Version   *string `json:"version"`
	Asset     *string `json:"asset"`
	ProductID string  `json:"productId"`
}

func (c CreateUpdateRequest) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required, validation.RuneLength(4, 255)),
		validation.Field(&c.Body, validation.Required, validation.RuneLength(4, 255)),
		validation.Field(&c.Status, validation.Required, statusRule()),
		validation.Field(&c.Version, validation.NilOrNotEmpty, validation.RuneLength(1, 255)),
		validation.Field(&c.Asset, validation.NilOrNotEmpty, validation.RuneLength(1, 255)),
		validation.Field(&c.ProductID, validation.Required, is.UUID),
	)
}

// PatchUpdateRequest is the body of PUT /api/update/{id}. Absent fields are
// left unchanged.
type PatchUpdateRequest struct {
	Title   *string `json:"title"`
	Body    *string `json:"body"`
	Status  *string `json:"status"`
	Version *string `json:"version"`
	Asset   *string `json:"asset"`
}

func (p PatchUpdateRequest) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.NilOrNotEmpty, validation.RuneLength(4, 255)),
		validation.Field(&p.Body, validation.NilOrNotEmpty, validation.RuneLength(4, 255)),
		validation.Field(&p.Status, validation.NilOrNotEmpty, statusRule()),
		validation.Field(&p.Version, validation.NilOrNotEmpty, validation.RuneLength(1, 255)),
		validation.Field(&p.Asset, validation.NilOrNotEmpty, validation.RuneLength(1, 255)),
	)
}

func (p PatchUpdateRequest) patch() (store.UpdatePatch, error) {
	patch := store.UpdatePatch{
		Title:   p.Title,
		Body:    p.Body,
		Version: p.Version,
		Asset:   p.Asset,
	}
	if p.Status != nil {
		status, err := model.UpdateStatusString(*p.Status)
		if err != nil {
			return patch, err
		}
		patch.Status = &status
	}
	return patch, nil
}

// UpdateResponse is an update, optionally with its body rendered to HTML.
type UpdateResponse struct {
	model.Update
	BodyHTML string `json:"bodyHtml,omitempty"`
}

// RegisterUpdateEndpoints registers /api/update routes.
func RegisterUpdateEndpoints(s *server.Server) {
	updates := s.UpdatesStore

	s.API.HandleFunc("/update", handleListUpdates(updates)).Methods("GET")
	s.API.HandleFunc("/update", handleCreateUpdate(updates)).Methods("POST")
	// GET /api/update/{id}?render=html adds bodyHtml
	s.API.HandleFunc("/update/{id}", handleFetchUpdate(updates)).Methods("GET")
	s.API.HandleFunc("/update/{id}", handlePatchUpdate(updates)).Methods("PUT")
	s.API.HandleFunc("/update/{id}", handleDeleteUpdate(updates)).Methods("DELETE")
}

func updateError(err error) error {
	switch {
	case errors.Is(err, store.ErrUpdateNotFound):
		return apierror.NotFound(msgNoUpdate)
	case errors.Is(err, store.ErrProductNotFound):
		return apierror.NotFound(msgNoProduct)
	}
	return apierror.Internal(err)
}

func handleListUpdates(updates store.UpdatesStore) http.HandlerFunc {
	return handle(func(w http.ResponseWriter, r *http.Request) error {
		id, err := requestIdentity(r)
		if err != nil {
			return err
		}

		list, err := updates.ListUpdates(r.Context(), id.ID)
		if err != nil {
			return apierror.Internal(err)
		}
		respondWithData(w, http.StatusOK, list)
		return nil
	})
}

func handleFetchUpdate(updates store.UpdatesStore) http.HandlerFunc {
	return handle(func(w http.ResponseWriter, r *http.Request) error {
		id, err := requestIdentity(r)
		if err != nil {
			return err
		}

		update, err := updates.FetchUpdate(r.Context(), id.ID, mux.Vars(r)["id"])
		if err != nil {
			return updateError(err)
		}

		response := UpdateResponse{Update: *update}
		if r.URL.Query().Get("render") == "html" {
			if response.BodyHTML, err = markdown.Render(update.Body); err != nil {
				return apierror.Internal(err)
			}
		}
		respondWithData(w, http.StatusOK, response)
		return nil
	})
}

func handleCreateUpdate(updates store.UpdatesStore) http.HandlerFunc {
	return handle(func(w http.ResponseWriter, r *http.Request) error {
		id, err := requestIdentity(r)
		if err != nil {
			return err
		}

		var req CreateUpdateRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return err
		}
		if err := validate(req); err != nil {
			return err
		}

		status, err := model.UpdateStatusString(req.Status)
		if err != nil {
			return apierror.Validation(map[string]string{"status": err.Error()})
		}

		update := &model.Update{
			Title:     req.Title,
			Body:      req.Body,
			Status:    status,
			Version:   req.Version,
			Asset:     req.Asset,
			ProductID: req.ProductID,
		}
		if err := updates.CreateUpdate(r.Context(), id.ID, update); err != nil {
			return updateError(err)
		}
		respondWithData(w, http.StatusCreated, update)
		return nil
	})
}

func handlePatchUpdate(updates store.UpdatesStore) http.HandlerFunc {
	return handle(func(w http.ResponseWriter, r *http.Request) error {
		id, err := requestIdentity(r)
		if err != nil {
			return err
		}

		var req PatchUpdateRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return err
		}
		if err := validate(req); err != nil {
			return err
		}
		patch, err := req.patch()
		if err != nil {
			return apierror.Validation(map[string]string{"status": err.Error()})
		}

		update, err := updates.PatchUpdate(r.Context(), id.ID, mux.Vars(r)["id"], patch)
		if err != nil {
			return updateError(err)
		}
		respondWithData(w, http.StatusOK, update)
		return nil
	})
}

func handleDeleteUpdate(updates store.UpdatesStore) http.HandlerFunc {
	return handle(func(w http.ResponseWriter, r *http.Request) error {
		id, err := requestIdentity(r)
		if err != nil {
			return err
		}

		update, err := updates.DeleteUpdate(r.Context(), id.ID, mux.Vars(r)["id"])
		if err != nil {
			return updateError(err)
		}
		respondWithData(w, http.StatusOK, update)
		return nil
	})
}

package endpoints

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/shiplog/pkg/apierror"
	"github.com/doodlesbykumbi/shiplog/pkg/model"
	"github.com/doodlesbykumbi/shiplog/pkg/server"
	"github.com/doodlesbykumbi/shiplog/pkg/server/store"
)

const msgNoUpdatePoint = "No update point found"

type CreateUpdatePointRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	UpdateID    string `json:"updateId"`
}

func (c CreateUpdatePointRequest) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&c.Description, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&c.UpdateID, validation.Required, is.UUID),
	)
}

type PatchUpdatePointRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (p PatchUpdatePointRequest) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.NilOrNotEmpty, validation.RuneLength(1, 255)),
		validation.Field(&p.Description, validation.NilOrNotEmpty, validation.RuneLength(1, 255)),
	)
}

// RegisterUpdatePointEndpoints registers /api/updatepoint routes.
func RegisterUpdatePointEndpoints(s *server.Server) {
	points := s.UpdatePointsStore

	s.API.HandleFunc("/updatepoint", handleListUpdatePoints(points)).Methods("GET")
	s.API.HandleFunc("/updatepoint", handleCreateUpdatePoint(points)).Methods("POST")
	s.API.HandleFunc("/updatepoint/{id}", handleFetchUpdatePoint(points)).Methods("GET")
	s.API.HandleFunc("/updatepoint/{id}", handlePatchUpdatePoint(points)).Methods("PUT")
	s.API.HandleFunc("/updatepoint/{id}", handleDeleteUpdatePoint(points)).Methods("DELETE")
}

func updatePointError(err error) error {
	switch {
	case errors.Is(err, store.ErrUpdatePointNotFound):
		return apierror.NotFound(msgNoUpdatePoint)
	case errors.Is(err, store.ErrUpdateNotFound):
		return apierror.NotFound(msgNoUpdate)
	}
	return apierror.Internal(err)
}

func handleListUpdatePoints(points store.UpdatePointsStore) http.HandlerFunc {
	return handle(func(w http.ResponseWriter, r *http.Request) error {
		id, err := requestIdentity(r)
		if err != nil {
			return err
		}

		list, err := points.ListUpdatePoints(r.Context(), id.ID)
		if err != nil {
			return apierror.Internal(err)
		}
		respondWithData(w, http.StatusOK, list)
		return nil
	})
}

func handleFetchUpdatePoint(points store.UpdatePointsStore) http.HandlerFunc {
	return handle(func(w http.ResponseWriter, r *http.Request) error {
		id, err := requestIdentity(r)
		if err != nil {
			return err
		}

		point, err := points.FetchUpdatePoint(r.Context(), id.ID, mux.Vars(r)["id"])
		if err != nil {
			return updatePointError(err)
		}
		respondWithData(w, http.StatusOK, point)
		return nil
	})
}

func handleCreateUpdatePoint(points store.UpdatePointsStore) http.HandlerFunc {
	return handle(func(w http.ResponseWriter, r *http.Request) error {
		id, err := requestIdentity(r)
		if err != nil {
			return err
		}

		var req CreateUpdatePointRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return err
		}
		if err := validate(req); err != nil {
			return err
		}

		point := &model.UpdatePoint{
			Name:        req.Name,
			Description: req.Description,
			UpdateID:    req.UpdateID,
		}
		if err := points.CreateUpdatePoint(r.Context(), id.ID, point); err != nil {
			return updatePointError(err)
		}
		respondWithData(w, http.StatusCreated, point)
		return nil
	})
}

func handlePatchUpdatePoint(points store.UpdatePointsStore) http.HandlerFunc {
	return handle(func(w http.ResponseWriter, r *http.Request) error {
		id, err := requestIdentity(r)
		if err != nil {
			return err
		}

		var req PatchUpdatePointRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return err
		}
		if err := validate(req); err != nil {
			return err
		}

		point, err := points.PatchUpdatePoint(r.Context(), id.ID, mux.Vars(r)["id"], store.UpdatePointPatch{
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			return updatePointError(err)
		}
		respondWithData(w, http.StatusOK, point)
		return nil
	})
}

func handleDeleteUpdatePoint(points store.UpdatePointsStore) http.HandlerFunc {
	return handle(func(w http.ResponseWriter, r *http.Request) error {
		id, err := requestIdentity(r)
		if err != nil {
			return err
		}

		point, err := points.DeleteUpdatePoint(r.Context(), id.ID, mux.Vars(r)["id"])
		if err != nil {
			return updatePointError(err)
		}
		respondWithData(w, http.StatusOK, point)
		return nil
	})
}

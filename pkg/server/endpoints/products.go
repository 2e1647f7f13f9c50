package endpoints

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/shiplog/pkg/apierror"
	"github.com/doodlesbykumbi/shiplog/pkg/markdown"
	"github.com/doodlesbykumbi/shiplog/pkg/model"
	"github.com/doodlesbykumbi/shiplog/pkg/server"
	"github.com/doodlesbykumbi/shiplog/pkg/server/store"
)

const msgNoProduct = "No product found"

// ProductRequest is the body of product create and rename.
type ProductRequest struct {
	Name string `json:"name"`
}

func (p ProductRequest) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.RuneLength(4, 255)),
	)
}

// RegisterProductEndpoints registers /api/product routes.
func RegisterProductEndpoints(s *server.Server) {
	products := s.ProductsStore

	s.API.HandleFunc("/product", handleListProducts(products)).Methods("GET")
	s.API.HandleFunc("/product", handleCreateProduct(products)).Methods("POST")
	s.API.HandleFunc("/product/{id}", handleFetchProduct(products)).Methods("GET")
	s.API.HandleFunc("/product/{id}", handleUpdateProduct(products)).Methods("PUT")
	s.API.HandleFunc("/product/{id}", handleDeleteProduct(products)).Methods("DELETE")

	// GET /api/product/{id}/changelog - updates rendered as a Keep a Changelog file
	s.API.HandleFunc("/product/{id}/changelog", handleProductChangelog(products, s.UpdatesStore)).Methods("GET")
}

func productError(err error) error {
	if errors.Is(err, store.ErrProductNotFound) {
		return apierror.NotFound(msgNoProduct)
	}
	return apierror.Internal(err)
}

func handleListProducts(products store.ProductsStore) http.HandlerFunc {
	return handle(func(w http.ResponseWriter, r *http.Request) error {
		id, err := requestIdentity(r)
		if err != nil {
			return err
		}

		list, err := products.ListProducts(r.Context(), id.ID)
		if err != nil {
			return apierror.Internal(err)
		}
		respondWithData(w, http.StatusOK, list)
		return nil
	})
}

func handleFetchProduct(products store.ProductsStore) http.HandlerFunc {
	return handle(func(w http.ResponseWriter, r *http.Request) error {
		id, err := requestIdentity(r)
		if err != nil {
			return err
		}

		product, err := products.FetchProduct(r.Context(), id.ID, mux.Vars(r)["id"])
		if err != nil {
			return productError(err)
		}
		respondWithData(w, http.StatusOK, product)
		return nil
	})
}

func handleCreateProduct(products store.ProductsStore) http.HandlerFunc {
	return handle(func(w http.ResponseWriter, r *http.Request) error {
		id, err := requestIdentity(r)
		if err != nil {
			return err
		}

		var req ProductRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return err
		}
		if err := validate(req); err != nil {
			return err
		}

		product, err := products.CreateProduct(r.Context(), id.ID, req.Name)
		if err != nil {
			return apierror.Internal(err)
		}
		respondWithData(w, http.StatusCreated, product)
		return nil
	})
}

func handleUpdateProduct(products store.ProductsStore) http.HandlerFunc {
	return handle(func(w http.ResponseWriter, r *http.Request) error {
		id, err := requestIdentity(r)
		if err != nil {
			return err
		}

		var req ProductRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return err
		}
		if err := validate(req); err != nil {
			return err
		}

		product, err := products.UpdateProduct(r.Context(), id.ID, mux.Vars(r)["id"], req.Name)
		if err != nil {
			return productError(err)
		}
		respondWithData(w, http.StatusOK, product)
		return nil
	})
}

func handleDeleteProduct(products store.ProductsStore) http.HandlerFunc {
	return handle(func(w http.ResponseWriter, r *http.Request) error {
		id, err := requestIdentity(r)
		if err != nil {
			return err
		}

		product, err := products.DeleteProduct(r.Context(), id.ID, mux.Vars(r)["id"])
		if err != nil {
			return productError(err)
		}
		respondWithData(w, http.StatusOK, product)
		return nil
	})
}

func handleProductChangelog(products store.ProductsStore, updates store.UpdatesStore) http.HandlerFunc {
	return handle(func(w http.ResponseWriter, r *http.Request) error {
		id, err := requestIdentity(r)
		if err != nil {
			return err
		}

		product, err := products.FetchProduct(r.Context(), id.ID, mux.Vars(r)["id"])
		if err != nil {
			return productError(err)
		}

		list, err := updates.ListProductUpdates(r.Context(), id.ID, product.ID)
		if err != nil {
			return productError(err)
		}

		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write([]byte(markdown.WriteChangelog(product.Name, changelogEntries(list))))
		return nil
	})
}

// changelogEntries groups updates, newest first, into one entry per version.
// Updates that are in progress or carry no version go under Unreleased,
// which always comes first.
func changelogEntries(updates []model.Update) []markdown.Entry {
	var unreleased *markdown.Entry
	var released []markdown.Entry
	index := map[string]int{}

	for _, u := range updates {
		section := "### " + u.Title + "\n\n" + u.Body + "\n\n"

		if u.Status == model.UpdateStatusInProgress || u.Version == nil || *u.Version == "" {
			if unreleased == nil {
				unreleased = &markdown.Entry{Version: markdown.Unreleased}
			}
			unreleased.Content += section
			continue
		}

		version := *u.Version
		if i, ok := index[version]; ok {
			released[i].Content += section
			continue
		}
		index[version] = len(released)
		released = append(released, markdown.Entry{
			Version: version,
			Date:    u.CreatedAt.Format("2006-01-02"),
			Content: section,
		})
	}

	entries := make([]markdown.Entry, 0, len(released)+1)
	if unreleased != nil {
		entries = append(entries, *unreleased)
	}
	return append(entries, released...)
}

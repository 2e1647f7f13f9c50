package main

import (
	"context"
	"fmt"

	"github.com/doodlesbykumbi/shiplog/pkg/model"
	"github.com/doodlesbykumbi/shiplog/pkg/server/store"
)

// syncResult counts what a sync changed.
type syncResult struct {
	Created   int
	Patched   int
	Unchanged int
}

func (r syncResult) String() string {
	return fmt.Sprintf("%d created, %d updated, %d unchanged", r.Created, r.Patched, r.Unchanged)
}

// syncUpdates brings a product's updates in line with incoming. Released
// updates are matched by version and the unreleased update by having no
// version, so running it twice on the same changelog writes nothing.
func syncUpdates(ctx context.Context, updates store.UpdatesStore, ownerID, productID string, incoming []model.Update) (syncResult, error) {
	var result syncResult

	existing, err := updates.ListProductUpdates(ctx, ownerID, productID)
	if err != nil {
		return result, err
	}

	byVersion := make(map[string]model.Update, len(existing))
	var unreleased *model.Update
	for i := range existing {
		u := existing[i]
		if u.Version != nil {
			byVersion[*u.Version] = u
		} else if unreleased == nil && u.Status == model.UpdateStatusInProgress {
			unreleased = &u
		}
	}

	for i := range incoming {
		u := &incoming[i]

		var match *model.Update
		if u.Version != nil {
			if found, ok := byVersion[*u.Version]; ok {
				match = &found
			}
		} else {
			match = unreleased
		}

		if match == nil {
			if err := updates.CreateUpdate(ctx, ownerID, u); err != nil {
				return result, fmt.Errorf("create %q: %w", u.Title, err)
			}
			result.Created++
			continue
		}

		if match.Body == u.Body {
			result.Unchanged++
			continue
		}
		body := u.Body
		if _, err := updates.PatchUpdate(ctx, ownerID, match.ID, store.UpdatePatch{Body: &body}); err != nil {
			return result, fmt.Errorf("update %q: %w", match.Title, err)
		}
		result.Patched++
	}
	return result, nil
}

package checkout

import (
	"context"

	"github.com/foodhub-app/client-core/internal/cart"
	"github.com/foodhub-app/client-core/pkg/apiclient"
	pkgerrors "github.com/foodhub-app/client-core/pkg/errors"
)

// Sync phases reported on failure metrics.
const (
	syncPhaseFetch  = "fetch"
	syncPhaseRemove = "remove"
	syncPhaseAdd    = "add"
)

// SyncLocalCart replaces the server-side cart with the given local lines:
// fetch the server cart, delete every existing server line, then re-add
// every local line by meal id and quantity. A full replace, not a diff. Any
// failing call aborts the sync immediately; the local store is never
// touched, so the caller can retry safely.
func (s *Service) SyncLocalCart(ctx context.Context, token string, items []cart.LineItem) error {
	start := s.now()
	if err := s.syncLocalCart(ctx, token, items); err != nil {
		s.metrics.ObserveSync("failure", s.now().Sub(start))
		return err
	}
	s.metrics.ObserveSync("success", s.now().Sub(start))
	return nil
}

func (s *Service) syncLocalCart(ctx context.Context, token string, items []cart.LineItem) error {
	server, err := s.cartAPI.GetCart(ctx, token)
	if err != nil {
		s.metrics.IncSyncFailure(syncPhaseFetch)
		return pkgerrors.Wrap(pkgerrors.CodeSync, err, "fetching server cart")
	}

	for _, line := range server.Items {
		if err := s.cartAPI.RemoveCartItem(ctx, token, line.ID); err != nil {
			s.metrics.IncSyncFailure(syncPhaseRemove)
			return pkgerrors.Wrap(pkgerrors.CodeSync, err, "clearing server cart line "+line.ID)
		}
	}

	for _, line := range items {
		req := apiclient.AddCartItemRequest{MealID: line.ItemID, Quantity: line.Quantity}
		if _, err := s.cartAPI.AddCartItem(ctx, token, req); err != nil {
			s.metrics.IncSyncFailure(syncPhaseAdd)
			return pkgerrors.Wrap(pkgerrors.CodeSync, err, "pushing cart line "+line.ItemID)
		}
	}
	return nil
}

package handlers

import (
	"context"
	"net/http"

	"github.com/agentstation/storefront/internal/server/response"
	"github.com/agentstation/storefront/pkg/errors"
	"github.com/agentstation/storefront/pkg/logging"
	"github.com/agentstation/storefront/pkg/wishlist"
)

// wishlistSummary is the wishlist payload.
type wishlistSummary struct {
	Items []wishlist.Item `json:"items"`
	Count int             `json:"count"`
}

// wishlistChange reports the outcome of a save or toggle.
type wishlistChange struct {
	wishlistSummary
	Added bool `json:"added"`
}

func summarize(ctx context.Context, s *wishlist.Store) wishlistSummary {
	items := s.Items(ctx)
	return wishlistSummary{Items: items, Count: len(items)}
}

// HandleGetWishlist handles GET /api/v1/wishlist.
func (h *Handlers) HandleGetWishlist(w http.ResponseWriter, r *http.Request) {
	response.OK(w, summarize(r.Context(), h.session(r).Wishlist))
}

// HandleAddToWishlist handles POST /api/v1/wishlist. Saving a product that
// is already saved answers 200 instead of 201.
func (h *Handlers) HandleAddToWishlist(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeBody(r, &req); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	p, err := h.product(req.ProductID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	ctx := logging.WithProduct(r.Context(), p.ID)
	s := h.session(r).Wishlist
	added, err := s.AddItem(ctx, wishlist.ItemFor(p))
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("Failed to save to wishlist")
		response.ErrorFromType(w, err)
		return
	}

	change := wishlistChange{wishlistSummary: summarize(ctx, s), Added: added}
	if added {
		response.Created(w, change)
		return
	}
	response.OK(w, change)
}

// HandleRemoveWishlistItem handles DELETE /api/v1/wishlist/items/{index}.
func (h *Handlers) HandleRemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	s := h.session(r).Wishlist
	removed, err := s.RemoveItem(r.Context(), index)
	if err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("Failed to remove wishlist item")
		response.ErrorFromType(w, err)
		return
	}
	summary := summarize(r.Context(), s)
	if !removed {
		response.ErrorFromType(w, errors.NewIndexError("wishlist", index, summary.Count))
		return
	}

	response.OK(w, summary)
}

// HandleToggleWishlist handles POST /api/v1/wishlist/toggle.
func (h *Handlers) HandleToggleWishlist(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeBody(r, &req); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	p, err := h.product(req.ProductID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	ctx := logging.WithProduct(r.Context(), p.ID)
	s := h.session(r).Wishlist
	in, err := s.Toggle(ctx, wishlist.ItemFor(p))
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("Failed to toggle wishlist")
		response.ErrorFromType(w, err)
		return
	}

	response.OK(w, wishlistChange{wishlistSummary: summarize(ctx, s), Added: in})
}

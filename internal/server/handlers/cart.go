package handlers

import (
	"net/http"

	"github.com/agentstation/storefront/internal/server/response"
	"github.com/agentstation/storefront/pkg/cart"
	"github.com/agentstation/storefront/pkg/constants"
	"github.com/agentstation/storefront/pkg/errors"
	"github.com/agentstation/storefront/pkg/logging"
)

// HandleGetCart handles GET /api/v1/cart.
func (h *Handlers) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.session(r).Cart.Summary(r.Context()))
}

// HandleAddToCart handles POST /api/v1/cart.
// The quantity and variant are checked here; the cart itself accepts what
// it is given.
func (h *Handlers) HandleAddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := decodeBody(r, &req); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	p, err := h.product(req.ProductID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	qty := constants.MinQuantity
	if req.Qty != nil {
		qty = *req.Qty
	}
	if err := cart.ValidateQuantity(qty); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if err := cart.ValidateVariant(p, req.Size, req.Color); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	ctx := logging.WithProduct(r.Context(), p.ID)
	c := h.session(r).Cart
	if err := c.AddItem(ctx, cart.ItemFor(p, req.Size, req.Color, qty)); err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("Failed to add to cart")
		response.ErrorFromType(w, err)
		return
	}

	response.Created(w, c.Summary(ctx))
}

// HandleRemoveCartItem handles DELETE /api/v1/cart/items/{index}.
func (h *Handlers) HandleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	c := h.session(r).Cart
	removed, err := c.RemoveItem(r.Context(), index)
	if err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("Failed to remove cart item")
		response.ErrorFromType(w, err)
		return
	}
	summary := c.Summary(r.Context())
	if !removed {
		response.ErrorFromType(w, errors.NewIndexError("cart", index, len(summary.Items)))
		return
	}

	response.OK(w, summary)
}

// HandleClearCart handles DELETE /api/v1/cart.
func (h *Handlers) HandleClearCart(w http.ResponseWriter, r *http.Request) {
	c := h.session(r).Cart
	if err := c.Clear(r.Context()); err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("Failed to clear cart")
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, c.Summary(r.Context()))
}

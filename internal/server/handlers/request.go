package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/agentstation/storefront"
	"github.com/agentstation/storefront/internal/server/session"
	"github.com/agentstation/storefront/pkg/catalog"
	"github.com/agentstation/storefront/pkg/errors"
)

// maxBodyBytes bounds request bodies; the largest legal body is a few
// dozen bytes.
const maxBodyBytes = 4 << 10

// productRequest identifies a product by id. The id may be sent as a JSON
// number or a string.
type productRequest struct {
	ProductID json.Number `json:"product_id"`
}

// cartRequest adds a product variant to the cart. A missing qty means 1.
type cartRequest struct {
	productRequest
	Size  string `json:"size"`
	Color string `json:"color"`
	Qty   *int   `json:"qty"`
}

// decodeBody reads a JSON body into v, rejecting unknown fields.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return errors.NewValidationError("body", nil, "request body is required")
		}
		return errors.NewParseError("json", "", err.Error(), err)
	}
	return nil
}

// product resolves the product a request names.
func (h *Handlers) product(id json.Number) (catalog.Product, error) {
	if id == "" {
		return catalog.Product{}, errors.NewValidationError("product_id", nil, "is required")
	}
	p, ok, err := h.sf.Product(id.String())
	if err != nil {
		return catalog.Product{}, err
	}
	if !ok {
		return catalog.Product{}, errors.NewNotFoundError("product", id.String())
	}
	return p, nil
}

// session returns the stores of the request's session.
func (h *Handlers) session(r *http.Request) storefront.Session {
	return h.sf.Session(session.FromContext(r.Context()))
}

// pathIndex parses the {index} path value.
func pathIndex(r *http.Request) (int, error) {
	raw := r.PathValue("index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError("index", raw, "must be an integer")
	}
	return index, nil
}

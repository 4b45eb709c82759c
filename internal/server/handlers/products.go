package handlers

import (
	"net/http"

	"github.com/agentstation/storefront/internal/server/cache"
	"github.com/agentstation/storefront/internal/server/response"
	"github.com/agentstation/storefront/pkg/catalog"
	"github.com/agentstation/storefront/pkg/constants"
	"github.com/agentstation/storefront/pkg/errors"
	"github.com/agentstation/storefront/pkg/filter"
	"github.com/agentstation/storefront/pkg/search"
)

// productList is the shop page payload.
type productList struct {
	Products []catalog.Product `json:"products"`
	Count    int               `json:"count"`
	Title    string            `json:"title"`
	State    filter.State      `json:"state"`
}

// productDetail is the product page payload.
type productDetail struct {
	catalog.Product
	FormattedPrice string   `json:"formatted_price"`
	Gallery        []string `json:"gallery"`
	Discount       int      `json:"discount,omitempty"`
	InWishlist     bool     `json:"in_wishlist"`
}

// facetList is the filter sidebar payload.
type facetList struct {
	Facets []filter.Facet    `json:"facets"`
	Price  filter.PriceRange `json:"price"`
	Sorts  []filter.SortMode `json:"sorts"`
}

// searchResult is the search dropdown payload.
type searchResult struct {
	search.Result
	Query     string `json:"query"`
	NoResults bool   `json:"no_results"`
}

// HandleListProducts handles GET /api/v1/products.
// Unknown filter values fall back to their defaults rather than failing.
func (h *Handlers) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	state := filter.ParseQuery(r.URL.Query())

	// The canonical query makes equivalent URLs share an entry.
	key := "products:" + state.Query().Encode()
	list := cache.Remember(h.cache, key, func() productList {
		result := h.sf.Filter(state)
		return productList{
			Products: result.Products,
			Count:    result.Count,
			Title:    state.Title(),
			State:    state,
		}
	})

	response.OK(w, list)
}

// HandleGetProduct handles GET /api/v1/products/{id}.
func (h *Handlers) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p, ok, err := h.sf.Product(id)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if !ok {
		response.ErrorFromType(w, errors.NewNotFoundError("product", id))
		return
	}

	response.OK(w, productDetail{
		Product:        p,
		FormattedPrice: catalog.FormatPrice(p.Price),
		Gallery:        p.Gallery(constants.GalleryImageWidth),
		Discount:       p.Discount(),
		InWishlist:     h.session(r).Wishlist.Has(r.Context(), p.Name),
	})
}

// HandleFacets handles GET /api/v1/facets.
func (h *Handlers) HandleFacets(w http.ResponseWriter, _ *http.Request) {
	facets := cache.Remember(h.cache, "facets", func() facetList {
		return facetList{
			Facets: h.sf.Facets(),
			Price:  filter.Prices(h.sf.Catalog().Products()),
			Sorts:  []filter.SortMode{filter.SortFeatured, filter.SortPriceLow, filter.SortPriceHigh},
		}
	})
	response.OK(w, facets)
}

// HandleSearch handles GET /api/v1/search?q=.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	result := h.sf.Search(q)
	response.OK(w, searchResult{
		Result:    result,
		Query:     q,
		NoResults: result.NoResults(),
	})
}

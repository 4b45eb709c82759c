package filter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/agentstation/storefront/pkg/constants"
	"github.com/agentstation/storefront/pkg/errors"
)

// Query parameter names.
const (
	ParamFilter   = "filter"
	ParamCategory = "category"
	ParamSize     = "size"
	ParamColor    = "color"
	ParamMaxPrice = "max_price"
	ParamSort     = "sort"
	ParamID       = "id"
)

// Tag slugs accepted by the filter parameter.
const (
	TagNew        = "new"
	TagBestSeller = "bestseller"
	TagSale       = "sale"
)

// ShopAllTitle is the heading shown when no tag is active.
const ShopAllTitle = "Shop All"

var tagLabels = map[string]string{
	TagNew:        "New Arrivals",
	TagBestSeller: "Best Sellers",
	TagSale:       "Sale",
}

// TagLabel returns the heading for a tag slug, or "" for unknown slugs.
func TagLabel(tag string) string {
	return tagLabels[tag]
}

// Title returns the page heading for s.
func (s State) Title() string {
	if label := TagLabel(s.Tag); label != "" {
		return label
	}
	return ShopAllTitle
}

// ParseQuery builds a State from URL query parameters. Any filter value
// is kept as the tag, so a tag no product carries shows nothing. Unknown
// sort modes and unparsable prices fall back to the defaults.
func ParseQuery(q url.Values) State {
	s := NewState()
	s.Tag = strings.ToLower(strings.TrimSpace(q.Get(ParamFilter)))

	s.Categories = splitValues(q[ParamCategory])
	s.Sizes = splitValues(q[ParamSize])
	s.Colors = splitValues(q[ParamColor])

	if raw := q.Get(ParamMaxPrice); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			s.MaxPrice = v
		}
	}

	if mode := SortMode(q.Get(ParamSort)); mode.Valid() {
		s.Sort = mode
	}

	return s
}

// Query encodes s as URL query parameters. Values equal to the defaults
// are omitted, so NewState encodes to an empty query.
func (s State) Query() url.Values {
	q := url.Values{}
	if s.Tag != "" {
		q.Set(ParamFilter, s.Tag)
	}
	for _, v := range s.Categories {
		q.Add(ParamCategory, v)
	}
	for _, v := range s.Sizes {
		q.Add(ParamSize, v)
	}
	for _, v := range s.Colors {
		q.Add(ParamColor, v)
	}
	if s.MaxPrice != constants.DefaultMaxPrice {
		q.Set(ParamMaxPrice, strconv.FormatFloat(s.MaxPrice, 'f', -1, 64))
	}
	if s.Sort != "" && s.Sort != SortFeatured {
		q.Set(ParamSort, string(s.Sort))
	}
	return q
}

// Clear resets the selection. It returns the default state and a copy of
// query without the filter, product id and facet parameters, suitable for
// rewriting the page URL in place.
func Clear(query url.Values) (State, url.Values) {
	rest := url.Values{}
	for k, v := range query {
		switch k {
		case ParamFilter, ParamID, ParamCategory, ParamSize, ParamColor, ParamMaxPrice, ParamSort:
			continue
		}
		rest[k] = append([]string(nil), v...)
	}
	return NewState(), rest
}

// Toggle adds value to the named set facet, or removes it when already
// selected. The tag facet holds a single value and toggles between that
// value and none.
func (s *State) Toggle(facet, value string) error {
	switch facet {
	case ParamCategory:
		s.Categories = toggle(s.Categories, value)
	case ParamSize:
		s.Sizes = toggle(s.Sizes, value)
	case ParamColor:
		s.Colors = toggle(s.Colors, value)
	case ParamFilter:
		if TagLabel(value) == "" {
			return errors.NewValidationError(facet, value, fmt.Sprintf("unknown tag %q", value))
		}
		if s.Tag == value {
			s.Tag = ""
		} else {
			s.Tag = value
		}
	default:
		return errors.NewValidationError("facet", facet, fmt.Sprintf("unknown facet %q", facet))
	}
	return nil
}

func toggle(values []string, value string) []string {
	for i, v := range values {
		if strings.EqualFold(v, value) {
			return append(values[:i:i], values[i+1:]...)
		}
	}
	return append(values, value)
}

func splitValues(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, v := range strings.Split(r, ",") {
			if v = strings.TrimSpace(v); v != "" && !containsFold(out, v) {
				out = append(out, v)
			}
		}
	}
	return out
}

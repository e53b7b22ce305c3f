package domain

import "strings"

// Upstream keys of a listing record. The backend flattens nested documents into
// dotted keys; nested objects are accepted as well (see Lookup).
const (
	KeyID                        = "Id"
	KeyAddressText               = "Property.Address.AddressText"
	KeyProvinceName              = "ProvinceName"
	KeyLeaseRent                 = "Property.LeaseRent"
	KeyLeaseRentUnformattedValue = "Property.LeaseRentUnformattedValue"
	KeyBedrooms                  = "Building.Bedrooms"
	KeyRelativeURL               = "RelativeURLEn"
)

// StudioLabel is displayed when a listing has no bedroom count.
const StudioLabel = "Studio"

// RawListing is one listing-like mapping exactly as the upstream sent it.
type RawListing map[string]any

// Listing is a rental listing with every field explicitly present or absent.
type Listing struct {
	ID                        OptionalString `json:"id"`
	AddressText               OptionalString `json:"addressText"`
	ProvinceName              OptionalString `json:"provinceName"`
	LeaseRentRaw              OptionalString `json:"leaseRentRaw"`
	LeaseRentUnformattedValue OptionalFloat  `json:"leaseRentUnformattedValue"`
	Bedrooms                  OptionalString `json:"bedrooms"`
	RelativeURL               OptionalString `json:"relativeUrl"`
}

// FromRaw decodes a raw record. Missing or malformed fields become absent values.
func FromRaw(raw RawListing) Listing {
	return Listing{
		ID:                        CoerceString(raw.Lookup(KeyID)),
		AddressText:               CoerceString(raw.Lookup(KeyAddressText)),
		ProvinceName:              CoerceString(raw.Lookup(KeyProvinceName)),
		LeaseRentRaw:              CoerceString(raw.Lookup(KeyLeaseRent)),
		LeaseRentUnformattedValue: CoerceFloat(raw.Lookup(KeyLeaseRentUnformattedValue)),
		Bedrooms:                  CoerceString(raw.Lookup(KeyBedrooms)),
		RelativeURL:               CoerceString(raw.Lookup(KeyRelativeURL)),
	}
}

// FromRawAll decodes records preserving their order. The result is never nil.
func FromRawAll(raws []RawListing) []Listing {
	listings := make([]Listing, 0, len(raws))
	for _, raw := range raws {
		listings = append(listings, FromRaw(raw))
	}
	return listings
}

// Lookup returns the value stored under a dotted key, first as a flat key and
// then by walking nested objects.
func (r RawListing) Lookup(key string) any {
	if r == nil {
		return nil
	}
	if v, ok := r[key]; ok {
		return v
	}
	if !strings.Contains(key, ".") {
		return nil
	}

	var cur any = map[string]any(r)
	for _, part := range strings.Split(key, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil
		}
		if cur, ok = m[part]; !ok {
			return nil
		}
	}
	return cur
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case RawListing:
		return m, true
	default:
		return nil, false
	}
}

// BedroomsLabel is the bedroom count for display, or "Studio".
func (l Listing) BedroomsLabel() string {
	v := strings.TrimSpace(l.Bedrooms.Value)
	if !l.Bedrooms.Valid || v == "" || v == "0" {
		return StudioLabel
	}
	return v
}

// ExternalURL is the third-party listing page, or "" without a relative URL.
func (l Listing) ExternalURL(base string) string {
	if !l.RelativeURL.Valid || l.RelativeURL.Value == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(l.RelativeURL.Value, "/")
}

// Stats summarises the rent of a listing sequence.
type Stats struct {
	Count  int `json:"count"`
	Mean   int `json:"mean"`
	Median int `json:"median"`
}

// Page is one window of a listing sequence.
type Page struct {
	Number     int       `json:"page"`
	Size       int       `json:"pageSize"`
	TotalPages int       `json:"totalPages"`
	Total      int       `json:"total"`
	Start      int       `json:"start"`
	End        int       `json:"end"`
	Items      []Listing `json:"items"`
	HasPrev    bool      `json:"hasPrev"`
	HasNext    bool      `json:"hasNext"`
}

// PrevPage is the page before this one, never below 1.
func (p Page) PrevPage() int {
	if p.Number <= 1 {
		return 1
	}
	return p.Number - 1
}

// NextPage is the page after this one, never beyond the last page.
func (p Page) NextPage() int {
	if !p.HasNext {
		return p.Number
	}
	return p.Number + 1
}

package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRaw_FlatKeys(t *testing.T) {
	raw := RawListing{
		"Id":                                 "26789001",
		"Property.Address.AddressText":       "123 Main St|Toronto, Ontario M5V 2T6",
		"ProvinceName":                       "Ontario",
		"Property.LeaseRent":                 "$2,150/Monthly",
		"Property.LeaseRentUnformattedValue": json.Number("2150"),
		"Building.Bedrooms":                  "2 + 1",
		"RelativeURLEn":                      "/real-estate/26789001/123-main-st-toronto",
	}

	l := FromRaw(raw)
	assert.Equal(t, SomeString("26789001"), l.ID)
	assert.Equal(t, "123 Main St|Toronto, Ontario M5V 2T6", l.AddressText.Value)
	assert.Equal(t, "Ontario", l.ProvinceName.Or(""))
	assert.Equal(t, "$2,150/Monthly", l.LeaseRentRaw.Value)
	assert.Equal(t, SomeFloat(2150), l.LeaseRentUnformattedValue)
	assert.Equal(t, "2 + 1", l.BedroomsLabel())
	assert.Equal(t, "https://www.realtor.ca/real-estate/26789001/123-main-st-toronto", l.ExternalURL("https://www.realtor.ca/"))
}

func TestFromRaw_NestedKeys(t *testing.T) {
	raw := RawListing{
		"Id": json.Number("42"),
		"Property": map[string]any{
			"Address":                   map[string]any{"AddressText": "1 Rue Sainte-Catherine"},
			"LeaseRentUnformattedValue": 1500.0,
		},
		"Building": map[string]any{"Bedrooms": json.Number("3")},
	}

	l := FromRaw(raw)
	assert.Equal(t, "42", l.ID.Value)
	assert.Equal(t, "1 Rue Sainte-Catherine", l.AddressText.Value)
	assert.Equal(t, 1500.0, l.LeaseRentUnformattedValue.Value)
	assert.Equal(t, "3", l.BedroomsLabel())
}

func TestFromRawAll_PreservesOrder(t *testing.T) {
	raws := []RawListing{
		{"Id": "b", "Property.LeaseRentUnformattedValue": "1,200"},
		{"Id": "a"},
		{},
	}
	want := []Listing{
		{ID: SomeString("b"), LeaseRentUnformattedValue: SomeFloat(1200)},
		{ID: SomeString("a")},
		{},
	}

	if diff := cmp.Diff(want, FromRawAll(raws)); diff != "" {
		t.Errorf("FromRawAll() mismatch (-want +got):\n%s", diff)
	}
	assert.NotNil(t, FromRawAll(nil))
}

func TestFromRaw_MissingFieldsDegrade(t *testing.T) {
	l := FromRaw(RawListing{"Property": "not an object"})

	assert.False(t, l.ID.Valid)
	assert.False(t, l.AddressText.Valid)
	assert.False(t, l.LeaseRentUnformattedValue.Valid)
	assert.Equal(t, StudioLabel, l.BedroomsLabel())
	assert.Empty(t, l.ExternalURL("https://www.realtor.ca/"))
}

func TestFromRaw_NilRecord(t *testing.T) {
	l := FromRaw(nil)
	assert.Equal(t, Listing{}, l)
}

func TestBedroomsLabel(t *testing.T) {
	tests := []struct {
		name     string
		bedrooms OptionalString
		want     string
	}{
		{"absent", OptionalString{}, "Studio"},
		{"empty", SomeString(""), "Studio"},
		{"zero", SomeString("0"), "Studio"},
		{"one", SomeString("1"), "1"},
		{"plus den", SomeString("1 + 1"), "1 + 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Listing{Bedrooms: tt.bedrooms}.BedroomsLabel())
		})
	}
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		name  string
		in    any
		want  float64
		valid bool
	}{
		{"float", 1850.0, 1850, true},
		{"json number", json.Number("1999.99"), 1999.99, true},
		{"int", 3, 3, true},
		{"plain string", "2000", 2000, true},
		{"formatted string", " $1,850.00 ", 1850, true},
		{"thousands separator", "1,850", 1850, true},
		{"currency without separator", "$1850", 1850, true},
		{"trailing text", "1500/Monthly", 1500, true},
		{"garbage", "call for price", 0, false},
		{"empty", "", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
		{"nan", math.NaN(), 0, false},
		{"infinity", math.Inf(1), 0, false},
		{"object", map[string]any{"a": 1}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoerceFloat(tt.in)
			require.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.InDelta(t, tt.want, got.Value, 1e-9)
			}
		})
	}
}

func TestCoerceString(t *testing.T) {
	assert.Equal(t, SomeString("abc"), CoerceString("abc"))
	assert.Equal(t, SomeString("12"), CoerceString(json.Number("12")))
	assert.Equal(t, SomeString("12.5"), CoerceString(12.5))
	assert.Equal(t, SomeString("true"), CoerceString(true))
	assert.False(t, CoerceString(nil).Valid)
	assert.False(t, CoerceString(math.Inf(-1)).Valid)
	assert.False(t, CoerceString([]any{"a"}).Valid)
}

func TestListing_MarshalJSON_AbsentIsNull(t *testing.T) {
	data, err := json.Marshal(Listing{ID: SomeString("7"), LeaseRentUnformattedValue: SomeFloat(1200)})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": "7",
		"addressText": null,
		"provinceName": null,
		"leaseRentRaw": null,
		"leaseRentUnformattedValue": 1200,
		"bedrooms": null,
		"relativeUrl": null
	}`, string(data))
}

func TestPage_Navigation(t *testing.T) {
	p := Page{Number: 1, TotalPages: 3, HasNext: true}
	assert.Equal(t, 1, p.PrevPage())
	assert.Equal(t, 2, p.NextPage())

	last := Page{Number: 3, TotalPages: 3, HasPrev: true}
	assert.Equal(t, 2, last.PrevPage())
	assert.Equal(t, 3, last.NextPage())
}

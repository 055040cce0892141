package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkamesh/arka/internal/record"
)

func TestParseNeedItem(t *testing.T) {
	item, err := parseNeedItem("insulin:2")
	require.NoError(t, err)
	assert.Equal(t, record.NeedItem{Item: "insulin", Quantity: 2}, item)

	item, err = parseNeedItem("insulin:2:vials")
	require.NoError(t, err)
	assert.Equal(t, record.NeedItem{Item: "insulin", Quantity: 2, Unit: "vials"}, item)

	item, err = parseNeedItem(" water : 40 ")
	require.NoError(t, err)
	assert.Equal(t, record.NeedItem{Item: "water", Quantity: 40}, item)
}

func TestParseNeedItem_Invalid(t *testing.T) {
	for _, spec := range []string{"insulin", ":2", "insulin:two", ""} {
		_, err := parseNeedItem(spec)
		assert.Error(t, err, "spec %q", spec)
	}
}

func TestParseOfferItem(t *testing.T) {
	item, err := parseOfferItem("insulin:5")
	require.NoError(t, err)
	assert.Equal(t, record.OfferItem{Item: "insulin", Quantity: 5}, item)

	item, err = parseOfferItem("insulin:5:cold_chain,fragile")
	require.NoError(t, err)
	assert.Equal(t, "insulin", item.Item)
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, map[string]bool{"cold_chain": true, "fragile": true}, item.Dimensions)
}

func TestParseOfferItem_NoDimensions(t *testing.T) {
	item, err := parseOfferItem("water:100:")
	require.NoError(t, err)
	assert.Nil(t, item.Dimensions)
}

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/catalog"
)

func TestDefault_ParsesEmbeddedFile(t *testing.T) {
	c, err := catalog.Default()

	require.NoError(t, err)
	require.NotEmpty(t, c.List())

	d, ok := c.Lookup("paris")
	require.True(t, ok)
	assert.Equal(t, "Paris", d.Name)
	assert.Equal(t, "France", d.Country)
	assert.NotEmpty(t, d.Image)
}

func TestLookup_Unknown(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	_, ok := c.Lookup("atlantis")

	assert.False(t, ok)
}

func TestParse_PreservesOrder(t *testing.T) {
	c, err := catalog.Parse([]byte(`
destinations:
  - {id: b, name: Bravo}
  - {id: a, name: Alpha}
`))

	require.NoError(t, err)
	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "a", list[1].ID)
}

func TestParse_DuplicateID(t *testing.T) {
	_, err := catalog.Parse([]byte(`
destinations:
  - {id: a, name: Alpha}
  - {id: a, name: Again}
`))

	require.Error(t, err)
	assert.ErrorContains(t, err, "duplicate")
}

func TestParse_MissingName(t *testing.T) {
	_, err := catalog.Parse([]byte(`destinations: [{id: a}]`))

	assert.Error(t, err)
}

func TestParse_Malformed(t *testing.T) {
	_, err := catalog.Parse([]byte("destinations: [unterminated"))

	assert.Error(t, err)
}

func TestList_ReturnsCopy(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	list := c.List()
	list[0].Name = "changed"

	assert.NotEqual(t, "changed", c.List()[0].Name)
}

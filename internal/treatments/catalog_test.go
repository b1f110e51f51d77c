package treatments

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	list := c.List()
	require.Len(t, list, 5)
	assert.Equal(t, "relaxing-massage", list[0].ID)

	massage, err := c.Get("relaxing-massage")
	require.NoError(t, err)
	assert.Equal(t, 60, massage.DurationMinutes)
	assert.Equal(t, CategoryMassage, massage.Category)

	_, err = c.Get("hot-stones")
	assert.True(t, errors.Is(err, ErrTreatmentNotFound))
}

func TestDurationMinutes(t *testing.T) {
	c := DefaultCatalog()

	d, ok := c.DurationMinutes("body-treatment")
	assert.True(t, ok)
	assert.Equal(t, 90, d)

	_, ok = c.DurationMinutes("missing")
	assert.False(t, ok)
}

func TestByCategory(t *testing.T) {
	c := DefaultCatalog()

	massages := c.ByCategory(CategoryMassage)
	require.Len(t, massages, 2)
	assert.Equal(t, "Relaxing Massage", massages[0].Name)
	assert.Equal(t, "Sports Massage", massages[1].Name)

	assert.Empty(t, c.ByCategory(Category("spa-day")))
}

func TestNewCatalogRejectsBadData(t *testing.T) {
	_, err := NewCatalog([]Treatment{{ID: "", Name: "Nameless", DurationMinutes: 30}})
	assert.Error(t, err)

	_, err = NewCatalog([]Treatment{
		{ID: "dup", Name: "One", DurationMinutes: 30},
		{ID: "dup", Name: "Two", DurationMinutes: 45},
	})
	assert.Error(t, err)

	_, err = NewCatalog([]Treatment{{ID: "zero", Name: "Zero", DurationMinutes: 0}})
	assert.Error(t, err)
}

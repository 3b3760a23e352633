package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chris-shaw-2011/geo-time-tracker/internal/models"
)

func TestCacheReplaceAndClearIf(t *testing.T) {
	c := NewCache()
	assert.Nil(t, c.Active())

	tc := &models.Timecard{ID: "a"}
	c.Replace(tc)
	assert.Equal(t, "a", c.Active().ID)

	// wrong id leaves the cache alone
	c.ClearIf("b")
	assert.NotNil(t, c.Active())

	c.ClearIf("a")
	assert.Nil(t, c.Active())
}

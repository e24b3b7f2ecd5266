package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, Page{Page: 1, Limit: DefaultLimit}, Normalize(0, 0))
	assert.Equal(t, Page{Page: 3, Limit: MaxLimit}, Normalize(3, 500))
	assert.Equal(t, Page{Page: 2, Limit: 20}, Normalize(2, 20))
}

func TestPage_OffsetAndTotalPages(t *testing.T) {
	p := Normalize(3, 10)
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(10))
	assert.Equal(t, 3, p.TotalPages(21))
}

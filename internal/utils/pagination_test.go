package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationSkipAndLimit(t *testing.T) {
	params := &PaginationParams{Page: 3, PageSize: 20}

	assert.Equal(t, 40, params.GetSkip())
	assert.Equal(t, 20, params.GetLimit())
}

func TestCreatePaginationMeta(t *testing.T) {
	params := &PaginationParams{Page: 2, PageSize: 10}
	meta := CreatePaginationMeta(params, 25)

	assert.Equal(t, 2, meta.Page)
	assert.EqualValues(t, 25, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrevious)

	last := CreatePaginationMeta(&PaginationParams{Page: 3, PageSize: 10}, 25)
	assert.False(t, last.HasNext)
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationParamsClampsInput(t *testing.T) {
	p := NewPaginationParams(0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.Limit)

	p = NewPaginationParams(-3, 1000)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPageSize, p.Limit)

	p = NewPaginationParams(4, 10)
	assert.Equal(t, 30, p.GetSkip())
	assert.Equal(t, 10, p.GetLimit())
}

func TestCreatePaginationMeta(t *testing.T) {
	p := NewPaginationParams(2, 10)
	meta := CreatePaginationMeta(p, 25)

	assert.Equal(t, int64(25), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrevious)

	last := CreatePaginationMeta(NewPaginationParams(3, 10), 25)
	assert.False(t, last.HasNext)

	empty := CreatePaginationMeta(NewPaginationParams(1, 10), 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrevious)
}

package database

import (
	"testing"

	"jobboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistentModels_ParentsBeforeChildren(t *testing.T) {
	list := PersistentModels()
	require.Len(t, list, 5)

	index := func(target any) int {
		for i, m := range list {
			switch target.(type) {
			case *models.User:
				if _, ok := m.(*models.User); ok {
					return i
				}
			case *models.Job:
				if _, ok := m.(*models.Job); ok {
					return i
				}
			case *models.Application:
				if _, ok := m.(*models.Application); ok {
					return i
				}
			case *models.Review:
				if _, ok := m.(*models.Review); ok {
					return i
				}
			}
		}
		return -1
	}

	assert.Less(t, index(&models.User{}), index(&models.Job{}))
	assert.Less(t, index(&models.Job{}), index(&models.Application{}))
	assert.Less(t, index(&models.Job{}), index(&models.Review{}))
}

package all

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"recipesql/internal/storage"
)

func TestBuiltinKindsRegistered(t *testing.T) {
	assert.Subset(t, storage.ListKinds(), []string{"mysql", "sqlite"})
}

package schema_test

import (
	"testing"

	"github.com/gnames/gndash/pkg/schema"
	"github.com/stretchr/testify/assert"
)

func TestAllModels(t *testing.T) {
	models := schema.AllModels()
	assert.Len(t, models, 1)
	assert.IsType(t, &schema.SessionSnapshot{}, models[0])
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "sessions", schema.SessionSnapshot{}.TableName())
}

package bpe

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema(t *testing.T) {
	s := Schema()

	assert.Equal(t, "object", s.Type)
	assert.Equal(t, SchemaID, string(s.ID))
	require.Len(t, s.PatternProperties, 1)

	for pattern, pair := range s.PatternProperties {
		re := regexp.MustCompile(pattern)
		for _, key := range []string{"256", "259", "260", "299", "300", "999", "1000", "65536"} {
			assert.True(t, re.MatchString(key), "key %s should match", key)
		}
		for _, key := range []string{"0", "97", "255", "0256", "-1", "abc", ""} {
			assert.False(t, re.MatchString(key), "key %s should not match", key)
		}

		assert.Equal(t, "array", pair.Type)
		require.NotNil(t, pair.MinItems)
		require.NotNil(t, pair.MaxItems)
		assert.Equal(t, uint64(2), *pair.MinItems)
		assert.Equal(t, uint64(2), *pair.MaxItems)
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "object", doc["type"])
	assert.Equal(t, false, doc["additionalProperties"])
}

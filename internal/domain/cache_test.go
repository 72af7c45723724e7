package domain_test

import (
	"testing"

	"github.com/blueprintkit/blueprintkit/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCacheKey(t *testing.T) {
	cfg := domain.DefaultEngineConfig()
	key := domain.CacheKey("abc", "2024.1", cfg)

	t.Run("stable", func(t *testing.T) {
		assert.Equal(t, key, domain.CacheKey("abc", "2024.1", cfg))
	})

	t.Run("different corpus", func(t *testing.T) {
		assert.NotEqual(t, key, domain.CacheKey("abd", "2024.1", cfg))
	})

	t.Run("different rules version", func(t *testing.T) {
		assert.NotEqual(t, key, domain.CacheKey("abc", "2025.1", cfg))
	})

	t.Run("different weights", func(t *testing.T) {
		other := cfg
		other.CategoryWeights.Security = 1
		assert.NotEqual(t, key, domain.CacheKey("abc", "2024.1", other))
	})

	t.Run("timeout does not matter", func(t *testing.T) {
		other := cfg
		other.Timeout = 5
		assert.Equal(t, key, domain.CacheKey("abc", "2024.1", other))
	})
}

func TestErrors(t *testing.T) {
	assert.Equal(t, "corpus too large: 12 files (max 10)",
		(&domain.CorpusTooLargeError{Files: 12, MaxFiles: 10}).Error())
	assert.Equal(t, "corpus too large: big.bin is 2048 bytes (max 1024)",
		(&domain.CorpusTooLargeError{Path: "big.bin", Size: 2048, MaxSize: 1024}).Error())
	assert.Equal(t, `rule table security: rule "auth": duplicate rule id`,
		(&domain.RuleTableInconsistencyError{Table: "security", RuleID: "auth", Reason: "duplicate rule id"}).Error())
	assert.Equal(t, "unreadable entry a.py", (&domain.UnreadableEntryError{Path: "a.py"}).Error())
}

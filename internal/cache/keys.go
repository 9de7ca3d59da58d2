package cache

import (
	"strconv"
	"strings"
)

const (
	GlobalKeyPrefix = "quizleague"

	questionService = "questions"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// QuestionGenerationKey holds the counter naming the live listings hash.
func QuestionGenerationKey() string {
	return GenerateCacheKey(questionService, "generation", "current")
}

// QuestionListsKey is the hash holding the question listings cached under
// one generation, one field per listing.
func QuestionListsKey(generation int64) string {
	return GenerateCacheKey(questionService, "lists", strconv.FormatInt(generation, 10))
}

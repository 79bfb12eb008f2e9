package cache

import "strings"

const (
	GlobalKeyPrefix = "quizfolio"
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

// QuestionPoolKey holds the JSON list of approved questions quizzes are drawn from.
func QuestionPoolKey() string {
	return GenerateCacheKey("quiz", "pool", "approved")
}

// LeaderboardKey is a hash with one field per requested leaderboard size.
func LeaderboardKey() string {
	return GenerateCacheKey("quiz", "leaderboard", "top")
}

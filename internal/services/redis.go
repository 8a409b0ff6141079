package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/brianmwangi/estatelink-backend/internal/models"
	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// viewDedupWindow is how long a session's view of a listing suppresses
// further view counting for that listing.
const viewDedupWindow = 30 * time.Minute

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// MarkListingViewed records that the session has viewed the listing and
// reports whether this is the first view inside the dedup window. The session
// key is explicit so view counting never depends on process-wide state.
func MarkListingViewed(ctx context.Context, sessionKey string, listingID uint) (bool, error) {
	key := fmt.Sprintf("listing:viewed:%s:%d", sessionKey, listingID)
	return RedisClient.SetNX(ctx, key, time.Now().Unix(), viewDedupWindow).Result()
}

// CacheFeaturedListings stores the featured listing set for the landing page.
func CacheFeaturedListings(ctx context.Context, listings []models.Listing) error {
	data, err := json.Marshal(listings)
	if err != nil {
		return err
	}
	return RedisClient.Set(ctx, "listings:featured", data, 5*time.Minute).Err()
}

// GetFeaturedListings retrieves the cached featured listing set.
func GetFeaturedListings(ctx context.Context) ([]models.Listing, error) {
	data, err := RedisClient.Get(ctx, "listings:featured").Result()
	if err != nil {
		return nil, err
	}

	var listings []models.Listing
	if err := json.Unmarshal([]byte(data), &listings); err != nil {
		return nil, err
	}

	return listings, nil
}

// InvalidateFeaturedListings drops the featured cache after a listing write.
func InvalidateFeaturedListings(ctx context.Context) error {
	return RedisClient.Del(ctx, "listings:featured").Err()
}

// PublishListingUpdate publishes a listing change to Redis pub/sub so other
// instances can fan it out to their WebSocket clients.
func PublishListingUpdate(ctx context.Context, listingID uint, event string) error {
	payload := map[string]interface{}{
		"listingId": listingID,
		"event":     event,
		"timestamp": time.Now().Unix(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return RedisClient.Publish(ctx, "listing:updates", data).Err()
}

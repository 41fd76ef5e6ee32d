package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/myplate-diets/backend/internal/diet"
	"github.com/pageza/myplate-diets/backend/internal/reference"
)

const classificationTTL = 24 * time.Hour

// ClassificationService runs the diet classifier and caches results in Redis
type ClassificationService struct {
	ref   *reference.ReferenceData
	redis *redis.Client
	ttl   time.Duration
}

// NewClassificationService creates a new ClassificationService instance.
// redisClient may be nil, in which case nothing is cached.
func NewClassificationService(ref *reference.ReferenceData, redisClient *redis.Client) *ClassificationService {
	return &ClassificationService{
		ref:   ref,
		redis: redisClient,
		ttl:   classificationTTL,
	}
}

// Reference returns the reference data the classifier was built with
func (s *ClassificationService) Reference() *reference.ReferenceData {
	return s.ref
}

type cachedResult struct {
	Diets             []diet.Diet `json:"diets"`
	MeetsRequirements bool        `json:"meets_requirements"`
}

// Classify returns the diet classification for one recipe. Only results
// without nutrition errors are cached so the typed errors survive.
func (s *ClassificationService) Classify(ctx context.Context, ingredients []string, nutrition map[string]string) diet.Result {
	if s.redis == nil {
		return diet.Classify(ingredients, nutrition, s.ref)
	}

	key, err := s.cacheKey(ingredients, nutrition)
	if err != nil {
		log.Printf("[ClassificationService] Failed to build cache key: %v", err)
		return diet.Classify(ingredients, nutrition, s.ref)
	}

	if cached, ok := s.lookup(ctx, key); ok {
		return cached
	}

	result := diet.Classify(ingredients, nutrition, s.ref)
	if result.KetoErr == nil && result.RequirementsErr == nil {
		s.store(ctx, key, result)
	}
	return result
}

func (s *ClassificationService) lookup(ctx context.Context, key string) (diet.Result, bool) {
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[ClassificationService] Cache read failed: %v", err)
		}
		return diet.Result{}, false
	}

	var cached cachedResult
	if err := json.Unmarshal(data, &cached); err != nil {
		log.Printf("[ClassificationService] Discarding corrupt cache entry %s: %v", key, err)
		return diet.Result{}, false
	}
	if cached.Diets == nil {
		cached.Diets = []diet.Diet{}
	}
	return diet.Result{Diets: cached.Diets, MeetsRequirements: cached.MeetsRequirements}, true
}

func (s *ClassificationService) store(ctx context.Context, key string, result diet.Result) {
	data, err := json.Marshal(cachedResult{Diets: result.Diets, MeetsRequirements: result.MeetsRequirements})
	if err != nil {
		log.Printf("[ClassificationService] Failed to marshal result: %v", err)
		return
	}
	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		log.Printf("[ClassificationService] Cache write failed: %v", err)
	}
}

// cacheKey hashes the inputs after lowercasing and sorting the ingredient
// lines, since neither case nor order affects classification. The reference
// fingerprint is part of the key so new word-lists never hit stale entries.
func (s *ClassificationService) cacheKey(ingredients []string, nutrition map[string]string) (string, error) {
	lines := make([]string, len(ingredients))
	for i, ing := range ingredients {
		lines[i] = strings.ToLower(ing)
	}
	slices.Sort(lines)

	payload, err := json.Marshal(struct {
		Ingredients []string          `json:"i"`
		Nutrition   map[string]string `json:"n"`
	}{lines, nutrition})
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(payload)
	return fmt.Sprintf("classification:%s:%s", s.ref.Fingerprint(), hex.EncodeToString(sum[:])), nil
}

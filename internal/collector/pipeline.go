package collector

import (
	"bytes"
	"context"
	"errors"
	"log"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/pageza/myplate-diets/backend/internal/model"
	"github.com/pageza/myplate-diets/backend/internal/service"
)

// ErrNoNutrition marks a recipe page without a nutrition table. Such recipes
// are skipped rather than classified.
var ErrNoNutrition = errors.New("no nutrition facts")

// RecipeStore persists collected recipes. *service.RecipeService satisfies it.
type RecipeStore interface {
	SaveRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
}

// Stats counts the outcome of a pipeline run
type Stats struct {
	Saved   int64
	Skipped int64
	Failed  int64
}

// Pipeline fetches, classifies and stores recipes
type Pipeline struct {
	Getter     PageGetter
	Classifier service.IClassificationService
	Index      *CategoryIndex
	Writer     *BucketWriter
	// Store is optional
	Store   RecipeStore
	Workers int
}

// Run processes every link. A failing recipe is logged and counted without
// stopping the batch; only cancellation of ctx ends the run early.
func (p *Pipeline) Run(ctx context.Context, links []string) (Stats, error) {
	var saved, skipped, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.Workers, 1))

	for _, link := range links {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			recipe, err := p.Process(gctx, link)
			switch {
			case errors.Is(err, ErrNoNutrition):
				log.Printf("[Collector] No nutrition facts for %s, skipping", link)
				skipped.Add(1)
			case err != nil:
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Printf("[Collector] Failed to collect %s: %v", link, err)
				failed.Add(1)
			default:
				log.Printf("[Collector] Saved %q (%d diets, meets requirements: %t)",
					recipe.Title, len(recipe.Diets), recipe.MeetsRequirements)
				saved.Add(1)
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	stats := Stats{Saved: saved.Load(), Skipped: skipped.Load(), Failed: failed.Load()}
	log.Printf("[Collector] Done: %d saved, %d skipped, %d failed", stats.Saved, stats.Skipped, stats.Failed)
	return stats, err
}

// Process collects a single recipe
func (p *Pipeline) Process(ctx context.Context, link string) (*model.Recipe, error) {
	body, err := p.Getter.Get(ctx, link)
	if err != nil {
		return nil, err
	}

	page, err := ParseRecipePage(bytes.NewReader(body), link)
	if err != nil {
		return nil, err
	}
	if len(page.NutritionInfo) == 0 {
		return nil, ErrNoNutrition
	}

	membership := p.Index.Lookup(link)
	recipe := &model.Recipe{
		Title:         page.Title,
		RecipeURL:     link,
		ImageURL:      page.ImageURL,
		Servings:      page.Servings,
		Description:   page.Description,
		Ingredients:   model.JSONBStringArray(page.Ingredients),
		Instructions:  model.JSONBStringArray(page.Instructions),
		NutritionInfo: model.JSONBStringMap(page.NutritionInfo),
		Courses:       model.JSONBStringArray(membership.Courses),
		FoodGroups:    model.JSONBStringArray(membership.FoodGroups),
		Cuisines:      model.JSONBStringArray(membership.Cuisines),
	}

	result := p.Classifier.Classify(ctx, page.Ingredients, page.NutritionInfo)
	recipe.Diets = model.JSONBStringArray(result.Labels())
	recipe.MeetsRequirements = result.MeetsRequirements
	for rule, msg := range result.Errors() {
		log.Printf("[Collector] %s: %s not evaluated: %s", page.Title, rule, msg)
	}

	if p.Writer != nil {
		if _, err := p.Writer.Write(recipe); err != nil {
			return nil, err
		}
	}
	if p.Store != nil {
		if _, err := p.Store.SaveRecipe(ctx, recipe); err != nil {
			return nil, err
		}
	}
	return recipe, nil
}

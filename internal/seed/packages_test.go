package seed

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"innkeeper/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	replaced []models.TravelPackage
}

func (f *fakeCatalog) ReplacePackages(_ context.Context, packages []models.TravelPackage) error {
	f.replaced = packages
	return nil
}

func TestGeneratePackages(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	today := time.Date(2026, 8, 1, 14, 30, 0, 0, time.UTC)

	packages := GeneratePackages(rng, today)
	require.Len(t, packages, len(models.PackageCategories)*PackagesPerCategory)

	perCategory := make(map[string]int)
	for _, p := range packages {
		perCategory[p.Category]++

		assert.True(t, models.ValidCategory(p.Category))
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Destination)
		assert.GreaterOrEqual(t, p.DurationDays, 3)
		assert.LessOrEqual(t, p.DurationDays, 10)
		assert.GreaterOrEqual(t, p.Price, 500.0)
		assert.LessOrEqual(t, p.Price, 5000.0)
		// Price is rounded to cents.
		assert.Equal(t, p.Price, float64(int(p.Price*100))/100)

		assert.Len(t, strings.Split(p.Activities, ", "), 3)

		assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), p.AvailableFrom)
		assert.Equal(t, p.AvailableFrom.AddDate(0, 0, 180), p.AvailableTo)
	}
	for _, category := range models.PackageCategories {
		assert.Equal(t, PackagesPerCategory, perCategory[category], category)
	}
}

func TestRunReplacesCatalog(t *testing.T) {
	catalog := &fakeCatalog{}
	rng := rand.New(rand.NewSource(1))

	count, err := Run(context.Background(), catalog, rng)
	require.NoError(t, err)
	assert.Equal(t, len(models.PackageCategories)*PackagesPerCategory, count)
	assert.Len(t, catalog.replaced, count)
}

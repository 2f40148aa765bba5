// Package seed regenerates the travel package catalog.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"innkeeper/internal/models"
)

// PackagesPerCategory is how many packages are generated for each category.
const PackagesPerCategory = 5

var destinations = []string{"Maldives", "Paris", "New York", "Safari Park", "Himalayas"}

var activitiesByCategory = map[string][]string{
	models.CategoryAdventure:  {"Hiking", "Rafting", "Skydiving", "Climbing", "Safari Tour"},
	models.CategoryRelaxation: {"Spa", "Beach Walk", "Yoga", "Resort Stay", "Massage Therapy"},
	models.CategoryCultural:   {"Museum Tours", "Historical Sites", "Cultural Festivals", "Temple Visits", "Local Food Tasting"},
	models.CategoryWildlife:   {"Jungle Safari", "Bird Watching", "Animal Tracking", "Boat Tour", "Photography"},
	models.CategoryLuxury:     {"Private Beaches", "Fine Dining", "Yacht Tour", "Golf", "Exclusive Shopping"},
}

// Catalog stores replaced package sets.
type Catalog interface {
	ReplacePackages(ctx context.Context, packages []models.TravelPackage) error
}

// GeneratePackages builds the fixed catalog: PackagesPerCategory packages per
// category with randomized destination, duration (3-10 days), price
// (500-5000), and three activities, available from today for 180 days.
func GeneratePackages(rng *rand.Rand, today time.Time) []models.TravelPackage {
	today = models.DateOnly(today)
	availableTo := today.AddDate(0, 0, 180)

	var packages []models.TravelPackage
	for _, category := range models.PackageCategories {
		for i := 0; i < PackagesPerCategory; i++ {
			activities := activitiesByCategory[category]
			picked := make([]string, 3)
			for j := range picked {
				picked[j] = activities[rng.Intn(len(activities))]
			}

			price := 500 + rng.Float64()*4500
			packages = append(packages, models.TravelPackage{
				Title:         fmt.Sprintf("%s Package %d", category, i+1),
				Description:   fmt.Sprintf("This is a %s travel package designed to offer you the best experience.", strings.ToLower(category)),
				Destination:   destinations[rng.Intn(len(destinations))],
				Category:      category,
				DurationDays:  3 + rng.Intn(8),
				Price:         float64(int(price*100)) / 100,
				Activities:    strings.Join(picked, ", "),
				AvailableFrom: today,
				AvailableTo:   availableTo,
			})
		}
	}
	return packages
}

// Run deletes all existing travel packages and inserts a freshly generated
// catalog. Returns the number of packages created.
func Run(ctx context.Context, catalog Catalog, rng *rand.Rand) (int, error) {
	packages := GeneratePackages(rng, time.Now())
	if err := catalog.ReplacePackages(ctx, packages); err != nil {
		return 0, err
	}
	return len(packages), nil
}

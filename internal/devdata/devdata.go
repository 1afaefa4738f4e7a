// Package devdata populates a store with repertoire data for development and
// demos: a small canonical fixture plus an optional generated corpus.
package devdata

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/stolasapp/barre/internal/storage"
	"github.com/stolasapp/barre/internal/storage/db"
)

// EnvSeed overrides the corpus generator's random seed for reproducible runs.
const EnvSeed = "BARRE_SEED"

// Seed returns the generator seed from the environment, or a random value.
func Seed() uint64 {
	if env := os.Getenv(EnvSeed); env != "" {
		if seed, err := strconv.ParseUint(env, 10, 64); err == nil {
			return seed
		}
	}
	return rand.Uint64() //nolint:gosec // intentionally weak random for test data
}

type fixtureBallet struct {
	ballet db.Ballet
	steps  []fixtureSequence
}

type fixtureSequence struct {
	step  string
	order int64
}

type fixtureStep struct {
	step      db.Step
	equipment []fixtureRequirement
}

type fixtureRequirement struct {
	equipment string
	required  bool
}

func ptr[T any](v T) *T { return &v }

var fixtureBallets = []fixtureBallet{
	{
		ballet: db.Ballet{
			Title:           "Swan Lake",
			Composer:        "Pyotr Ilyich Tchaikovsky",
			Choreographer:   "Marius Petipa",
			YearPremiered:   ptr[int64](1877),
			Description:     ptr("A classical ballet about a princess turned into a swan by an evil sorcerer."),
			DifficultyLevel: ptr("Advanced"),
			DurationMinutes: ptr[int64](150),
		},
		steps: []fixtureSequence{{"Plie", 1}, {"Pirouette", 2}},
	},
	{
		ballet: db.Ballet{
			Title:           "The Nutcracker",
			Composer:        "Pyotr Ilyich Tchaikovsky",
			Choreographer:   "Marius Petipa",
			YearPremiered:   ptr[int64](1892),
			Description:     ptr("A magical Christmas ballet about a girl and her nutcracker prince."),
			DifficultyLevel: ptr("Intermediate"),
			DurationMinutes: ptr[int64](90),
		},
		steps: []fixtureSequence{{"Tendu", 1}, {"Battement", 2}},
	},
	{
		ballet: db.Ballet{
			Title:           "Giselle",
			Composer:        "Adolphe Adam",
			Choreographer:   "Jean Coralli",
			YearPremiered:   ptr[int64](1841),
			Description:     ptr("A romantic ballet about a peasant girl who dies of a broken heart."),
			DifficultyLevel: ptr("Advanced"),
			DurationMinutes: ptr[int64](120),
		},
		steps: []fixtureSequence{{"Grand plie", 1}},
	},
}

var fixtureSteps = []fixtureStep{
	{
		step: db.Step{Name: "Plie", Description: "A bending of the knees while maintaining proper alignment", Difficulty: "Beginner"},
		equipment: []fixtureRequirement{
			{"Dance Floor", true}, {"Ballet Barre", false},
		},
	},
	{
		step: db.Step{Name: "Tendu", Description: "A stretching of the foot along the floor", Difficulty: "Beginner"},
		equipment: []fixtureRequirement{
			{"Dance Floor", true}, {"Ballet Barre", false},
		},
	},
	{
		step:      db.Step{Name: "Demi-plie", Description: "A half bend of the knees", Difficulty: "Beginner"},
		equipment: []fixtureRequirement{{"Dance Floor", true}},
	},
	{
		step: db.Step{Name: "Grand plie", Description: "A full bend of the knees", Difficulty: "Intermediate"},
		equipment: []fixtureRequirement{
			{"Dance Floor", true}, {"Ballet Barre", true},
		},
	},
	{
		step: db.Step{Name: "Battement", Description: "A beating movement of the leg", Difficulty: "Intermediate"},
		equipment: []fixtureRequirement{
			{"Dance Floor", true}, {"Ballet Barre", true},
		},
	},
	{
		step: db.Step{Name: "Pirouette", Description: "A turn on one foot", Difficulty: "Advanced"},
		equipment: []fixtureRequirement{
			{"Dance Floor", true}, {"Pointe Shoes", false},
		},
	},
}

var fixtureEquipment = []db.Equipment{
	{Name: "Pointe Shoes", Description: "Specialized ballet shoes for dancing on toes", Category: "Footwear"},
	{Name: "Tutu", Description: "Classical ballet skirt", Category: "Attire"},
	{Name: "Leotard", Description: "Fitted dance garment", Category: "Attire"},
	{Name: "Ballet Barre", Description: "Horizontal bar for ballet exercises", Category: "Training Equipment"},
	{Name: "Dance Floor", Description: "Sprung floor for ballet practice", Category: "Facility"},
}

// Fixture inserts the canonical sample repertoire: three well-known ballets,
// six barre steps, five pieces of equipment, and their relationships. It does
// not check for prior runs; seed a fresh database.
func Fixture(ctx context.Context, store storage.Store) error {
	equipmentIDs := make(map[string]int64, len(fixtureEquipment))
	for _, equipment := range fixtureEquipment {
		inserted, err := store.CreateEquipment(ctx, equipment)
		if err != nil {
			return fmt.Errorf("failed to seed equipment %q: %w", equipment.Name, err)
		}
		equipmentIDs[inserted.Name] = inserted.ID
	}

	stepIDs := make(map[string]int64, len(fixtureSteps))
	for _, fixture := range fixtureSteps {
		inserted, err := store.CreateStep(ctx, fixture.step)
		if err != nil {
			return fmt.Errorf("failed to seed step %q: %w", fixture.step.Name, err)
		}
		stepIDs[inserted.Name] = inserted.ID
		for _, req := range fixture.equipment {
			err = store.AddStepEquipment(ctx, inserted.ID, equipmentIDs[req.equipment], req.required)
			if err != nil {
				return fmt.Errorf("failed to link step %q to %q: %w", fixture.step.Name, req.equipment, err)
			}
		}
	}

	for _, fixture := range fixtureBallets {
		inserted, err := store.CreateBallet(ctx, fixture.ballet)
		if err != nil {
			return fmt.Errorf("failed to seed ballet %q: %w", fixture.ballet.Title, err)
		}
		for _, seq := range fixture.steps {
			err = store.AddBalletStep(ctx, inserted.ID, stepIDs[seq.step], seq.order)
			if err != nil {
				return fmt.Errorf("failed to sequence step %q in %q: %w", seq.step, fixture.ballet.Title, err)
			}
		}
	}
	return nil
}

package devdata

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/crypto/bcrypt"

	"github.com/stolasapp/barre/internal/storage"
	"github.com/stolasapp/barre/internal/storage/db"
)

// Corpus generation constants.
const (
	minBallets        = 12
	maxExtraBallets   = 12 // 12-24 ballets total
	minSteps          = 20
	maxExtraSteps     = 20 // 20-40 steps total
	minEquipment      = 8
	maxExtraEquipment = 8 // 8-16 equipment rows total
	minUsers          = 5
	maxExtraUsers     = 10 // 5-15 users total
	maxSequenceLen    = 8
	maxGear           = 3
	detailProbability = 0.7 // how often optional ballet columns are filled
)

// Vocabulary for generated repertoire names.
var stepVocabulary = []string{
	"Assemblé", "Arabesque", "Attitude", "Balancé", "Cabriole",
	"Chassé", "Développé", "Échappé", "Fouetté", "Frappé",
	"Glissade", "Jeté", "Pas de bourrée", "Pas de chat", "Relevé",
	"Rond de jambe", "Sauté", "Sissonne", "Soutenu", "Temps levé",
}

var stepQualifiers = []string{
	"petit", "grand", "demi", "en avant", "en arrière",
	"en dedans", "en dehors", "à la seconde", "devant", "derrière",
}

var equipmentCatalog = []db.Equipment{
	{Name: "Rosin Box", Description: "Tray of powdered rosin for shoe grip", Category: "Accessories"},
	{Name: "Flat Shoes", Description: "Soft canvas or leather technique shoes", Category: "Footwear"},
	{Name: "Demi-Pointe Shoes", Description: "Transitional shoes with a soft block", Category: "Footwear"},
	{Name: "Practice Tutu", Description: "Rehearsal tutu for partnering work", Category: "Attire"},
	{Name: "Warm-Up Booties", Description: "Insulated overshoes worn between rehearsals", Category: "Footwear"},
	{Name: "Mirror Wall", Description: "Full-length studio mirror for alignment checks", Category: "Facility"},
	{Name: "Portable Barre", Description: "Free-standing barre for center work", Category: "Training Equipment"},
	{Name: "Resistance Band", Description: "Elastic band for foot and ankle strengthening", Category: "Training Equipment"},
	{Name: "Legwarmers", Description: "Knit warmers for rehearsal", Category: "Attire"},
	{Name: "Tights", Description: "Standard convertible dance tights", Category: "Attire"},
	{Name: "Turning Board", Description: "Low-friction board for pirouette practice", Category: "Training Equipment"},
	{Name: "Marley Roll", Description: "Portable vinyl dance surface", Category: "Facility"},
	{Name: "Foot Stretcher", Description: "Arch-shaping stretch device", Category: "Training Equipment"},
	{Name: "Ribbon and Elastic Kit", Description: "Sewing kit for pointe shoe ribbons", Category: "Accessories"},
	{Name: "Toe Pads", Description: "Gel pads worn inside pointe shoes", Category: "Accessories"},
	{Name: "Character Skirt", Description: "Practice skirt for character dance", Category: "Attire"},
}

// Generate fills the store with a randomized repertoire corpus derived from
// seed. The same seed produces the same corpus.
func Generate(ctx context.Context, store storage.Store, seed uint64) error {
	faker := gofakeit.New(seed)

	users, err := generateUsers(ctx, store, faker)
	if err != nil {
		return err
	}
	equipment, err := generateEquipment(ctx, store, faker)
	if err != nil {
		return err
	}
	steps, err := generateSteps(ctx, store, faker, users, equipment)
	if err != nil {
		return err
	}
	return generateBallets(ctx, store, faker, users, steps)
}

func generateUsers(ctx context.Context, store storage.Store, faker *gofakeit.Faker) ([]db.User, error) {
	// All generated accounts share one throwaway password. Hashing per user
	// at the default cost makes large corpora annoyingly slow.
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	count := minUsers + faker.IntN(maxExtraUsers)
	users := make([]db.User, 0, count)
	for range count {
		user, err := store.CreateUser(ctx, db.User{
			Username:     fmt.Sprintf("%s_%d", faker.Username(), faker.IntN(10000)), //nolint:mnd // uniqueness suffix
			Email:        faker.Email(),
			PasswordHash: hash,
		})
		if errors.Is(err, storage.ErrAlreadyExists) || errors.Is(err, storage.ErrInvalidUsername) {
			continue
		} else if err != nil {
			return nil, fmt.Errorf("failed to generate user: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

func generateEquipment(ctx context.Context, store storage.Store, faker *gofakeit.Faker) ([]db.Equipment, error) {
	count := minEquipment + faker.IntN(maxExtraEquipment)
	equipment := make([]db.Equipment, 0, count)
	for _, item := range pick(faker, equipmentCatalog, count) {
		inserted, err := store.CreateEquipment(ctx, item)
		if err != nil {
			return nil, fmt.Errorf("failed to generate equipment: %w", err)
		}
		equipment = append(equipment, inserted)
	}
	return equipment, nil
}

func generateSteps(
	ctx context.Context,
	store storage.Store,
	faker *gofakeit.Faker,
	users []db.User,
	equipment []db.Equipment,
) ([]db.Step, error) {
	count := minSteps + faker.IntN(maxExtraSteps)
	steps := make([]db.Step, 0, count)
	for range count {
		name := faker.RandomString(stepVocabulary)
		if faker.Bool() {
			name = faker.RandomString(stepQualifiers) + " " + name
		}
		step, err := store.CreateStep(ctx, db.Step{
			Name:        name,
			Description: faker.Sentence(8 + faker.IntN(8)), //nolint:mnd // 8-15 words
			Difficulty:  faker.RandomString(db.DifficultyLevels),
			SubmittedBy: submitter(faker, users),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to generate step: %w", err)
		}

		for _, item := range pick(faker, equipment, faker.IntN(maxGear+1)) {
			if err := store.AddStepEquipment(ctx, step.ID, item.ID, faker.Bool()); err != nil {
				return nil, fmt.Errorf("failed to link generated step: %w", err)
			}
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func generateBallets(
	ctx context.Context,
	store storage.Store,
	faker *gofakeit.Faker,
	users []db.User,
	steps []db.Step,
) error {
	count := minBallets + faker.IntN(maxExtraBallets)
	for range count {
		ballet := db.Ballet{
			Title:         generateTitle(faker),
			Composer:      faker.Name(),
			Choreographer: faker.Name(),
			SubmittedBy:   submitter(faker, users),
		}
		if faker.Float64() < detailProbability {
			ballet.YearPremiered = ptr(int64(1830 + faker.IntN(195)))  //nolint:mnd // romantic era onward
			ballet.DurationMinutes = ptr(int64(40 + faker.IntN(140))) //nolint:mnd // one act to full evening
			ballet.DifficultyLevel = ptr(faker.RandomString(db.DifficultyLevels))
			ballet.Description = ptr(faker.Sentence(10 + faker.IntN(10))) //nolint:mnd // 10-19 words
		}
		inserted, err := store.CreateBallet(ctx, ballet)
		if err != nil {
			return fmt.Errorf("failed to generate ballet: %w", err)
		}

		sequence := pick(faker, steps, faker.IntN(maxSequenceLen+1))
		for i, step := range sequence {
			if err := store.AddBalletStep(ctx, inserted.ID, step.ID, int64(i+1)); err != nil {
				return fmt.Errorf("failed to sequence generated ballet: %w", err)
			}
		}
	}
	return nil
}

func generateTitle(faker *gofakeit.Faker) string {
	patterns := []func(*gofakeit.Faker) string{
		func(f *gofakeit.Faker) string { return fmt.Sprintf("The %s %s", titleCase(f.Adjective()), titleCase(f.Noun())) },
		func(f *gofakeit.Faker) string { return fmt.Sprintf("%s and the %s", f.FirstName(), titleCase(f.Noun())) },
		func(f *gofakeit.Faker) string { return fmt.Sprintf("La %s", titleCase(f.Noun())) },
		func(f *gofakeit.Faker) string { return fmt.Sprintf("The Dance of %s", titleCase(f.Noun())) },
		func(f *gofakeit.Faker) string { return fmt.Sprintf("%s's %s", f.FirstName(), titleCase(f.Noun())) },
	}
	return patterns[faker.IntN(len(patterns))](faker)
}

func titleCase(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func submitter(faker *gofakeit.Faker, users []db.User) *int64 {
	if len(users) == 0 || faker.Bool() {
		return nil
	}
	return ptr(users[faker.IntN(len(users))].ID)
}

// pick returns up to n distinct random elements of items.
func pick[T any](faker *gofakeit.Faker, items []T, n int) []T {
	if n > len(items) {
		n = len(items)
	}
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	faker.ShuffleInts(order)

	picked := make([]T, 0, n)
	for _, idx := range order[:n] {
		picked = append(picked, items[idx])
	}
	return picked
}

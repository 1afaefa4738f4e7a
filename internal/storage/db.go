package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math/rand/v2"
	"regexp"

	"github.com/influxdata/influxdb/pkg/snowflake"

	"github.com/stolasapp/barre/internal/storage/db"
)

// Username validation constraints.
const (
	minUsernameLen = 3
	maxUsernameLen = 64
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// validateUsername validates that a username meets the requirements:
// 3-64 characters, alphanumeric and underscores only.
func validateUsername(name string) bool {
	return len(name) >= minUsernameLen &&
		len(name) <= maxUsernameLen &&
		usernameRegex.MatchString(name)
}

// DB is a [Store] backed by a SQLite database.
type DB struct {
	ids     *snowflake.Generator
	db      *sql.DB
	queries *db.Queries
}

// NewDB opens (and migrates) the SQLite database at dbPath.
func NewDB(ctx context.Context, dbPath string, logger *slog.Logger) (*DB, error) {
	handle, err := db.Open(ctx, logger, dbPath)
	if err != nil {
		return nil, err
	}
	return &DB{
		ids:     snowflake.New(rand.IntN(1023)), //nolint:gosec,mnd // this isn't for crypto
		db:      handle,
		queries: db.New(handle),
	}, nil
}

// Close satisfies the [Store] interface.
func (d *DB) Close() error {
	return d.db.Close()
}

// next produces a fresh row ID. Snowflake IDs fit in an int64, which is what
// SQLite integers are.
func (d *DB) next() int64 {
	return int64(d.ids.Next()) //nolint:gosec // 63-bit value, never overflows
}

// CreateUser satisfies the [Users] interface.
func (d *DB) CreateUser(ctx context.Context, user db.User) (db.User, error) {
	if !validateUsername(user.Username) {
		return user, ErrInvalidUsername
	}
	taken, err := d.queries.UserExists(ctx, user.Username, user.Email)
	if err != nil {
		return user, err
	}
	if taken {
		return user, ErrAlreadyExists
	}
	if user.ID == 0 {
		user.ID = d.next()
	}
	return user, d.queries.CreateUser(ctx, user)
}

// GetUser satisfies the [Users] interface.
func (d *DB) GetUser(ctx context.Context, userID int64) (db.User, error) {
	user, err := d.queries.GetUser(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return user, ErrNotFound
	}
	return user, err
}

// GetUserByName satisfies the [Users] interface.
func (d *DB) GetUserByName(ctx context.Context, username string) (db.User, error) {
	user, err := d.queries.GetUserByName(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return user, ErrNotFound
	}
	return user, err
}

// ListUsers satisfies the [Users] interface.
func (d *DB) ListUsers(ctx context.Context, afterName string, limit int32) ([]db.User, error) {
	return d.queries.ListUsers(ctx, afterName, int64(limit))
}

// SetAdmin satisfies the [Users] interface.
func (d *DB) SetAdmin(ctx context.Context, username string, isAdmin bool) error {
	changed, err := d.queries.SetUserAdmin(ctx, username, isAdmin)
	if err != nil {
		return err
	}
	if changed == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser satisfies the [Users] interface.
func (d *DB) DeleteUser(ctx context.Context, userID int64) error {
	return d.queries.DeleteUser(ctx, userID)
}

// ListBallets satisfies the [Ballets] interface.
func (d *DB) ListBallets(ctx context.Context) ([]db.Ballet, error) {
	return d.queries.ListBallets(ctx)
}

// GetBallet satisfies the [Ballets] interface.
func (d *DB) GetBallet(ctx context.Context, id int64) (db.Ballet, error) {
	ballet, err := d.queries.GetBallet(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ballet, ErrNotFound
	}
	return ballet, err
}

// CreateBallet satisfies the [Ballets] interface.
func (d *DB) CreateBallet(ctx context.Context, ballet db.Ballet) (db.Ballet, error) {
	if ballet.ID == 0 {
		ballet.ID = d.next()
	}
	return ballet, d.queries.CreateBallet(ctx, ballet)
}

// DeleteBallet satisfies the [Ballets] interface.
func (d *DB) DeleteBallet(ctx context.Context, id int64) (db.Ballet, error) {
	ballet, err := d.queries.DeleteBallet(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ballet, ErrNotFound
	}
	return ballet, err
}

// ListBalletSteps satisfies the [Ballets] interface.
func (d *DB) ListBalletSteps(ctx context.Context, balletID int64) ([]db.SequencedStep, error) {
	return d.queries.ListBalletSteps(ctx, balletID)
}

// AddBalletStep satisfies the [Ballets] interface.
func (d *DB) AddBalletStep(ctx context.Context, balletID, stepID, sequenceOrder int64) error {
	return d.queries.AddBalletStep(ctx, balletID, stepID, sequenceOrder)
}

// ListBalletsWithSteps satisfies the [Ballets] interface. The read is two
// batch queries merged in memory; a failure in either fails the whole read.
func (d *DB) ListBalletsWithSteps(ctx context.Context) ([]BalletWithSteps, error) {
	ballets, err := d.queries.ListBallets(ctx)
	if err != nil {
		return nil, err
	}
	joined, err := d.queries.ListAllBalletSteps(ctx)
	if err != nil {
		return nil, err
	}

	stepsByBallet := make(map[int64][]db.SequencedStep, len(ballets))
	for _, row := range joined {
		stepsByBallet[row.BalletID] = append(stepsByBallet[row.BalletID], row.SequencedStep)
	}

	merged := make([]BalletWithSteps, len(ballets))
	for i, ballet := range ballets {
		steps := stepsByBallet[ballet.ID]
		if steps == nil {
			steps = []db.SequencedStep{}
		}
		merged[i] = BalletWithSteps{Ballet: ballet, Steps: steps}
	}
	return merged, nil
}

// ListSteps satisfies the [Steps] interface.
func (d *DB) ListSteps(ctx context.Context) ([]db.Step, error) {
	return d.queries.ListSteps(ctx)
}

// GetStep satisfies the [Steps] interface.
func (d *DB) GetStep(ctx context.Context, id int64) (db.Step, error) {
	step, err := d.queries.GetStep(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return step, ErrNotFound
	}
	return step, err
}

// CreateStep satisfies the [Steps] interface.
func (d *DB) CreateStep(ctx context.Context, step db.Step) (db.Step, error) {
	if step.ID == 0 {
		step.ID = d.next()
	}
	return step, d.queries.CreateStep(ctx, step)
}

// DeleteStep satisfies the [Steps] interface.
func (d *DB) DeleteStep(ctx context.Context, id int64) (db.Step, error) {
	step, err := d.queries.DeleteStep(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return step, ErrNotFound
	}
	return step, err
}

// ListStepEquipment satisfies the [Steps] interface.
func (d *DB) ListStepEquipment(ctx context.Context, stepID int64) ([]db.RequiredEquipment, error) {
	return d.queries.ListStepEquipment(ctx, stepID)
}

// AddStepEquipment satisfies the [Steps] interface.
func (d *DB) AddStepEquipment(ctx context.Context, stepID, equipmentID int64, required bool) error {
	return d.queries.AddStepEquipment(ctx, stepID, equipmentID, required)
}

// ListStepsWithEquipment satisfies the [Steps] interface.
func (d *DB) ListStepsWithEquipment(ctx context.Context) ([]StepWithEquipment, error) {
	steps, err := d.queries.ListSteps(ctx)
	if err != nil {
		return nil, err
	}
	joined, err := d.queries.ListAllStepEquipment(ctx)
	if err != nil {
		return nil, err
	}

	equipmentByStep := make(map[int64][]db.RequiredEquipment, len(steps))
	for _, row := range joined {
		equipmentByStep[row.StepID] = append(equipmentByStep[row.StepID], row.RequiredEquipment)
	}

	merged := make([]StepWithEquipment, len(steps))
	for i, step := range steps {
		equipment := equipmentByStep[step.ID]
		if equipment == nil {
			equipment = []db.RequiredEquipment{}
		}
		merged[i] = StepWithEquipment{Step: step, Equipment: equipment}
	}
	return merged, nil
}

// ListEquipment satisfies the [Equipment] interface.
func (d *DB) ListEquipment(ctx context.Context) ([]db.Equipment, error) {
	return d.queries.ListEquipment(ctx)
}

// GetEquipment satisfies the [Equipment] interface.
func (d *DB) GetEquipment(ctx context.Context, id int64) (db.Equipment, error) {
	equipment, err := d.queries.GetEquipment(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return equipment, ErrNotFound
	}
	return equipment, err
}

// CreateEquipment satisfies the [Equipment] interface.
func (d *DB) CreateEquipment(ctx context.Context, equipment db.Equipment) (db.Equipment, error) {
	if equipment.ID == 0 {
		equipment.ID = d.next()
	}
	return equipment, d.queries.CreateEquipment(ctx, equipment)
}

// DeleteEquipment satisfies the [Equipment] interface.
func (d *DB) DeleteEquipment(ctx context.Context, id int64) (db.Equipment, error) {
	equipment, err := d.queries.DeleteEquipment(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return equipment, ErrNotFound
	}
	return equipment, err
}

var _ Store = (*DB)(nil)

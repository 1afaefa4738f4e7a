// Package storage provides the state management for users and the repertoire
// catalog (ballets, steps, equipment, and their join relationships).
package storage

import (
	"context"

	"github.com/stolasapp/barre/internal/storage/db"
)

const (
	// ErrNotFound is returned when a row cannot be found.
	ErrNotFound Error = "not found"
	// ErrAlreadyExists is returned if a unique user already exists.
	ErrAlreadyExists Error = "already exists"
	// ErrInvalidUsername is returned when a username fails validation.
	ErrInvalidUsername Error = "username must be 3-64 characters, alphanumeric and underscores only"
	// ErrInternal is returned for any other type of error.
	ErrInternal Error = "internal error"
)

// Error is an error type returned by the storage implementation.
type Error string

// Error satisfies [error].
func (e Error) Error() string { return string(e) }

// BalletWithSteps is a ballet merged with its ordered step sequence, as
// served by the ballets-with-steps aggregate.
type BalletWithSteps struct {
	db.Ballet
	Steps []db.SequencedStep `json:"steps"`
}

// StepWithEquipment is a step merged with its equipment list, as served by
// the steps-with-equipment aggregate.
type StepWithEquipment struct {
	db.Step
	Equipment []db.RequiredEquipment `json:"equipment"`
}

// Users are the methods on a storage implementation that are responsible for
// accessing and modifying users.
type Users interface {
	// CreateUser validates the username, assigns an ID, and inserts the user.
	// An [ErrAlreadyExists] is returned if the username or email is taken.
	CreateUser(ctx context.Context, user db.User) (db.User, error)
	// GetUser returns a single user with the specified ID. An [ErrNotFound] is
	// returned if the user ID does not exist.
	GetUser(ctx context.Context, userID int64) (db.User, error)
	// GetUserByName returns a single user with the specified username. An
	// [ErrNotFound] is returned if the username does not exist.
	GetUserByName(ctx context.Context, username string) (db.User, error)
	// ListUsers returns the users in a list, paginated by the given name (if
	// provided) up to the given limit of records.
	ListUsers(ctx context.Context, afterName string, limit int32) ([]db.User, error)
	// SetAdmin flips the admin flag for the named user. This is the only
	// exposed way to mutate is_admin; it is never reachable from the API.
	SetAdmin(ctx context.Context, username string, isAdmin bool) error
	// DeleteUser removes a user. Rows the user submitted are kept with their
	// submitter reference nulled out. This is a hard delete.
	DeleteUser(ctx context.Context, userID int64) error
}

// Ballets are the methods for accessing and modifying ballets and their step
// sequences.
type Ballets interface {
	// ListBallets returns every ballet ordered alphabetically by title.
	ListBallets(ctx context.Context) ([]db.Ballet, error)
	// GetBallet returns a single ballet. An [ErrNotFound] is returned if the
	// ID does not exist.
	GetBallet(ctx context.Context, id int64) (db.Ballet, error)
	// CreateBallet assigns an ID and inserts the ballet.
	CreateBallet(ctx context.Context, ballet db.Ballet) (db.Ballet, error)
	// DeleteBallet removes a ballet and its join rows, returning the deleted
	// row. An [ErrNotFound] is returned if the ID does not exist.
	DeleteBallet(ctx context.Context, id int64) (db.Ballet, error)
	// ListBalletSteps returns the ballet's steps ordered by sequence_order.
	// The list is empty (not an error) for a ballet with no steps.
	ListBalletSteps(ctx context.Context, balletID int64) ([]db.SequencedStep, error)
	// AddBalletStep links a step into the ballet's sequence.
	AddBalletStep(ctx context.Context, balletID, stepID, sequenceOrder int64) error
	// ListBalletsWithSteps returns every ballet merged with its step
	// sequence. The read is two batch queries; any failure fails the whole
	// call rather than silently omitting children.
	ListBalletsWithSteps(ctx context.Context) ([]BalletWithSteps, error)
}

// Steps are the methods for accessing and modifying steps and their
// equipment relationships.
type Steps interface {
	// ListSteps returns every step ordered alphabetically by name.
	ListSteps(ctx context.Context) ([]db.Step, error)
	// GetStep returns a single step. An [ErrNotFound] is returned if the ID
	// does not exist.
	GetStep(ctx context.Context, id int64) (db.Step, error)
	// CreateStep assigns an ID and inserts the step.
	CreateStep(ctx context.Context, step db.Step) (db.Step, error)
	// DeleteStep removes a step and its join rows, returning the deleted row.
	DeleteStep(ctx context.Context, id int64) (db.Step, error)
	// ListStepEquipment returns the step's equipment in insertion order.
	ListStepEquipment(ctx context.Context, stepID int64) ([]db.RequiredEquipment, error)
	// AddStepEquipment links equipment to the step.
	AddStepEquipment(ctx context.Context, stepID, equipmentID int64, required bool) error
	// ListStepsWithEquipment returns every step merged with its equipment,
	// with the same batch semantics as ListBalletsWithSteps.
	ListStepsWithEquipment(ctx context.Context) ([]StepWithEquipment, error)
}

// Equipment are the methods for accessing and modifying equipment.
type Equipment interface {
	// ListEquipment returns every equipment row ordered alphabetically by name.
	ListEquipment(ctx context.Context) ([]db.Equipment, error)
	// GetEquipment returns a single equipment row. An [ErrNotFound] is
	// returned if the ID does not exist.
	GetEquipment(ctx context.Context, id int64) (db.Equipment, error)
	// CreateEquipment assigns an ID and inserts the equipment.
	CreateEquipment(ctx context.Context, equipment db.Equipment) (db.Equipment, error)
	// DeleteEquipment removes an equipment row and its join rows, returning
	// the deleted row.
	DeleteEquipment(ctx context.Context, id int64) (db.Equipment, error)
}

// Store is the combination interface for all entity stores.
type Store interface {
	Users
	Ballets
	Steps
	Equipment
	// Close releases any resources held by the store. An error is returned if
	// the store cannot be cleanly closed.
	Close() error
}

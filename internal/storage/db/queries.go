package db

import (
	"context"
	"database/sql"
)

// DBTX is the subset of [sql.DB] / [sql.Tx] the queries need.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries holds the prepared statement text for every operation against the
// schema. All statements are single autocommit statements.
type Queries struct {
	db DBTX
}

// New binds the queries to a database handle or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const userColumns = "id, username, email, password_hash, is_admin"

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin)
	return u, err
}

// CreateUser inserts a new user row.
func (q *Queries) CreateUser(ctx context.Context, user User) error {
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO users (id, username, email, password_hash, is_admin) VALUES (?, ?, ?, ?, ?)",
		user.ID, user.Username, user.Email, user.PasswordHash, user.IsAdmin,
	)
	return err
}

// UserExists reports whether a user with the given username or email exists.
func (q *Queries) UserExists(ctx context.Context, username, email string) (bool, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		"SELECT count(*) FROM users WHERE username = ? OR email = ?",
		username, email,
	).Scan(&n)
	return n > 0, err
}

// GetUser returns the user with the given ID.
func (q *Queries) GetUser(ctx context.Context, id int64) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id))
}

// GetUserByName returns the user with the given username.
func (q *Queries) GetUserByName(ctx context.Context, username string) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ?", username))
}

// ListUsers returns users ordered by username, paginated by the last seen
// name, up to limit records.
func (q *Queries) ListUsers(ctx context.Context, afterName string, limit int64) ([]User, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username > ? ORDER BY username LIMIT ?",
		afterName, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SetUserAdmin flips the admin flag for the named user, returning the number
// of rows changed.
func (q *Queries) SetUserAdmin(ctx context.Context, username string, isAdmin bool) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		"UPDATE users SET is_admin = ? WHERE username = ?", isAdmin, username)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteUser removes the user row. Join rows submitted by the user keep their
// data; submitted_by references null out via the schema.
func (q *Queries) DeleteUser(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	return err
}

const balletColumns = "id, title, composer, choreographer, year_premiered, " +
	"difficulty_level, duration_minutes, description, submitted_by"

func scanBallet(s interface{ Scan(...any) error }) (Ballet, error) {
	var b Ballet
	err := s.Scan(
		&b.ID, &b.Title, &b.Composer, &b.Choreographer, &b.YearPremiered,
		&b.DifficultyLevel, &b.DurationMinutes, &b.Description, &b.SubmittedBy,
	)
	return b, err
}

// CreateBallet inserts a ballet row.
func (q *Queries) CreateBallet(ctx context.Context, ballet Ballet) error {
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO ballets ("+balletColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		ballet.ID, ballet.Title, ballet.Composer, ballet.Choreographer,
		ballet.YearPremiered, ballet.DifficultyLevel, ballet.DurationMinutes,
		ballet.Description, ballet.SubmittedBy,
	)
	return err
}

// GetBallet returns a single ballet by ID.
func (q *Queries) GetBallet(ctx context.Context, id int64) (Ballet, error) {
	return scanBallet(q.db.QueryRowContext(ctx,
		"SELECT "+balletColumns+" FROM ballets WHERE id = ?", id))
}

// ListBallets returns all ballets ordered alphabetically by title.
func (q *Queries) ListBallets(ctx context.Context) ([]Ballet, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+balletColumns+" FROM ballets ORDER BY title")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ballets := []Ballet{}
	for rows.Next() {
		b, err := scanBallet(rows)
		if err != nil {
			return nil, err
		}
		ballets = append(ballets, b)
	}
	return ballets, rows.Err()
}

// DeleteBallet removes a ballet and returns the deleted row.
func (q *Queries) DeleteBallet(ctx context.Context, id int64) (Ballet, error) {
	return scanBallet(q.db.QueryRowContext(ctx,
		"DELETE FROM ballets WHERE id = ? RETURNING "+balletColumns, id))
}

const stepColumns = "id, name, description, difficulty, submitted_by"

func scanStep(s interface{ Scan(...any) error }) (Step, error) {
	var st Step
	err := s.Scan(&st.ID, &st.Name, &st.Description, &st.Difficulty, &st.SubmittedBy)
	return st, err
}

// CreateStep inserts a step row.
func (q *Queries) CreateStep(ctx context.Context, step Step) error {
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO steps ("+stepColumns+") VALUES (?, ?, ?, ?, ?)",
		step.ID, step.Name, step.Description, step.Difficulty, step.SubmittedBy,
	)
	return err
}

// GetStep returns a single step by ID.
func (q *Queries) GetStep(ctx context.Context, id int64) (Step, error) {
	return scanStep(q.db.QueryRowContext(ctx,
		"SELECT "+stepColumns+" FROM steps WHERE id = ?", id))
}

// ListSteps returns all steps ordered alphabetically by name.
func (q *Queries) ListSteps(ctx context.Context) ([]Step, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+stepColumns+" FROM steps ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	steps := []Step{}
	for rows.Next() {
		st, err := scanStep(rows)
		if err != nil {
			return nil, err
		}
		steps = append(steps, st)
	}
	return steps, rows.Err()
}

// DeleteStep removes a step and returns the deleted row.
func (q *Queries) DeleteStep(ctx context.Context, id int64) (Step, error) {
	return scanStep(q.db.QueryRowContext(ctx,
		"DELETE FROM steps WHERE id = ? RETURNING "+stepColumns, id))
}

const equipmentColumns = "id, name, description, category, submitted_by"

func scanEquipment(s interface{ Scan(...any) error }) (Equipment, error) {
	var e Equipment
	err := s.Scan(&e.ID, &e.Name, &e.Description, &e.Category, &e.SubmittedBy)
	return e, err
}

// CreateEquipment inserts an equipment row.
func (q *Queries) CreateEquipment(ctx context.Context, equipment Equipment) error {
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO equipment ("+equipmentColumns+") VALUES (?, ?, ?, ?, ?)",
		equipment.ID, equipment.Name, equipment.Description,
		equipment.Category, equipment.SubmittedBy,
	)
	return err
}

// GetEquipment returns a single equipment row by ID.
func (q *Queries) GetEquipment(ctx context.Context, id int64) (Equipment, error) {
	return scanEquipment(q.db.QueryRowContext(ctx,
		"SELECT "+equipmentColumns+" FROM equipment WHERE id = ?", id))
}

// ListEquipment returns all equipment ordered alphabetically by name.
func (q *Queries) ListEquipment(ctx context.Context) ([]Equipment, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+equipmentColumns+" FROM equipment ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	equipment := []Equipment{}
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		equipment = append(equipment, e)
	}
	return equipment, rows.Err()
}

// DeleteEquipment removes an equipment row and returns it.
func (q *Queries) DeleteEquipment(ctx context.Context, id int64) (Equipment, error) {
	return scanEquipment(q.db.QueryRowContext(ctx,
		"DELETE FROM equipment WHERE id = ? RETURNING "+equipmentColumns, id))
}

// AddBalletStep links a step into a ballet's sequence.
func (q *Queries) AddBalletStep(ctx context.Context, balletID, stepID, sequenceOrder int64) error {
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO ballet_steps (ballet_id, step_id, sequence_order) VALUES (?, ?, ?)",
		balletID, stepID, sequenceOrder,
	)
	return err
}

// AddStepEquipment links equipment to a step with the required flag.
func (q *Queries) AddStepEquipment(ctx context.Context, stepID, equipmentID int64, required bool) error {
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO step_equipment (step_id, equipment_id, required) VALUES (?, ?, ?)",
		stepID, equipmentID, required,
	)
	return err
}

// ListBalletSteps returns the steps of one ballet ordered by sequence.
func (q *Queries) ListBalletSteps(ctx context.Context, balletID int64) ([]SequencedStep, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.description, s.difficulty, s.submitted_by, bs.sequence_order
		FROM steps s
		JOIN ballet_steps bs ON s.id = bs.step_id
		WHERE bs.ballet_id = ?
		ORDER BY bs.sequence_order`,
		balletID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	steps := []SequencedStep{}
	for rows.Next() {
		var s SequencedStep
		err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Difficulty,
			&s.SubmittedBy, &s.SequenceOrder)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, rows.Err()
}

// ListAllBalletSteps returns every ballet_steps join row with its step in one
// query, ordered so that callers can merge by ballet without re-sorting.
func (q *Queries) ListAllBalletSteps(ctx context.Context) ([]BalletStepRow, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT bs.ballet_id, s.id, s.name, s.description, s.difficulty, s.submitted_by, bs.sequence_order
		FROM steps s
		JOIN ballet_steps bs ON s.id = bs.step_id
		ORDER BY bs.ballet_id, bs.sequence_order`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var joined []BalletStepRow
	for rows.Next() {
		var r BalletStepRow
		err := rows.Scan(&r.BalletID, &r.ID, &r.Name, &r.Description,
			&r.Difficulty, &r.SubmittedBy, &r.SequenceOrder)
		if err != nil {
			return nil, err
		}
		joined = append(joined, r)
	}
	return joined, rows.Err()
}

// ListStepEquipment returns the equipment of one step in insertion order.
func (q *Queries) ListStepEquipment(ctx context.Context, stepID int64) ([]RequiredEquipment, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT e.id, e.name, e.description, e.category, e.submitted_by, se.required
		FROM equipment e
		JOIN step_equipment se ON e.id = se.equipment_id
		WHERE se.step_id = ?`,
		stepID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	equipment := []RequiredEquipment{}
	for rows.Next() {
		var e RequiredEquipment
		err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.Category,
			&e.SubmittedBy, &e.Required)
		if err != nil {
			return nil, err
		}
		equipment = append(equipment, e)
	}
	return equipment, rows.Err()
}

// ListAllStepEquipment returns every step_equipment join row with its
// equipment in one query.
func (q *Queries) ListAllStepEquipment(ctx context.Context) ([]StepEquipmentRow, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT se.step_id, e.id, e.name, e.description, e.category, e.submitted_by, se.required
		FROM equipment e
		JOIN step_equipment se ON e.id = se.equipment_id
		ORDER BY se.step_id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var joined []StepEquipmentRow
	for rows.Next() {
		var r StepEquipmentRow
		err := rows.Scan(&r.StepID, &r.ID, &r.Name, &r.Description,
			&r.Category, &r.SubmittedBy, &r.Required)
		if err != nil {
			return nil, err
		}
		joined = append(joined, r)
	}
	return joined, rows.Err()
}

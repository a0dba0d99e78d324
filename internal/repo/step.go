package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/triplog/backend/internal/domain"
)

// StepRepo defines the persistence operations for Steps.
// All single-record operations are scoped by tripID to enforce ownership —
// a step id is only unique within its trip.
//
// Pictures and the cover picture are embedded on the step row as jsonb;
// replacing a step replaces its whole picture list atomically with the rest
// of the row. There is no atomicity across the read-modify-write sequence the
// service performs on top of this: a concurrent update between the read and
// the write is silently overwritten.
type StepRepo interface {
	// Create inserts a new step and returns the persisted record. The id and
	// trip id must already be assigned by the caller.
	Create(ctx context.Context, step domain.Step) (domain.Step, error)

	// GetByID retrieves a single step by its slug id, scoped to the given tripID.
	// Returns domain.ErrNotFound if no step with that id exists under that trip.
	GetByID(ctx context.Context, tripID, stepID string) (domain.Step, error)

	// ListByTripID returns all steps of a trip ordered by from_date ascending,
	// ties broken by id. This retrieval order is the tie-break order the
	// prev/next linkage relies on.
	ListByTripID(ctx context.Context, tripID string) ([]domain.Step, error)

	// Update replaces the mutable fields of a step (including the embedded
	// picture list), scoped by the step's TripID.
	// Returns domain.ErrNotFound if no step with that id exists under that trip.
	Update(ctx context.Context, step domain.Step) (domain.Step, error)

	// Delete removes a step by id, scoped to the given tripID.
	// Returns domain.ErrNotFound if no step with that id exists under that trip.
	Delete(ctx context.Context, tripID, stepID string) error

	// DeleteByTripID removes all steps of a trip and returns the number of
	// records removed. Removing zero records is not an error — re-running the
	// cascade when no steps remain is a harmless no-op.
	DeleteByTripID(ctx context.Context, tripID string) (int64, error)
}

// pgStepRepo is the Postgres implementation of StepRepo.
type pgStepRepo struct {
	db db
}

// NewStepRepo constructs a StepRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewStepRepo(db db) StepRepo {
	return &pgStepRepo{db: db}
}

func (r *pgStepRepo) Create(ctx context.Context, step domain.Step) (domain.Step, error) {
	const q = `
		INSERT INTO steps (id, trip_id, name, from_date, to_date, description, pictures, cover_picture)
		VALUES (@id, @trip_id, @name, @from_date, @to_date, @description, @pictures, @cover_picture)
		RETURNING id, trip_id, name, from_date, to_date, description, pictures, cover_picture, created_at, updated_at`

	args, err := stepArgs(step)
	if err != nil {
		return domain.Step{}, fmt.Errorf("repo.StepRepo.Create: %w", err)
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanStep(row)
	if err != nil {
		return domain.Step{}, fmt.Errorf("repo.StepRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgStepRepo) GetByID(ctx context.Context, tripID, stepID string) (domain.Step, error) {
	const q = `
		SELECT id, trip_id, name, from_date, to_date, description, pictures, cover_picture, created_at, updated_at
		FROM steps
		WHERE trip_id = @trip_id AND id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID, "id": stepID})
	result, err := scanStep(row)
	if err != nil {
		return domain.Step{}, fmt.Errorf("repo.StepRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgStepRepo) ListByTripID(ctx context.Context, tripID string) ([]domain.Step, error) {
	const q = `
		SELECT id, trip_id, name, from_date, to_date, description, pictures, cover_picture, created_at, updated_at
		FROM steps
		WHERE trip_id = @trip_id
		ORDER BY from_date, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.StepRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var steps []domain.Step
	for rows.Next() {
		s, err := scanStep(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.StepRepo.ListByTripID: scan: %w", err)
		}
		steps = append(steps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StepRepo.ListByTripID: rows: %w", err)
	}

	return steps, nil
}

func (r *pgStepRepo) Update(ctx context.Context, step domain.Step) (domain.Step, error) {
	const q = `
		UPDATE steps
		SET name          = @name,
		    from_date     = @from_date,
		    to_date       = @to_date,
		    description   = @description,
		    pictures      = @pictures,
		    cover_picture = @cover_picture,
		    updated_at    = now()
		WHERE trip_id = @trip_id AND id = @id
		RETURNING id, trip_id, name, from_date, to_date, description, pictures, cover_picture, created_at, updated_at`

	args, err := stepArgs(step)
	if err != nil {
		return domain.Step{}, fmt.Errorf("repo.StepRepo.Update: %w", err)
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanStep(row)
	if err != nil {
		return domain.Step{}, fmt.Errorf("repo.StepRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgStepRepo) Delete(ctx context.Context, tripID, stepID string) error {
	const q = `DELETE FROM steps WHERE trip_id = @trip_id AND id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "id": stepID})
	if err != nil {
		return fmt.Errorf("repo.StepRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.StepRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgStepRepo) DeleteByTripID(ctx context.Context, tripID string) (int64, error) {
	const q = `DELETE FROM steps WHERE trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return 0, fmt.Errorf("repo.StepRepo.DeleteByTripID: %w", err)
	}
	return tag.RowsAffected(), nil
}

// stepArgs builds the named arguments shared by Create and Update.
// Pictures are marshalled to json explicitly so the column always holds a
// well-formed array (never NULL); the cover picture stays NULL when unset.
func stepArgs(step domain.Step) (pgx.NamedArgs, error) {
	pics := step.Pictures
	if pics == nil {
		pics = []domain.Picture{}
	}
	picsJSON, err := json.Marshal(pics)
	if err != nil {
		return nil, fmt.Errorf("marshal pictures: %w", err)
	}

	var coverJSON []byte
	if step.CoverPicture != nil {
		coverJSON, err = json.Marshal(step.CoverPicture)
		if err != nil {
			return nil, fmt.Errorf("marshal cover picture: %w", err)
		}
	}

	return pgx.NamedArgs{
		"id":            step.ID,
		"trip_id":       step.TripID,
		"name":          step.Name,
		"from_date":     step.FromDate,
		"to_date":       step.ToDate,
		"description":   step.Description,
		"pictures":      picsJSON,
		"cover_picture": coverJSON, // nil becomes NULL
	}, nil
}

// scanStep maps a single database row into a domain.Step, unmarshalling the
// embedded jsonb picture columns.
func scanStep(s scanner) (domain.Step, error) {
	var (
		step      domain.Step
		fromDate  pgtype.Date
		toDate    pgtype.Date
		picsJSON  []byte
		coverJSON []byte
	)

	err := s.Scan(&step.ID, &step.TripID, &step.Name, &fromDate, &toDate,
		&step.Description, &picsJSON, &coverJSON, &step.CreatedAt, &step.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Step{}, domain.ErrNotFound
		}
		return domain.Step{}, err
	}

	step.FromDate = fromDate.Time
	step.ToDate = toDate.Time

	if len(picsJSON) > 0 {
		if err := json.Unmarshal(picsJSON, &step.Pictures); err != nil {
			return domain.Step{}, fmt.Errorf("unmarshal pictures: %w", err)
		}
	}
	if len(coverJSON) > 0 {
		var cover domain.Picture
		if err := json.Unmarshal(coverJSON, &cover); err != nil {
			return domain.Step{}, fmt.Errorf("unmarshal cover picture: %w", err)
		}
		step.CoverPicture = &cover
	}

	return step, nil
}

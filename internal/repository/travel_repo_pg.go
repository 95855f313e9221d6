package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
)

type TravelRepository interface {
	Search(ctx context.Context, filter domain.SearchFilter, now time.Time) ([]domain.TravelOption, error)
	Count(ctx context.Context, filter domain.SearchFilter, now time.Time) (int, error)
	GetByTravelID(ctx context.Context, travelID string) (*domain.TravelOption, error)
	Create(ctx context.Context, option *domain.TravelOption) error
	Delete(ctx context.Context, travelID string) error
}

type PGTravelRepository struct {
	db DB
}

func NewTravelRepository(db DB) TravelRepository {
	return &PGTravelRepository{db: db}
}

const travelColumns = `id, travel_id, travel_type, source, destination, departure_time, arrival_time, price_cents, available_seats, created_at, updated_at`

func scanTravel(row scanner) (*domain.TravelOption, error) {
	var t domain.TravelOption
	if err := row.Scan(&t.ID, &t.TravelID, &t.Type, &t.Source, &t.Destination, &t.DepartureTime, &t.ArrivalTime, &t.PriceCents, &t.AvailableSeats, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// searchWhere renders the WHERE clause shared by Search and Count.
func searchWhere(filter domain.SearchFilter, now time.Time) (string, []any) {
	conds := []string{"departure_time >= $1"}
	args := []any{now}
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.OnlyAvailable {
		conds = append(conds, "available_seats > 0")
	}
	if filter.Type != "" {
		add("travel_type = $%d", string(filter.Type))
	}
	if filter.Source != "" {
		add(`source ILIKE $%d ESCAPE '\'`, containsPattern(filter.Source))
	}
	if filter.Destination != "" {
		add(`destination ILIKE $%d ESCAPE '\'`, containsPattern(filter.Destination))
	}
	if filter.DepartureDate != nil {
		day := *filter.DepartureDate
		add("departure_time >= $%d", day)
		add("departure_time < $%d", day.AddDate(0, 0, 1))
	}
	return strings.Join(conds, " AND "), args
}

func (r *PGTravelRepository) Search(ctx context.Context, filter domain.SearchFilter, now time.Time) ([]domain.TravelOption, error) {
	where, args := searchWhere(filter, now)
	query := `SELECT ` + travelColumns + ` FROM travel_options WHERE ` + where + ` ORDER BY departure_time, id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("search travel options", "travel option", err)
	}
	defer rows.Close()

	options := make([]domain.TravelOption, 0)
	for rows.Next() {
		t, err := scanTravel(rows)
		if err != nil {
			return nil, wrapErr("scan travel option", "travel option", err)
		}
		options = append(options, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("search travel options", "travel option", err)
	}
	return options, nil
}

func (r *PGTravelRepository) Count(ctx context.Context, filter domain.SearchFilter, now time.Time) (int, error) {
	where, args := searchWhere(filter, now)
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM travel_options WHERE `+where, args...).Scan(&total); err != nil {
		return 0, wrapErr("count travel options", "travel option", err)
	}
	return total, nil
}

func (r *PGTravelRepository) GetByTravelID(ctx context.Context, travelID string) (*domain.TravelOption, error) {
	t, err := scanTravel(r.db.QueryRow(ctx, `SELECT `+travelColumns+` FROM travel_options WHERE travel_id=$1`, travelID))
	if err != nil {
		return nil, wrapErr("get travel option", "travel option", err)
	}
	return t, nil
}

func (r *PGTravelRepository) Create(ctx context.Context, option *domain.TravelOption) error {
	err := r.db.QueryRow(ctx, `INSERT INTO travel_options (travel_id, travel_type, source, destination, departure_time, arrival_time, price_cents, available_seats)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		option.TravelID, string(option.Type), option.Source, option.Destination, option.DepartureTime, option.ArrivalTime, option.PriceCents, option.AvailableSeats).
		Scan(&option.ID, &option.CreatedAt, &option.UpdatedAt)
	return wrapErr("create travel option", "travel option", err)
}

// Delete removes the option; bookings go with it through ON DELETE CASCADE.
func (r *PGTravelRepository) Delete(ctx context.Context, travelID string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM travel_options WHERE travel_id=$1`, travelID)
	if err != nil {
		return wrapErr("delete travel option", "travel option", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundError{Resource: "travel option"}
	}
	return nil
}

var _ TravelRepository = (*PGTravelRepository)(nil)

package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	"github.com/m04kA/SMC-BeautyBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyBooking/pkg/psqlbuilder"
)

var (
	// ErrSettingsNotFound возвращается, когда запись настроек ещё не создана
	ErrSettingsNotFound = errors.New("settings.repository: settings not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("settings.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("settings.repository: failed to execute query")

	// ErrInvalidRow возвращается, если сохранённые значения не удаётся разобрать
	ErrInvalidRow = errors.New("settings.repository: invalid settings row")
)

// singletonID настройки бизнеса хранятся в единственной строке
const singletonID = 1

// Repository репозиторий настроек бизнеса
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get читает настройки бизнеса
func (r *Repository) Get(ctx context.Context) (*domain.BusinessSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"business_name",
		"phone",
		"whatsapp",
		"email",
		"address",
		"opening_time",
		"closing_time",
		"closed_days",
		"booking_slot_duration",
		"min_advance_booking_hours",
		"max_advance_booking_days",
		"updated_at",
	).
		From("business_settings").
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		s          domain.BusinessSettings
		closedDays string
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.BusinessName,
		&s.Phone,
		&s.WhatsApp,
		&s.Email,
		&s.Address,
		&s.OpeningTime,
		&s.ClosingTime,
		&closedDays,
		&s.SlotDurationMinutes,
		&s.MinAdvanceBookingHours,
		&s.MaxAdvanceBookingDays,
		&s.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %w", ErrExecQuery, err)
	}

	s.ClosedDays, err = domain.ParseWeekdays(domain.SplitWeekdays(closedDays))
	if err != nil {
		return nil, fmt.Errorf("%w: closed_days %q: %v", ErrInvalidRow, closedDays, err)
	}

	return &s, nil
}

// CreateIfMissing сохраняет настройки, если строки ещё нет. Возвращает true, если запись создана.
func (r *Repository) CreateIfMissing(ctx context.Context, s *domain.BusinessSettings) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("business_settings").
		Columns(
			"id",
			"business_name",
			"phone",
			"whatsapp",
			"email",
			"address",
			"opening_time",
			"closing_time",
			"closed_days",
			"booking_slot_duration",
			"min_advance_booking_hours",
			"max_advance_booking_days",
		).
		Values(
			singletonID,
			s.BusinessName,
			s.Phone,
			s.WhatsApp,
			s.Email,
			s.Address,
			s.OpeningTime,
			s.ClosingTime,
			domain.JoinWeekdays(s.ClosedDays),
			s.SlotDurationMinutes,
			s.MinAdvanceBookingHours,
			s.MaxAdvanceBookingDays,
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: CreateIfMissing - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfMissing - execute insert: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfMissing - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	"github.com/m04kA/SMC-BeautyBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyBooking/pkg/psqlbuilder"
)

var (
	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("customer.repository: customer not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("customer.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("customer.repository: failed to execute query")
)

var customerColumns = []string{
	"id",
	"name",
	"phone",
	"email",
	"notes",
	"total_bookings",
	"total_spent",
	"created_at",
	"updated_at",
}

// Repository репозиторий клиентов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetOrCreateByPhone возвращает клиента с телефоном candidate.Phone или создаёт его из candidate.
// Существующий клиент не обновляется. Второе значение - был ли клиент создан.
func (r *Repository) GetOrCreateByPhone(ctx context.Context, candidate *domain.Customer) (*domain.Customer, bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	id := candidate.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("customers").
		Columns("id", "name", "phone", "email", "notes").
		Values(id, candidate.Name, candidate.Phone, candidate.Email, candidate.Notes).
		Suffix("ON CONFLICT (phone) DO NOTHING RETURNING " + strings.Join(customerColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("%w: GetOrCreateByPhone - build insert query: %v", ErrBuildQuery, err)
	}

	created, err := scanCustomer(executor.QueryRowContext(ctx, query, args...))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("%w: GetOrCreateByPhone - execute insert: %w", ErrExecQuery, err)
	}

	// Конфликт по телефону: клиент уже есть
	existing, err := r.getOne(ctx, "GetOrCreateByPhone", squirrel.Eq{"phone": candidate.Phone})
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// GetByID получает клиента по ID. Внутри транзакции строка блокируется.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByPhone получает клиента по телефону
func (r *Repository) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	return r.getOne(ctx, "GetByPhone", squirrel.Eq{"phone": phone})
}

// Accrue атомарно увеличивает счётчики клиента: +1 визит и +amount к сумме.
// Инкремент выполняется в SQL, поэтому параллельные завершения не теряют обновлений.
func (r *Repository) Accrue(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("customers").
		Set("total_bookings", squirrel.Expr("total_bookings + 1")).
		Set("total_spent", squirrel.Expr("total_spent + ?", amount)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Accrue - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Accrue - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Accrue - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(customerColumns...).
		From("customers").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	customer, err := scanCustomer(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan customer: %w", ErrExecQuery, op, err)
	}

	return customer, nil
}

func scanCustomer(row *sql.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Phone,
		&c.Email,
		&c.Notes,
		&c.TotalBookings,
		&c.TotalSpent,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var contactColumns = []string{
	"id",
	"name",
	"email",
	"phone",
	"created_at",
}

// Repository репозиторий контактов (идентичностей вызывающих)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория контактов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindByEmail ищет контакт по email
func (r *Repository) FindByEmail(ctx context.Context, email string) (*domain.Contact, error) {
	return r.findOne(ctx, squirrel.Eq{"email": email})
}

// FindByPhone ищет контакт по телефону
func (r *Repository) FindByPhone(ctx context.Context, phone string) (*domain.Contact, error) {
	return r.findOne(ctx, squirrel.Eq{"phone": phone})
}

// LookupOrCreate разрешает контакт: поиск по email, затем по телефону,
// затем создание нового. Политика разрешения зафиксирована здесь один раз
func (r *Repository) LookupOrCreate(ctx context.Context, name string, email, phone *string) (*domain.Contact, error) {
	if email != nil && *email != "" {
		found, err := r.FindByEmail(ctx, *email)
		if err == nil {
			return found, nil
		}
		if !errors.Is(err, ErrContactNotFound) {
			return nil, err
		}
	}

	if phone != nil && *phone != "" {
		found, err := r.FindByPhone(ctx, *phone)
		if err == nil {
			return found, nil
		}
		if !errors.Is(err, ErrContactNotFound) {
			return nil, err
		}
	}

	return r.Create(ctx, &domain.Contact{Name: name, Email: email, Phone: phone})
}

// Create создает новый контакт
func (r *Repository) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("contacts").
		Columns("name", "email", "phone").
		Values(c.Name, c.Email, c.Phone).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time

	return c, nil
}

func (r *Repository) findOne(ctx context.Context, where squirrel.Eq) (*domain.Contact, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(contactColumns...).
		From("contacts").
		Where(where).
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: findOne - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Contact
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: findOne - scan contact: %v", ErrScanRow, err)
	}

	c.CreatedAt = createdAt.Time

	return &c, nil
}

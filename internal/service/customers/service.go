package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	customerRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/customer"
)

// Service сервис чтения карточек клиентов.
// Счётчики изменяются только при завершении бронирования.
type Service struct {
	customerRepo CustomerRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(customerRepo CustomerRepository, logger Logger) *Service {
	return &Service{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// GetByID получает клиента по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	s.logger.Info("GetByID: fetching customer id=%s", id)

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("GetByID: customer id=%s not found", id)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("GetByID: repository error for customer id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return FromDomainCustomer(customer), nil
}

// GetByPhone получает клиента по номеру телефона
func (s *Service) GetByPhone(ctx context.Context, phone string) (*CustomerResponse, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	s.logger.Info("GetByPhone: fetching customer phone=%s", phone)

	customer, err := s.customerRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("GetByPhone: customer phone=%s not found", phone)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("GetByPhone: repository error for phone=%s: %v", phone, err)
		return nil, fmt.Errorf("%w: GetByPhone - repository error: %v", ErrInternal, err)
	}

	return FromDomainCustomer(customer), nil
}

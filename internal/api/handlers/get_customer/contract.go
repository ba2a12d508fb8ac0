package get_customer

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BeautyBooking/internal/service/customers"
)

type CustomerService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*customers.CustomerResponse, error)
	GetByPhone(ctx context.Context, phone string) (*customers.CustomerResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrOutsideAdvanceWindow возвращается, когда время начала вне окна [now+min, now+max]
	ErrOutsideAdvanceWindow = errors.New("create_booking: booking time is outside the advance booking window")

	// ErrSlotUnavailable возвращается, когда выбранное время пересекается с другой записью,
	// попадает на выходной или выходит за рабочие часы
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

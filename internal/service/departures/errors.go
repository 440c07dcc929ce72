package departures

import "errors"

var (
	// ErrDepartureNotFound возвращается, когда выезд не найден
	ErrDepartureNotFound = errors.New("departure not found")

	// ErrRouteNotFound возвращается, когда маршрут не найден
	ErrRouteNotFound = errors.New("route not found")

	// ErrInvalidState возвращается при действии над завершенным или отмененным выездом
	ErrInvalidState = errors.New("departure is completed or cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

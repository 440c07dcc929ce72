package rotate_departures

import "errors"

var (
	// ErrInvalidTrigger возвращается при неизвестном источнике запуска
	ErrInvalidTrigger = errors.New("rotate_departures: invalid trigger")

	// ErrInternal возвращается, когда не удалось прочитать данные и запуск прерван
	ErrInternal = errors.New("rotate_departures: internal error")
)

package identity

import "errors"

var (
	// ErrInvalidToken возвращается, когда токен не прошел проверку или сессия не найдена
	ErrInvalidToken = errors.New("identity: invalid token")

	// ErrUnknownRole возвращается, когда роль пользователя не поддерживается
	ErrUnknownRole = errors.New("identity: unknown role")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identity client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("identity client: invalid response")
)

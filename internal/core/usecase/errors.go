package usecase

import (
	"errors"

	"rentwise-portal-service/internal/core/domain"
)

// errorText: сообщение платформы, затем текст ошибки, затем "Unknown error".
func errorText(err error) string {
	var remoteErr *domain.RemoteError
	if errors.As(err, &remoteErr) && remoteErr.Message != "" {
		return remoteErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return domain.MsgUnknownError
}

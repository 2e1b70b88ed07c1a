package domain

import (
	"time"

	"github.com/google/uuid"
)

type ToastVariant string

const (
	ToastSuccess ToastVariant = "success"
	ToastError   ToastVariant = "error"
	ToastInfo    ToastVariant = "info"
)

// ToastAutoCloseDelay - через сколько уведомление закрывается само.
const ToastAutoCloseDelay = 3 * time.Second

// Тексты уведомлений.
const (
	MsgAddedToFavorites      = "Added to favorites"
	MsgRemovedFromFavorites  = "Removed from favorites"
	MsgSavedToFavorites      = "Property saved to favorites"
	MsgUnsavedFromFavorites  = "Property removed from favorites"
	MsgLoginToSave           = "Please log in to save properties"
	MsgLoginToSaveFavorites  = "Please log in to save properties to your favorites"
	MsgErrorUpdatingFavorite = "Error updating favorites"
	MsgContactSent           = "Message sent successfully!"
	MsgLastNameRequired      = "Last Name is required"
	MsgErrorSendingMessage   = "Error sending message"
	MsgNoSearchResults       = "No properties found matching your search"
	MsgErrorSearching        = "Error performing search"
	MsgErrorFeatured         = "Error loading featured listings"
	MsgErrorLoadingPrefix    = "Error loading properties: "
	MsgUnknownError          = "Unknown error"
)

// Toast - короткое уведомление для пользователя.
type Toast struct {
	ID           string
	Message      string
	Variant      ToastVariant
	AutoClose    bool
	DismissAfter time.Duration
}

// NewToast создает уведомление без автозакрытия. Пустой variant означает success.
func NewToast(message string, variant ToastVariant) Toast {
	if variant == "" {
		variant = ToastSuccess
	}
	return Toast{
		ID:      uuid.New().String(),
		Message: message,
		Variant: variant,
	}
}

// WithAutoClose возвращает копию, которая закроется через ToastAutoCloseDelay.
func (t Toast) WithAutoClose() Toast {
	t.AutoClose = true
	t.DismissAfter = ToastAutoCloseDelay
	return t
}

// SuccessToast - успешные уведомления закрываются сами.
func SuccessToast(message string) Toast {
	return NewToast(message, ToastSuccess).WithAutoClose()
}

func ErrorToast(message string) Toast {
	return NewToast(message, ToastError)
}

func InfoToast(message string) Toast {
	return NewToast(message, ToastInfo)
}

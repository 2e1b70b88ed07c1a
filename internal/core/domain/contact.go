package domain

// ContactForm - заявка агенту со страницы объекта.
type ContactForm struct {
	FirstName  string `json:"firstName" validate:"max=80"`
	LastName   string `json:"lastName" validate:"required,max=80"`
	Email      string `json:"email" validate:"omitempty,email"`
	Message    string `json:"message" validate:"max=4000"`
	PropertyID string `json:"propertyId"`
}

package domain

// AnonymousUserID - идентификатор гостевого пользователя платформы.
const AnonymousUserID = "005000000000000"

// Identity - текущий пользователь, как его видит платформа.
type Identity struct {
	ID    string
	Name  string
	Email string
	Token string // исходный bearer-токен, пробрасывается в платформу
}

// AnonymousIdentity возвращает гостя.
func AnonymousIdentity() Identity {
	return Identity{ID: AnonymousUserID}
}

// IsAuthenticated: пустой ID и гостевой sentinel считаются анонимными.
func (i Identity) IsAuthenticated() bool {
	return i.ID != "" && i.ID != AnonymousUserID
}

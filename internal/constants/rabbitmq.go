package constants

// Обменник событий портала
const (
	ExchangePortalEvents = "portal_events"
	ExchangeTypeTopic    = "topic"
)

// Ключи маршрутизации
const (
	RoutingKeyFavoriteChanged = "favorite.changed"
)

// Очередь экземпляра: эксклюзивная, удаляется вместе с соединением.
// К префиксу добавляется идентификатор экземпляра.
const QueuePrefixFavoriteChanges = "portal.favorite_changes."

// Тип и версия события, по ним выбирается JSON-схема
const (
	EventTypeFavoriteChanged    = "FavoriteChangedEvent"
	EventVersionFavoriteChanged = "1.0.0"
)

// Заголовки сообщений
const (
	HeaderTraceID      = "x-trace-id"
	HeaderEventType    = "x-event-type"
	HeaderEventVersion = "x-event-version"
)

const FavoriteChangesPrefetch = 20

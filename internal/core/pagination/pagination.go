package pagination

import (
	"strconv"

	"rentwise-portal-service/internal/core/domain"
)

// PageSize - сколько объектов показывается на одной странице.
const PageSize = 9

// TotalPages = ceil(total/PageSize), но не меньше 1.
func TotalPages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + PageSize - 1) / PageSize
}

// ClampPage прижимает номер страницы к [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// IsValidPageChange: переход на текущую страницу или за границы игнорируется.
func IsValidPageChange(requested, current, totalPages int) bool {
	return requested != current && requested >= 1 && requested <= totalPages
}

// Paginate возвращает элементы страницы page (с единицы).
// Страница за пределами коллекции дает пустой срез.
func Paginate[T any](items []T, page int) []T {
	if page < 1 {
		return []T{}
	}
	start := (page - 1) * PageSize
	if start >= len(items) {
		return []T{}
	}
	end := min(start+PageSize, len(items))
	return items[start:end]
}

// Buttons строит кнопки пагинации: Previous, номера страниц, Next.
// Если страница одна, возвращается единственная активная кнопка "1".
func Buttons(currentPage, totalPages int) []domain.PageButton {
	if totalPages <= 1 {
		return []domain.PageButton{{Label: "1", Value: 1, Active: true, IsNumber: true}}
	}

	buttons := make([]domain.PageButton, 0, totalPages+2)
	buttons = append(buttons, domain.PageButton{
		Label:    "Previous",
		Value:    currentPage - 1,
		Disabled: currentPage == 1,
		IsPrev:   true,
	})
	for i := 1; i <= totalPages; i++ {
		buttons = append(buttons, domain.PageButton{
			Label:    strconv.Itoa(i),
			Value:    i,
			Active:   i == currentPage,
			IsNumber: true,
		})
	}
	buttons = append(buttons, domain.PageButton{
		Label:    "Next",
		Value:    currentPage + 1,
		Disabled: currentPage == totalPages,
		IsNext:   true,
	})
	return buttons
}

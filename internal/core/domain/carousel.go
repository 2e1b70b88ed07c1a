package domain

// DefaultPropertyImage - ресурс платформы, который показывается вместо отсутствующего фото.
const DefaultPropertyImage = "/resource/DefaultPropertyImage"

// Carousel - галерея изображений на странице объекта. Листается по кругу.
type Carousel struct {
	Images []ImageRef
	Index  int
}

// NewCarousel: пустой список заменяется заглушкой.
func NewCarousel(images []ImageRef) Carousel {
	if len(images) == 0 {
		images = []ImageRef{DefaultPropertyImage}
	}
	return Carousel{Images: images}
}

func (c Carousel) Next() Carousel {
	if len(c.Images) == 0 {
		return c
	}
	c.Index = (c.Index + 1) % len(c.Images)
	return c
}

func (c Carousel) Previous() Carousel {
	if len(c.Images) == 0 {
		return c
	}
	c.Index = (c.Index - 1 + len(c.Images)) % len(c.Images)
	return c
}

// Current - изображение под текущим индексом.
func (c Carousel) Current() ImageRef {
	if len(c.Images) == 0 {
		return DefaultPropertyImage
	}
	return c.Images[c.Index]
}

// DisplayIndex - номер для подписи "N / M", с единицы.
func (c Carousel) DisplayIndex() int {
	return c.Index + 1
}

// WithFallback заменяет галерею заглушкой после ошибки загрузки изображения.
func (c Carousel) WithFallback() Carousel {
	if len(c.Images) == 1 && c.Images[0] == DefaultPropertyImage {
		return c
	}
	return Carousel{Images: []ImageRef{DefaultPropertyImage}}
}

// PlaceholderImage - заглушка галереи, если изображения не удалось загрузить.
const PlaceholderImage = "/assets/images/property-placeholder.jpg"

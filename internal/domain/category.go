package domain

// Category описывает категорию товаров
type Category struct {
	ID   int64
	Name string
	Slug string
}

func NewCategory(name string, slug string) *Category {
	return &Category{
		Name: name,
		Slug: slug,
	}
}

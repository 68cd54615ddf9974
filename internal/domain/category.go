package domain

import "time"

// Category описывает узел каталога. Категории образуют направленный
// ациклический граф: узел может иметь несколько родителей, связи
// хранятся списками смежности, а не обратными ссылками на объекты.
type Category struct {
	ID        int64
	Name      string
	Parents   []int64
	Children  []int64
	CreatedAt time.Time
}

func NewCategory(name string) *Category {
	return &Category{
		Name: name,
	}
}

// HasParent сообщает, есть ли прямое ребро к указанному родителю.
func (c *Category) HasParent(id int64) bool {
	for _, p := range c.Parents {
		if p == id {
			return true
		}
	}
	return false
}

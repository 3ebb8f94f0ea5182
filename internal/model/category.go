package model

import (
	"fmt"
	"strings"
)

// Category is one label of the fixed merchant classification target set.
type Category int

// Declaration order is significant: classifiers break score ties in this order.
const (
	Transport Category = iota
	Food
	Groceries
	Shopping
	Bills
	Entertainment

	numCategories
)

// NumCategories is the size of the category enumeration.
const NumCategories = int(numCategories)

var categoryNames = [NumCategories]string{
	Transport:     "Transport",
	Food:          "Food",
	Groceries:     "Groceries",
	Shopping:      "Shopping",
	Bills:         "Bills",
	Entertainment: "Entertainment",
}

// Categories returns every category in declaration order.
func Categories() []Category {
	cats := make([]Category, NumCategories)
	for i := range cats {
		cats[i] = Category(i)
	}
	return cats
}

// Valid reports whether c belongs to the enumeration.
func (c Category) Valid() bool {
	return c >= 0 && c < numCategories
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory resolves a category by name, ignoring case and surrounding space.
func ParseCategory(name string) (Category, error) {
	name = strings.TrimSpace(name)
	for i, n := range categoryNames {
		if strings.EqualFold(n, name) {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

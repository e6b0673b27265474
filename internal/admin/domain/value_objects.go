package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxStoreNameRunes   = 120
	maxDescriptionRunes = 2000
)

var allowedCategories = []string{"restaurante", "lanchonete", "pizzaria", "mercado", "farmacia", "bebidas", "padaria", "outros"}

type StoreName string

func NewStoreName(value string) (StoreName, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("store name is required")
	}
	if utf8.RuneCountInString(trimmed) > maxStoreNameRunes {
		return "", fmt.Errorf("store name must be <= %d characters", maxStoreNameRunes)
	}
	return StoreName(trimmed), nil
}

func (n StoreName) String() string {
	return string(n)
}

type Category string

// NewCategory accepts an empty category, which is stored as "outros".
func NewCategory(value string) (Category, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return Category("outros"), nil
	}
	for _, allowed := range allowedCategories {
		if allowed == trimmed {
			return Category(trimmed), nil
		}
	}
	return "", fmt.Errorf("invalid category: %s", trimmed)
}

func (c Category) String() string {
	return string(c)
}

type Description string

func NewDescription(value string) (Description, error) {
	trimmed := strings.TrimSpace(value)
	if utf8.RuneCountInString(trimmed) > maxDescriptionRunes {
		return "", fmt.Errorf("description must be <= %d characters", maxDescriptionRunes)
	}
	return Description(trimmed), nil
}

func (d Description) String() string {
	return string(d)
}

package domain

import "context"

// Language is one of the constructed "Neo" languages users contribute
// translations for.
type Language struct {
	ID       string
	Code     string
	Name     string
	IsActive bool
}

// LanguageRepository defines the interface for language persistence.
type LanguageRepository interface {
	ListActive(ctx context.Context) ([]Language, error)
	GetByID(ctx context.Context, id string) (*Language, error)
}

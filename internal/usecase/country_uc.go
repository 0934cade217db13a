package usecase

import (
	"context"

	"engagesphere/internal/domain/model"
	"engagesphere/internal/domain/ports/repository"
)

// Compile-time check
var _ CountryUseCase = (*countryUC)(nil)

type CountryUseCase interface {
	ListAll(ctx context.Context) ([]*model.Country, error)
}

type countryUC struct {
	countries repository.CountryRepository
}

func NewCountryUseCase(countries repository.CountryRepository) *countryUC {
	return &countryUC{countries: countries}
}

func (u *countryUC) ListAll(ctx context.Context) ([]*model.Country, error) {
	return u.countries.ListAll(ctx, nil)
}

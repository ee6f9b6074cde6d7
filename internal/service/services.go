package service

import (
	"github.com/xylexgaming/xgi-website/internal/catalog"
	"github.com/xylexgaming/xgi-website/internal/config"
	"github.com/xylexgaming/xgi-website/internal/repository"
)

type Services struct {
	Catalog *CatalogService
	Player  *PlayerService
	Auth    *AuthService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) (*Services, error) {
	validator, err := catalog.NewValidator()
	if err != nil {
		return nil, err
	}
	auth, err := NewAuthService(cfg)
	if err != nil {
		return nil, err
	}
	return &Services{
		Catalog: NewCatalogService(repos.Catalog, validator),
		Player:  NewPlayerService(repos.Player, repos.Newsletter),
		Auth:    auth,
	}, nil
}

package service

import (
	"time"

	"github.com/parkgo/parkgo/internal/repository"
	redisrepo "github.com/parkgo/parkgo/internal/repository/redis"
	"github.com/parkgo/parkgo/internal/service/lots"
	"github.com/parkgo/parkgo/internal/service/query"
	"github.com/parkgo/parkgo/internal/service/reservation"
	"github.com/parkgo/parkgo/internal/service/spots"
	"github.com/parkgo/parkgo/internal/service/users"
)

type Services struct {
	Lots        *lots.Service
	Spots       *spots.Service
	Reservation *reservation.Service
	Query       *query.Service
	Users       *users.Service
}

type Config struct {
	CacheTTL time.Duration
}

func NewServices(
	store repository.Store,
	cache *redisrepo.Cache,
	queue reservation.Enqueuer,
	limiter reservation.Limiter,
	cfg Config,
) *Services {
	return &Services{
		Lots:        lots.New(store, cache),
		Spots:       spots.New(store, cache),
		Reservation: reservation.New(store, cache, queue, limiter),
		Query:       query.New(store, cache, cfg.CacheTTL),
		Users:       users.New(store, cache),
	}
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/mealdash/mealdash-backend/internal/pkg/apierr"
	"github.com/mealdash/mealdash-backend/internal/pkg/logger"
	"github.com/mealdash/mealdash-backend/internal/repos"
)

const (
	chartWindowDays  = 30
	snapshotCacheKey = "analytics:snapshot"
	snapshotCacheTTL = 30 * time.Second
)

type TodayStats struct {
	Orders     int64   `json:"orders"`
	Deliveries int64   `json:"deliveries"`
	Revenue    float64 `json:"revenue"`
}

type TotalStats struct {
	Users       int64   `json:"users"`
	Restaurants int64   `json:"restaurants"`
	Orders      int64   `json:"orders"`
	Deliveries  int64   `json:"deliveries"`
	Foods       int64   `json:"foods"`
	Revenue     float64 `json:"revenue"`
}

type ChartPoint struct {
	Date    string  `json:"date"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// AnalyticsSnapshot is a point-in-time dashboard view; it is computed
// on demand and never persisted.
type AnalyticsSnapshot struct {
	TodayStats TodayStats   `json:"todayStats"`
	TotalStats TotalStats   `json:"totalStats"`
	ChartData  []ChartPoint `json:"chartData"`
}

type AnalyticsService interface {
	Snapshot(ctx context.Context, now time.Time) (*AnalyticsSnapshot, error)
}

type analyticsService struct {
	log            *logger.Logger
	orderRepo      repos.OrderRepo
	deliveryRepo   repos.DeliveryRepo
	userRepo       repos.UserRepo
	restaurantRepo repos.RestaurantRepo
	foodRepo       repos.FoodRepo
	cache          *redis.Client
}

// NewAnalyticsService builds the aggregator. cache may be nil, in
// which case every snapshot is computed fresh.
func NewAnalyticsService(
	log *logger.Logger,
	orderRepo repos.OrderRepo,
	deliveryRepo repos.DeliveryRepo,
	userRepo repos.UserRepo,
	restaurantRepo repos.RestaurantRepo,
	foodRepo repos.FoodRepo,
	cache *redis.Client,
) AnalyticsService {
	serviceLog := log.With("service", "AnalyticsService")
	return &analyticsService{
		log:            serviceLog,
		orderRepo:      orderRepo,
		deliveryRepo:   deliveryRepo,
		userRepo:       userRepo,
		restaurantRepo: restaurantRepo,
		foodRepo:       foodRepo,
		cache:          cache,
	}
}

// Snapshot rolls orders, deliveries, and catalog counts up into the
// dashboard view. now is injected so callers control the day window
// and the trailing chart range.
func (as *analyticsService) Snapshot(ctx context.Context, now time.Time) (*AnalyticsSnapshot, error) {
	if cached := as.fromCache(ctx); cached != nil {
		return cached, nil
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
	thirtyDaysAgo := now.AddDate(0, 0, -chartWindowDays)

	var snap AnalyticsSnapshot
	var daily []repos.DailyOrderStat

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.TodayStats.Orders, err = as.orderRepo.CountInRange(gctx, nil, startOfDay, endOfDay)
		return err
	})
	g.Go(func() (err error) {
		snap.TodayStats.Deliveries, err = as.deliveryRepo.CountInRange(gctx, nil, startOfDay, endOfDay)
		return err
	})
	g.Go(func() (err error) {
		snap.TodayStats.Revenue, err = as.orderRepo.SumRevenueInRange(gctx, nil, startOfDay, endOfDay)
		return err
	})
	g.Go(func() (err error) {
		snap.TotalStats.Users, err = as.userRepo.CountAll(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		snap.TotalStats.Restaurants, err = as.restaurantRepo.CountAll(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		snap.TotalStats.Orders, err = as.orderRepo.CountAll(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		snap.TotalStats.Deliveries, err = as.deliveryRepo.CountAll(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		snap.TotalStats.Foods, err = as.foodRepo.CountAll(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		snap.TotalStats.Revenue, err = as.orderRepo.SumRevenueAll(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		daily, err = as.orderRepo.RevenueByDay(gctx, nil, thirtyDaysAgo)
		return err
	})
	if err := g.Wait(); err != nil {
		as.log.Error("Analytics snapshot failed", "error", err)
		return nil, apierr.Storage("analytics_failed", err)
	}

	snap.ChartData = make([]ChartPoint, 0, len(daily))
	for _, stat := range daily {
		snap.ChartData = append(snap.ChartData, ChartPoint{
			Date:    fmt.Sprintf("%d-%02d-%02d", stat.Year, stat.Month, stat.Day),
			Orders:  stat.Orders,
			Revenue: stat.Revenue,
		})
	}

	as.toCache(ctx, &snap)
	return &snap, nil
}

func (as *analyticsService) fromCache(ctx context.Context) *AnalyticsSnapshot {
	if as.cache == nil {
		return nil
	}
	raw, err := as.cache.Get(ctx, snapshotCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var snap AnalyticsSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil
	}
	return &snap
}

func (as *analyticsService) toCache(ctx context.Context, snap *AnalyticsSnapshot) {
	if as.cache == nil {
		return
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := as.cache.Set(ctx, snapshotCacheKey, raw, snapshotCacheTTL).Err(); err != nil {
		as.log.Warn("Failed to cache analytics snapshot", "error", err)
	}
}

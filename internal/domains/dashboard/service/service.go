package service

import (
	"context"

	"lodge/config"
	"lodge/infras/otel"
	bookingModel "lodge/internal/domains/booking/model"
	bookingService "lodge/internal/domains/booking/service"
	customerRepository "lodge/internal/domains/customer/repository"
	"lodge/internal/domains/dashboard/model/dto"
	roomModel "lodge/internal/domains/room/model"
	roomRepository "lodge/internal/domains/room/repository"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"

	"github.com/rs/zerolog/log"
)

const (
	cacheDashboard = "dashboard:get"

	recentBookingLimit = 5
)

type Dashboard interface {
	Get(ctx context.Context) (dto.DashboardResponse, error)
}

type serviceImpl struct {
	roomRepo     roomRepository.Room
	customerRepo customerRepository.Customer
	bookingSvc   bookingService.Booking
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(roomRepo roomRepository.Room, customerRepo customerRepository.Customer, bookingSvc bookingService.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Dashboard {
	return &serviceImpl{
		roomRepo:     roomRepo,
		customerRepo: customerRepo,
		bookingSvc:   bookingSvc,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func roomStatusFilter(status string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Table: roomModel.TableName, Field: roomModel.FieldStatus, Operator: gDto.FilterOperatorEq, Value: status},
		},
	}
}

func (s *serviceImpl) Get(ctx context.Context) (res dto.DashboardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dashboard.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheDashboard, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheDashboard).Msg("cache hit for dashboard")

		return res, nil
	}

	if res.TotalRooms, err = s.roomRepo.Count(ctx, gDto.FilterGroup{}); err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, err
	}

	if res.AvailableRooms, err = s.roomRepo.Count(ctx, roomStatusFilter(constant.RoomStatusAvailable)); err != nil {
		log.Error().Err(err).Msg("failed to count available rooms")

		return res, err
	}

	if res.BookedRooms, err = s.roomRepo.Count(ctx, roomStatusFilter(constant.RoomStatusBooked)); err != nil {
		log.Error().Err(err).Msg("failed to count booked rooms")

		return res, err
	}

	if res.MaintenanceRooms, err = s.roomRepo.Count(ctx, roomStatusFilter(constant.RoomStatusMaintenance)); err != nil {
		log.Error().Err(err).Msg("failed to count maintenance rooms")

		return res, err
	}

	if res.TotalCustomers, err = s.customerRepo.Count(ctx, gDto.FilterGroup{}); err != nil {
		log.Error().Err(err).Msg("failed to count customers")

		return res, err
	}

	recentParams := gDto.QueryParams{
		Page:    1,
		Limit:   recentBookingLimit,
		SortBy:  constant.FieldCreatedAt,
		SortDir: constant.DefaultValueSortDir,
	}

	recent, err := s.bookingSvc.GetAll(ctx, recentParams, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get recent bookings")

		return res, err
	}

	res.TotalBookings = recent.TotalData
	res.RecentBookings = recent.Bookings

	if res.ActiveBookings, err = s.bookingSvc.Count(ctx, gDto.QueryParams{}, activeBookingFilter()); err != nil {
		log.Error().Err(err).Msg("failed to count active bookings")

		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheDashboard, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save dashboard to cache")
		}
	}()

	return res, nil
}

func activeBookingFilter() gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Table: bookingModel.TableName, Field: bookingModel.FieldStatus, Operator: gDto.FilterOperatorEq, Value: constant.BookingStatusActive},
		},
	}
}

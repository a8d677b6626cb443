package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	kafkaMocks "lodge/infras/kafka/mocks"
	"lodge/infras/otel/mocks"
	pdfMocks "lodge/infras/pdf/mocks"
	bookingMocks "lodge/internal/domains/booking/mocks"
	bookingModel "lodge/internal/domains/booking/model"
	bookingService "lodge/internal/domains/booking/service"
	customerMocks "lodge/internal/domains/customer/mocks"
	customerModel "lodge/internal/domains/customer/model"
	"lodge/internal/domains/dashboard/service"
	roomMocks "lodge/internal/domains/room/mocks"
	roomModel "lodge/internal/domains/room/model"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
)

type dashboardServiceFixture struct {
	roomRepo     *roomMocks.MockRoom
	customerRepo *customerMocks.MockCustomer
	bookingRepo  *bookingMocks.MockBooking
	cache        *cacheMocks.MockRedisCache
	svc          service.Dashboard
}

func newDashboardServiceFixture(ctrl *gomock.Controller) *dashboardServiceFixture {
	f := &dashboardServiceFixture{
		roomRepo:     roomMocks.NewMockRoom(ctrl),
		customerRepo: customerMocks.NewMockCustomer(ctrl),
		bookingRepo:  bookingMocks.NewMockBooking(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	otelMock := mocks.NewOtel()
	bookingSvc := bookingService.New(
		f.bookingRepo, f.roomRepo, f.customerRepo, cfg, f.cache, otelMock,
		kafkaMocks.NewMockClient(ctrl), pdfMocks.NewMockRenderer(ctrl),
	)

	f.svc = service.New(f.roomRepo, f.customerRepo, bookingSvc, cfg, f.cache, otelMock)

	return f
}

func TestDashboardService_Get(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newDashboardServiceFixture(ctrl)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := f.svc.Get(context.Background())

		assert.NoError(t, err)
	})

	t.Run("aggregates counts and recent bookings", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newDashboardServiceFixture(ctrl)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			AnyTimes()

		gomock.InOrder(
			f.roomRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(10, nil),
			f.roomRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(6, nil),
			f.roomRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil),
			f.roomRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil),
		)

		f.customerRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(25, nil)

		bookings := []bookingModel.Booking{
			{
				ID:         "booking-id",
				RoomID:     "room-id",
				CustomerID: "customer-id",
				CheckIn:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				CheckOut:   time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
				Status:     constant.BookingStatusActive,
			},
		}

		// The recent-bookings panel reuses the booking service, so its count,
		// page, and relation lookups all run here.
		f.bookingRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(7, nil).
			Times(2)

		f.bookingRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(bookings, nil)

		f.roomRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]roomModel.Room{{ID: "room-id", Number: "101"}}, nil)

		f.customerRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]customerModel.Customer{{ID: "customer-id", Name: "Jane Doe"}}, nil)

		res, err := f.svc.Get(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 10, res.TotalRooms)
		assert.Equal(t, 6, res.AvailableRooms)
		assert.Equal(t, 3, res.BookedRooms)
		assert.Equal(t, 1, res.MaintenanceRooms)
		assert.Equal(t, 25, res.TotalCustomers)
		assert.Equal(t, 7, res.TotalBookings)
		assert.Equal(t, 7, res.ActiveBookings)
		assert.Len(t, res.RecentBookings, 1)
		assert.Equal(t, "101", res.RecentBookings[0].Room.Number)
	})

	t.Run("room count error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newDashboardServiceFixture(ctrl)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		f.roomRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(0, errors.New("database error"))

		_, err := f.svc.Get(context.Background())

		assert.Error(t, err)
	})
}

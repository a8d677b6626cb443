package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"lodge/config"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	"lodge/infras/pdf"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/booking/repository"
	customerModel "lodge/internal/domains/customer/model"
	customerRepository "lodge/internal/domains/customer/repository"
	roomModel "lodge/internal/domains/room/model"
	roomRepository "lodge/internal/domains/room/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	// Room caches go stale when a booking flips room status.
	cacheGetRoomPrefix   = "room:get"
	cacheGetAllRoom      = "room:gets"
	cacheCountRoomPrefix = "room:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Checkout(ctx context.Context, id string) (dto.BookingResponse, error)
	Invoice(ctx context.Context, id string) ([]byte, string, error)
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepository.Room
	customerRepo customerRepository.Customer
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	kafka        kafka.Client
	pdf          pdf.Renderer

	// roomLocks serializes the check-then-book window per room so two
	// concurrent requests cannot both pass the availability check.
	roomLocks sync.Map
}

func New(repo repository.Booking, roomRepo roomRepository.Room, customerRepo customerRepository.Customer, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafkaClient kafka.Client, pdfRenderer pdf.Renderer) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		customerRepo: customerRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		kafka:        kafkaClient,
		pdf:          pdfRenderer,
	}
}

func (s *serviceImpl) lockRoom(roomID string) func() {
	val, _ := s.roomLocks.LoadOrStore(roomID, &sync.Mutex{})
	mutex, _ := val.(*sync.Mutex)
	mutex.Lock()

	return mutex.Unlock
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	checkIn, checkOut, err := req.ParseDates()
	if err != nil {
		return res, err
	}

	unlock := s.lockRoom(req.RoomID)
	defer unlock()

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, err
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found")
	}

	if room.Status == constant.RoomStatusMaintenance {
		return res, failure.Conflict("room is under maintenance")
	}

	customer, err := s.customerRepo.Get(ctx, shared.FilterByID(req.CustomerID, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return res, err
	}

	if customer.ID == constant.Empty {
		return res, failure.NotFound("customer not found")
	}

	overlap, err := s.repo.Exist(ctx, overlapFilter(req.RoomID, checkIn, checkOut))
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking overlap")

		return res, err
	}

	if overlap {
		return res, failure.Conflict("room is not available for the selected dates")
	}

	nights := model.NightsBetween(checkIn, checkOut)
	booking := req.ToModel(user, checkIn, checkOut, room.Price*float64(nights))

	err = s.repo.Tx(ctx, func(sqltx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, sqltx, booking); err != nil {
			return err
		}

		return s.roomRepo.UpdateTx(ctx, sqltx, map[string]any{
			roomModel.FieldStatus:    constant.RoomStatusBooked,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, err
	}

	s.publishEvent(ctx, dto.BookingEventCreated, booking)
	s.invalidateBookingCaches(ctx, booking.ID, booking.RoomID)

	res.FromModel(booking, room, customer)

	return res, nil
}

// overlapFilter matches active bookings whose half-open stay [check_in,
// check_out) intersects the requested range. Two stays overlap when each
// starts before the other ends, so back-to-back stays sharing a boundary
// date do not conflict.
func overlapFilter(roomID string, checkIn, checkOut time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Table: model.TableName, Field: model.FieldRoomID, Operator: gDto.FilterOperatorEq, Value: roomID},
			gDto.Filter{Table: model.TableName, Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: constant.BookingStatusActive},
			gDto.Filter{Table: model.TableName, Field: model.FieldCheckIn, Operator: gDto.FilterOperatorLess, Value: checkOut},
			gDto.Filter{Table: model.TableName, Field: model.FieldCheckOut, Operator: gDto.FilterOperatorGreater, Value: checkIn},
		},
	}
}

func (s *serviceImpl) Checkout(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Checkout")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, err
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found")
	}

	unlock := s.lockRoom(booking.RoomID)
	defer unlock()

	// Re-read under the lock so concurrent checkouts of the same booking
	// cannot both observe it as active.
	booking, err = s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, err
	}

	if booking.Status == constant.BookingStatusCompleted {
		return res, failure.Conflict("booking already checked out")
	}

	now := timezone.Now()

	err = s.repo.Tx(ctx, func(sqltx *sqlx.Tx) error {
		if err := s.repo.UpdateTx(ctx, sqltx, map[string]any{
			model.FieldStatus:        constant.BookingStatusCompleted,
			model.FieldPaymentStatus: constant.PaymentStatusPaid,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}, filter); err != nil {
			return err
		}

		return s.roomRepo.UpdateTx(ctx, sqltx, map[string]any{
			roomModel.FieldStatus:    constant.RoomStatusAvailable,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to checkout booking")

		return res, err
	}

	booking.Status = constant.BookingStatusCompleted
	booking.PaymentStatus = constant.PaymentStatusPaid
	booking.ModifiedAt = now
	booking.ModifiedBy = user

	s.publishEvent(ctx, dto.BookingEventCompleted, booking)
	s.invalidateBookingCaches(ctx, booking.ID, booking.RoomID)

	room, customer, err := s.loadRelations(ctx, booking)
	if err != nil {
		return res, err
	}

	res.FromModel(booking, room, customer)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.getModel(ctx, id)
	if err != nil {
		return res, err
	}

	room, customer, err := s.loadRelations(ctx, booking)
	if err != nil {
		return res, err
	}

	res.FromModel(booking, room, customer)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) getModel(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found")
	}

	return booking, nil
}

func (s *serviceImpl) loadRelations(ctx context.Context, booking model.Booking) (roomModel.Room, customerModel.Customer, error) {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking room")

		return room, customerModel.Customer{}, err
	}

	customer, err := s.customerRepo.Get(ctx, shared.FilterByID(booking.CustomerID, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking customer")

		return room, customer, err
	}

	return room, customer, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	rooms, customers, err := s.loadAllRelations(ctx, bookings)
	if err != nil {
		return res, err
	}

	res.FromModels(bookings, rooms, customers, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) loadAllRelations(ctx context.Context, bookings []model.Booking) (map[string]roomModel.Room, map[string]customerModel.Customer, error) {
	rooms := map[string]roomModel.Room{}
	customers := map[string]customerModel.Customer{}

	if len(bookings) == 0 {
		return rooms, customers, nil
	}

	roomIDs := []string{}
	customerIDs := []string{}

	for _, booking := range bookings {
		if _, ok := rooms[booking.RoomID]; !ok {
			rooms[booking.RoomID] = roomModel.Room{}
			roomIDs = append(roomIDs, booking.RoomID)
		}

		if _, ok := customers[booking.CustomerID]; !ok {
			customers[booking.CustomerID] = customerModel.Customer{}
			customerIDs = append(customerIDs, booking.CustomerID)
		}
	}

	roomModels, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Table: roomModel.TableName, Field: roomModel.FieldID, Operator: gDto.FilterOperatorIn, Value: roomIDs},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking rooms")

		return rooms, customers, err
	}

	for _, room := range roomModels {
		rooms[room.ID] = room
	}

	customerModels, err := s.customerRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Table: customerModel.TableName, Field: customerModel.FieldID, Operator: gDto.FilterOperatorIn, Value: customerIDs},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking customers")

		return rooms, customers, err
	}

	for _, customer := range customerModels {
		customers[customer.ID] = customer
	}

	return rooms, customers, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, eventType string, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		payload, err := json.Marshal(dto.BookingEvent{
			Type:        eventType,
			BookingID:   booking.ID,
			RoomID:      booking.RoomID,
			CustomerID:  booking.CustomerID,
			TotalAmount: booking.TotalAmount,
			OccurredAt:  timezone.Now(),
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to marshal booking event")

			return
		}

		if err := s.kafka.SendMessages(c, kafka.Message{
			Topic: s.cfg.Kafka.Topics.BookingEvents,
			Key:   []byte(booking.ID),
			Value: payload,
		}); err != nil {
			log.Error().Err(err).Str("type", eventType).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context, id, roomID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoomPrefix, roomID)); err != nil {
			log.Error().Err(err).Msg("failed to delete room cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoomPrefix)
	}()
}

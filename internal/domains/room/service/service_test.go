package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/otel/mocks"
	s3Mocks "lodge/infras/s3/mocks"
	bookingMocks "lodge/internal/domains/booking/mocks"
	roomMocks "lodge/internal/domains/room/mocks"
	"lodge/internal/domains/room/model"
	"lodge/internal/domains/room/model/dto"
	"lodge/internal/domains/room/service"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

type roomServiceFixture struct {
	repo        *roomMocks.MockRoom
	bookingRepo *bookingMocks.MockBooking
	cache       *cacheMocks.MockRedisCache
	s3          *s3Mocks.MockS3
	svc         service.Room
}

func newRoomServiceFixture(ctrl *gomock.Controller) *roomServiceFixture {
	f := &roomServiceFixture{
		repo:        roomMocks.NewMockRoom(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
		s3:          s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.RoomImageDir = "rooms"

	// Cache writes and invalidation happen on background goroutines.
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.bookingRepo, cfg, f.cache, mocks.NewOtel(), f.s3)

	return f
}

func standardRoom() model.Room {
	return model.Room{
		ID:       "room-id",
		Number:   "101",
		Type:     "standard",
		Price:    100,
		Capacity: 2,
		Status:   constant.RoomStatusAvailable,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}
}

func TestRoomService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRoomServiceFixture(ctrl)

	req := dto.CreateRoomRequest{
		Number:   "101",
		Type:     "standard",
		Price:    100,
		Capacity: 2,
	}

	tests := []struct {
		name      string
		req       dto.CreateRoomRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req:  req,
			setupMock: func() {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "duplicate room number",
			req:  req,
			setupMock: func() {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "repository error",
			req:  req,
			setupMock: func() {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := f.svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRoomServiceFixture(ctrl)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantCode  int
		wantID    string
	}{
		{
			name: "cache hit",
			id:   "room-id",
			setupMock: func() {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, successful get from db",
			id:   "room-id",
			setupMock: func() {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(standardRoom(), nil)
			},
			wantErr: false,
			wantID:  "room-id",
		},
		{
			name: "room not found",
			id:   "missing-id",
			setupMock: func() {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, res.ID)
			}
		})
	}
}

func TestRoomService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRoomServiceFixture(ctrl)

	newType := "deluxe"
	req := dto.UpdateRoomRequest{Type: newType}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful update",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(standardRoom(), nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "room not found",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := f.svc.Update(ctx, req, "room-id")

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRoomServiceFixture(ctrl)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful delete removes stored image",
			id:   "room-id",
			setupMock: func() {
				room := standardRoom()
				room.Image = "https://cdn.example.com/rooms/room-image.jpg"

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				f.bookingRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				f.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				f.s3.EXPECT().
					Delete(gomock.Any(), "rooms", "room-image.jpg").
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "room with active bookings cannot be deleted",
			id:   "room-id",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(standardRoom(), nil)

				f.bookingRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "room not found",
			id:   "missing-id",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Delete(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

package dto

import bookingDto "lodge/internal/domains/booking/model/dto"

type DashboardResponse struct {
	TotalRooms       int                          `json:"total_rooms"`
	AvailableRooms   int                          `json:"available_rooms"`
	BookedRooms      int                          `json:"booked_rooms"`
	MaintenanceRooms int                          `json:"maintenance_rooms"`
	TotalCustomers   int                          `json:"total_customers"`
	ActiveBookings   int                          `json:"active_bookings"`
	TotalBookings    int                          `json:"total_bookings"`
	RecentBookings   []bookingDto.BookingResponse `json:"recent_bookings"`
}

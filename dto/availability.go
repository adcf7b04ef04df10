package dto

import "time"

type AvailabilityQuery struct {
	CheckIn  string `form:"checkIn" binding:"required,isodate"`
	CheckOut string `form:"checkOut" binding:"required,isodate"`
	RoomType string `form:"roomType" binding:"omitempty,roomtype"`
}

func (q AvailabilityQuery) Dates() (checkIn, checkOut time.Time, err error) {
	if checkIn, err = parseDate(q.CheckIn); err != nil {
		return
	}
	checkOut, err = parseDate(q.CheckOut)
	return
}

type CalendarQuery struct {
	StartDate string `form:"startDate" binding:"required,isodate"`
	EndDate   string `form:"endDate" binding:"required,isodate"`
	RoomID    string `form:"roomId"`
}

func (q CalendarQuery) Dates() (start, end time.Time, err error) {
	if start, err = parseDate(q.StartDate); err != nil {
		return
	}
	end, err = parseDate(q.EndDate)
	return
}

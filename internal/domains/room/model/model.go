package model

import (
	"github.com/shopspring/decimal"

	"frontdesk/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldRoomNumber    = "room_number"
	FieldRoomType      = "room_type"
	FieldPricePerNight = "price_per_night"
	FieldActive        = "active"
)

type Room struct {
	ID            string          `db:"id"`
	RoomNumber    string          `db:"room_number"`
	RoomType      string          `db:"room_type"`
	PricePerNight decimal.Decimal `db:"price_per_night"`
	Active        bool            `db:"active"`
	model.Metadata
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUpgradeTo(t *testing.T) {
	tests := []struct {
		from, to RoomType
		want     bool
	}{
		{RoomTypeSmall, RoomTypeNormal, true},
		{RoomTypeSmall, RoomTypeLarge, true},
		{RoomTypeNormal, RoomTypeLarge, true},
		{RoomTypeNormal, RoomTypeSmall, false},
		{RoomTypeLarge, RoomTypeSmall, false},
		{RoomTypeLarge, RoomTypeNormal, false},
		{RoomTypeSmall, RoomTypeSmall, false},
		{RoomTypeNormal, RoomTypeNormal, false},
		{RoomTypeLarge, RoomTypeLarge, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.IsUpgradeTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestValidRoomType(t *testing.T) {
	assert.True(t, ValidRoomType(RoomTypeSmall))
	assert.True(t, ValidRoomType(RoomTypeNormal))
	assert.True(t, ValidRoomType(RoomTypeLarge))
	assert.False(t, ValidRoomType("small"))
	assert.False(t, ValidRoomType("SUITE"))
	assert.False(t, ValidRoomType(""))
}

func TestRoomTypeDisplay(t *testing.T) {
	assert.Equal(t, "Small", RoomTypeSmall.Display())
	assert.Equal(t, "Normal", RoomTypeNormal.Display())
	assert.Equal(t, "Large", RoomTypeLarge.Display())
}

func TestValidCategory(t *testing.T) {
	for _, c := range PackageCategories {
		assert.True(t, ValidCategory(c))
	}
	assert.False(t, ValidCategory("adventure"))
	assert.False(t, ValidCategory(""))
}

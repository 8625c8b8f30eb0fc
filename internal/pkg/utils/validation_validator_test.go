package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type slotRequest struct {
	SlotDate string `validate:"required,slot_date"`
	SlotTime string `validate:"required,slot_time"`
}

func TestSlotValidators(t *testing.T) {
	t.Run("accepts ledger-form dates and times", func(t *testing.T) {
		valid := []slotRequest{
			{SlotDate: "10_3_2025", SlotTime: "10:00"},
			{SlotDate: "1_12_2025", SlotTime: "09:30"},
			{SlotDate: "28_11_2025", SlotTime: "10:00 AM"},
			{SlotDate: "5_6_2026", SlotTime: "4:30 pm"},
		}
		for _, request := range valid {
			assert.NoError(t, ValidateStruct(&request), "%+v should be valid", request)
		}
	})

	t.Run("rejects malformed dates and times", func(t *testing.T) {
		invalid := []slotRequest{
			{SlotDate: "2025-03-10", SlotTime: "10:00"},
			{SlotDate: "10/3/2025", SlotTime: "10:00"},
			{SlotDate: "10_3_25", SlotTime: "10:00"},
			{SlotDate: "10_3_2025", SlotTime: "ten o'clock"},
			{SlotDate: "10_3_2025", SlotTime: "10"},
			{SlotDate: "", SlotTime: "10:00"},
		}
		for _, request := range invalid {
			assert.Error(t, ValidateStruct(&request), "%+v should be invalid", request)
		}
	})
}

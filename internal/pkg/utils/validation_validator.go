package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	slotDateRegex = regexp.MustCompile(`^\d{1,2}_\d{1,2}_\d{4}$`)
	slotTimeRegex = regexp.MustCompile(`^\d{1,2}:\d{2}(\s?(AM|PM|am|pm))?$`)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("slot_date", validateSlotDate)
	validate.RegisterValidation("slot_time", validateSlotTime)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// validateSlotDate accepts the ledger date-key format D_M_YYYY, e.g. "10_3_2025".
func validateSlotDate(fl validator.FieldLevel) bool {
	return slotDateRegex.MatchString(fl.Field().String())
}

func validateSlotTime(fl validator.FieldLevel) bool {
	return slotTimeRegex.MatchString(fl.Field().String())
}

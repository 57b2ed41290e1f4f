package handler

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	bookingDomain "github.com/suitespot/service-booking/internal/domain/booking"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding rules to gin's validator. Safe to
// call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("stayorder", validateStayOrder)
		}
	})
}

// validateStayOrder checks that a check-out date comes after the check-in date
// held by the sibling field named in the tag parameter. Unparsable values pass
// here and are reported by the date parser with a clearer message.
func validateStayOrder(fl validator.FieldLevel) bool {
	checkIn := fl.Parent().FieldByName(fl.Param())
	if !checkIn.IsValid() {
		return false
	}

	in, err := bookingDomain.ParseDate(checkIn.String())
	if err != nil {
		return true
	}
	out, err := bookingDomain.ParseDate(fl.Field().String())
	if err != nil {
		return true
	}
	return in.Before(out)
}

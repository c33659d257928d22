package get_practitioner_bookings

import (
	"strconv"
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
	"github.com/praxisbook/scheduling-service/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров
func ToServiceRequest(practitionerID int64, fromStr, toStr, statusStr, includeInactiveStr string) (*models.GetPractitionerBookingsRequest, error) {
	req := &models.GetPractitionerBookingsRequest{
		PractitionerID: practitionerID,
	}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &from
	}

	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &to
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}

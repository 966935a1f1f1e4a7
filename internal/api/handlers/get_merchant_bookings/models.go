package get_merchant_bookings

import (
	"net/url"
	"time"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	"github.com/m04kA/LSB-BookingService/internal/service/bookings"
)

// ToServiceRequest формирует запрос к сервису из URL и query параметров
func ToServiceRequest(merchantID, actorID int64, query url.Values) (*bookings.MerchantBookingsRequest, error) {
	req := &bookings.MerchantBookingsRequest{
		MerchantID:      merchantID,
		ActorID:         actorID,
		IncludeTerminal: query.Get("includeTerminal") == "true",
	}

	if s := query.Get("status"); s != "" {
		req.Status = &s
	}

	if d := query.Get("startDate"); d != "" {
		startDate, err := time.Parse(domain.DateFormat, d)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if d := query.Get("endDate"); d != "" {
		endDate, err := time.Parse(domain.DateFormat, d)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	return req, nil
}

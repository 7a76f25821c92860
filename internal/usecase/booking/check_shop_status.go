package booking

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/observability/metrics"
)

const closedMarker = "CLOSED"

type ShopStatus struct {
	Closed bool `json:"closed"`
}

type CheckShopStatus struct {
	source  domain.StatusSource
	metrics *metrics.BookingMetrics
}

func NewCheckShopStatus(
	source domain.StatusSource,
	m *metrics.BookingMetrics,
) *CheckShopStatus {
	return &CheckShopStatus{
		source:  source,
		metrics: m,
	}
}

// Execute never fails: an unreadable document means the shop is open.
func (uc *CheckShopStatus) Execute(ctx context.Context) ShopStatus {
	body, err := uc.source.FetchStatus(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("shop status check failed, assuming open")
		uc.metrics.ObserveStatusCheck("failed")
		return ShopStatus{Closed: false}
	}

	closed := strings.ToUpper(strings.TrimSpace(body)) == closedMarker
	if closed {
		uc.metrics.ObserveStatusCheck("closed")
	} else {
		uc.metrics.ObserveStatusCheck("open")
	}
	return ShopStatus{Closed: closed}
}

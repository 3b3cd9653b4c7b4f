package service

import (
	"testing"

	"github.com/eujoaosantiago/velohub/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestParseMoneyAcceptsDecimalAndMaskedInput(t *testing.T) {
	assert.Equal(t, "1234.56", parseMoney("1234.56").StringFixed(2))
	assert.Equal(t, "1234.56", parseMoney("R$ 1.234,56").StringFixed(2))
	assert.Equal(t, "0.00", parseMoney("").StringFixed(2))
}

func TestMapProviderStatus(t *testing.T) {
	assert.Equal(t, model.SubscriptionTrialing, mapProviderStatus("trialing"))
	assert.Equal(t, model.SubscriptionActive, mapProviderStatus("active"))
	assert.Equal(t, model.SubscriptionActive, mapProviderStatus(""))
	assert.Equal(t, model.SubscriptionPastDue, mapProviderStatus("past_due"))
	assert.Equal(t, model.SubscriptionPastDue, mapProviderStatus("unpaid"))
	assert.Equal(t, model.SubscriptionCanceled, mapProviderStatus("canceled"))

	// Unknown provider statuses fail open rather than locking the store out
	assert.Equal(t, model.SubscriptionActive, mapProviderStatus("some_future_status"))
}

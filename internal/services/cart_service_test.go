// internal/services/cart_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCartSubscriptions(t *testing.T) {
	svc := NewCartService(nil)
	alice := uuid.New()
	bob := uuid.New()

	var aliceNotified, bobNotified int
	svc.Subscribe(alice, func(uuid.UUID) { aliceNotified++ })
	svc.Subscribe(alice, func(uuid.UUID) { aliceNotified++ })
	svc.Subscribe(bob, func(uuid.UUID) { bobNotified++ })

	// Every subscriber for the user fires; other users stay quiet.
	svc.notify(alice)
	assert.Equal(t, 2, aliceNotified)
	assert.Equal(t, 0, bobNotified)

	svc.notify(bob)
	assert.Equal(t, 1, bobNotified)

	svc.Unsubscribe(alice)
	svc.notify(alice)
	assert.Equal(t, 2, aliceNotified)

	// Notifying a user nobody watches is harmless.
	svc.notify(uuid.New())
}

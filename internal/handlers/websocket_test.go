package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/common"
	"github.com/ternarybob/domus/internal/interfaces"
)

func TestAllowEventWhitelist(t *testing.T) {
	config := &common.WebSocketConfig{
		AllowedEvents: []string{"request_completed", "request_failed"},
	}
	h := NewWebSocketHandler(nil, arbor.NewLogger(), config)

	assert.True(t, h.allowEvent("request_completed"))
	assert.True(t, h.allowEvent("request_failed"))
	assert.False(t, h.allowEvent("report_created"))
	assert.False(t, h.allowEvent("request_created"))
}

func TestAllowEventEmptyWhitelistAllowsAll(t *testing.T) {
	h := NewWebSocketHandler(nil, arbor.NewLogger(), &common.WebSocketConfig{})

	assert.True(t, h.allowEvent("report_created"))
	assert.True(t, h.allowEvent("request_completed"))
}

func TestAllowEventThrottlesReportCreated(t *testing.T) {
	config := &common.WebSocketConfig{
		ThrottleIntervals: map[string]string{"report_created": "1m"},
	}
	h := NewWebSocketHandler(nil, arbor.NewLogger(), config)

	assert.True(t, h.allowEvent(string(interfaces.EventReportCreated)))
	assert.False(t, h.allowEvent(string(interfaces.EventReportCreated)),
		"second report_created inside the interval must be throttled")

	// Terminal events are never throttled.
	assert.True(t, h.allowEvent(string(interfaces.EventRequestCompleted)))
	assert.True(t, h.allowEvent(string(interfaces.EventRequestFailed)))
}

func TestAllowEventBadThrottleIntervalDisablesThrottling(t *testing.T) {
	config := &common.WebSocketConfig{
		ThrottleIntervals: map[string]string{"report_created": "often"},
	}
	h := NewWebSocketHandler(nil, arbor.NewLogger(), config)

	for i := 0; i < 3; i++ {
		assert.True(t, h.allowEvent(string(interfaces.EventReportCreated)))
	}
}

func TestWebSocketHandlerSubscribesToAnalysisEvents(t *testing.T) {
	events := &recordingEventService{}
	NewWebSocketHandler(events, arbor.NewLogger(), &common.WebSocketConfig{})

	assert.ElementsMatch(t, []interfaces.EventType{
		interfaces.EventRequestCreated,
		interfaces.EventRequestProcessing,
		interfaces.EventReportCreated,
		interfaces.EventRequestCompleted,
		interfaces.EventRequestFailed,
	}, events.subscribed)
}

type recordingEventService struct {
	subscribed []interfaces.EventType
}

func (s *recordingEventService) Subscribe(eventType interfaces.EventType, handler interfaces.EventHandler) error {
	s.subscribed = append(s.subscribed, eventType)
	return nil
}

func (s *recordingEventService) Publish(ctx context.Context, event interfaces.Event) error {
	return nil
}

func (s *recordingEventService) PublishSync(ctx context.Context, event interfaces.Event) error {
	return nil
}

func (s *recordingEventService) Close() error { return nil }

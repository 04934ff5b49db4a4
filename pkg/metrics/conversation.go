package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ConversationMetrics tracks inbound message handling per conversation state.
type ConversationMetrics struct {
	messages *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewConversationMetrics registers the conversation metrics on the provided registerer.
func NewConversationMetrics(reg prometheus.Registerer) *ConversationMetrics {
	if reg == nil {
		return &ConversationMetrics{}
	}
	messages := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "conversation_messages_total",
		Help: "Inbound messages handled, labeled by the state that handled them.",
	}, []string{"state"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "conversation_handle_duration_seconds",
		Help:    "Time spent producing a reply, including catalog and AI calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"state"})
	reg.MustRegister(messages, duration)
	return &ConversationMetrics{
		messages: messages,
		duration: duration,
	}
}

// ObserveMessage records one handled message for the given state.
func (c *ConversationMetrics) ObserveMessage(state string, duration time.Duration) {
	if c == nil || c.messages == nil {
		return
	}
	c.messages.WithLabelValues(normalizeLabel(state)).Inc()
	c.duration.WithLabelValues(normalizeLabel(state)).Observe(duration.Seconds())
}

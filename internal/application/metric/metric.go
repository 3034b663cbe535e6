package metric

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP метрики - количество запросов
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Общее количество HTTP запросов",
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTP метрики - время обработки запросов
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Время обработки HTTP запросов в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	// WS метрики - количество активных соединений
	wsActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ws_active_connections",
			Help: "Количество активных WebSocket соединений",
		},
	)

	activeRooms = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "roomsync_active_rooms",
			Help: "Количество живых комнат",
		},
	)

	admittedParticipants = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "roomsync_admitted_participants",
			Help: "Количество допущенных участников во всех комнатах",
		},
	)

	pendingRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "roomsync_pending_requests",
			Help: "Количество ожидающих решения хоста заявок",
		},
	)

	eventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roomsync_events_total",
			Help: "Входящие события по типу",
		},
		[]string{"type"},
	)

	droppedMessagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "roomsync_dropped_messages_total",
			Help: "Исходящие сообщения, отброшенные из-за переполненной очереди",
		},
	)

	persistenceFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roomsync_persistence_failures_total",
			Help: "Неудачные fire-and-forget записи в хранилище",
		},
		[]string{"op"},
	)
)

// RecordHTTPMetrics записывает метрики HTTP запроса
func RecordHTTPMetrics(method, endpoint string, status int, duration time.Duration) {
	strStatus := strconv.Itoa(status)

	httpRequestsTotal.WithLabelValues(method, endpoint, strStatus).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, strStatus).Observe(duration.Seconds())
}

func IncrementWSActiveConnections() {
	wsActiveConnections.Inc()
}

func DecrementWSActiveConnections() {
	wsActiveConnections.Dec()
}

func SetActiveRooms(count int) {
	activeRooms.Set(float64(count))
}

func AddAdmittedParticipants(delta int) {
	admittedParticipants.Add(float64(delta))
}

func AddPendingRequests(delta int) {
	pendingRequests.Add(float64(delta))
}

func RecordEvent(eventType string) {
	eventsTotal.WithLabelValues(eventType).Inc()
}

func IncrementDroppedMessages() {
	droppedMessagesTotal.Inc()
}

func IncrementPersistenceFailures(op string) {
	persistenceFailuresTotal.WithLabelValues(op).Inc()
}

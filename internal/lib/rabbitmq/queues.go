package rabbitmq

// Топология очереди широковещательных уведомлений.
const (
	BroadcastExchange   = "notifications"
	BroadcastQueue      = "notification.broadcast"
	BroadcastRoutingKey = "broadcast"
)

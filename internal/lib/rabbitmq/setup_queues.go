package rabbitmq

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

func GetBillingQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "subscription.activated", RoutingKey: "activated"},
		// при необходимости дополнительные очереди для других потребителей
	}
}

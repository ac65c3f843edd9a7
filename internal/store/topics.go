package store

import "strconv"

const (
	TopicPaymentRecorded = "payment.recorded"
)

// Partition key = order_id, so all events of one order keep their order.
func PartitionKey(orderID int64) []byte {
	return []byte(strconv.FormatInt(orderID, 10))
}

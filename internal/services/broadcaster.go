package services

// Broadcaster is the delivery surface the pipelines need from a connection
// registry. Send and BroadcastAll never block and never fail visibly; an
// offline target is a defined no-op.
type Broadcaster interface {
	Send(userID int, kind string, data any) bool
	BroadcastAll(kind string, data any)
	OnlineUserIDs() []int
}

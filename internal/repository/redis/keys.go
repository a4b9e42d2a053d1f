package redis

import "fmt"

const ns = "parkgo:v1"

func KeyAllLots() string {
	return ns + ":lots:all"
}

func KeyLotSpots(lotID int64) string {
	return fmt.Sprintf("%s:lots:%d:spots", ns, lotID)
}

func KeyAdminSummary() string {
	return ns + ":lots:summary:admin"
}

func KeyUserSummary(userID int64) string {
	return fmt.Sprintf("%s:lots:summary:users:%d", ns, userID)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func QueueTasks() string {
	return ns + ":tasks"
}

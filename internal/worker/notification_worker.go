package worker

import (
	"github.com/hotelops/guestdesk/internal/service"
)

// StartNotificationWorker registers fan-out handlers on the dispatcher.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

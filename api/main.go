// Package api exposes the use cases over HTTP. The handlers are thin
// request/response mappers; everything with business meaning happens in
// the use cases.
package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/condor-apps/notifications-service/model"
	"github.com/condor-apps/notifications-service/usecase"
)

var log = logrus.WithFields(logrus.Fields{"package": "api"})

// UseCases contains the orchestrators the API dispatches to.
type UseCases struct {
	SendNotification            *usecase.SendNotification
	CancelNotification          *usecase.CancelNotification
	ReadNotification            *usecase.ReadNotification
	UnreadNotification          *usecase.UnreadNotification
	CountRecipientNotifications *usecase.CountRecipientNotifications
	GetRecipientNotifications   *usecase.GetRecipientNotifications
}

// Server routes HTTP requests to the use cases.
type Server struct {
	router   *gin.Engine
	useCases *UseCases
}

// New creates a new API server.
func New(useCases *UseCases) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	server := &Server{
		router:   router,
		useCases: useCases,
	}
	server.registerRoutes()
	return server
}

// Run starts the HTTP server on the given port and blocks until it stops.
func (s *Server) Run(port int) error {
	return s.router.Run(fmt.Sprintf(":%d", port))
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	notifications := s.router.Group("/notifications")
	{
		notifications.POST("", s.createNotification)
		notifications.PATCH("/:notificationId/cancel", s.cancelNotification)
		notifications.PATCH("/:notificationId/read", s.readNotification)
		notifications.PATCH("/:notificationId/unread", s.unreadNotification)
		notifications.GET("/count/from/:recipientId", s.countRecipientNotifications)
		notifications.GET("/from/:recipientId", s.getRecipientNotifications)
	}
}

// respondError maps a use case failure to a response status. Validation
// failures surface the violated constraint; backend failures don't leak
// details to the client.
func respondError(c *gin.Context, err error) {
	switch err.(type) {
	case model.ValidationError:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case model.NotFoundError:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Errorf("request failed: %s", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// createNotificationBody is the request body for creating a notification.
type createNotificationBody struct {
	RecipientID string `json:"recipientId" binding:"required"`
	Content     string `json:"content" binding:"required"`
	Category    string `json:"category" binding:"required"`
}

func (s *Server) createNotification(c *gin.Context) {
	var body createNotificationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := s.useCases.SendNotification.Execute(c.Request.Context(), usecase.SendNotificationRequest{
		RecipientID: body.RecipientID,
		Content:     body.Content,
		Category:    body.Category,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"notification": toNotificationView(response.Notification)})
}

func (s *Server) cancelNotification(c *gin.Context) {
	err := s.useCases.CancelNotification.Execute(c.Request.Context(), usecase.CancelNotificationRequest{
		NotificationID: c.Param("notificationId"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) readNotification(c *gin.Context) {
	err := s.useCases.ReadNotification.Execute(c.Request.Context(), usecase.ReadNotificationRequest{
		NotificationID: c.Param("notificationId"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) unreadNotification(c *gin.Context) {
	err := s.useCases.UnreadNotification.Execute(c.Request.Context(), usecase.UnreadNotificationRequest{
		NotificationID: c.Param("notificationId"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) countRecipientNotifications(c *gin.Context) {
	response, err := s.useCases.CountRecipientNotifications.Execute(
		c.Request.Context(),
		usecase.CountRecipientNotificationsRequest{RecipientID: c.Param("recipientId")},
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": response.Count})
}

func (s *Server) getRecipientNotifications(c *gin.Context) {
	response, err := s.useCases.GetRecipientNotifications.Execute(
		c.Request.Context(),
		usecase.GetRecipientNotificationsRequest{RecipientID: c.Param("recipientId")},
	)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]NotificationView, 0, len(response.Notifications))
	for _, notification := range response.Notifications {
		views = append(views, toNotificationView(notification))
	}
	c.JSON(http.StatusOK, gin.H{"notifications": views})
}

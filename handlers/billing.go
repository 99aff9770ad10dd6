package handlers

import (
	"net/http"
	"time"

	"stayease/config"
	"stayease/services/billing"
	"stayease/services/tasks"
	"stayease/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BillingHandler exposes operator control over the billing resolver:
// trigger a run out of schedule and read the latest run report.
type BillingHandler struct {
	Resolver *billing.Resolver
	Queue    *asynq.Client
}

func NewBillingHandler(resolver *billing.Resolver, queue *asynq.Client) *BillingHandler {
	return &BillingHandler{Resolver: resolver, Queue: queue}
}

// TriggerRunHandler handles POST /api/admin/billing/run. The run executes
// on the worker, not in the request; the response only confirms enqueue.
func (h *BillingHandler) TriggerRunHandler(c *gin.Context) {
	logger := utils.GetLogger()

	payload := tasks.BillingRunPayload{Trigger: "manual", RequestedAt: time.Now()}
	task, opts, err := tasks.NewBillingRunTask(payload, config.AppConfig.Billing.JobMaxRetry)
	if err != nil {
		logger.Error("Billing task build failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build billing task"})
		return
	}

	info, err := h.Queue.Enqueue(task, opts...)
	if err != nil {
		logger.Error("Billing task enqueue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not enqueue billing run"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"task_id": info.ID, "queue": info.Queue})
}

// LastReportHandler handles GET /api/admin/billing/report.
func (h *BillingHandler) LastReportHandler(c *gin.Context) {
	report := h.Resolver.LastReport()
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No billing run has completed yet"})
		return
	}
	c.JSON(http.StatusOK, report)
}

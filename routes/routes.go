package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/controllers"
)

// RegisterRoutes wires all bulk edit endpoints onto the engine, receiving
// the controllers as explicit dependencies.
func RegisterRoutes(r *gin.Engine, editController *controllers.BulkEditController, jobHandler *controllers.BulkEditJobHandler) {
	bulkEditRoutes := r.Group("/bulk-edits")
	{
		bulkEditRoutes.POST("/preview", editController.PreviewFilter)
		bulkEditRoutes.POST("/", editController.RunBulkEdit)
		bulkEditRoutes.GET("/history", editController.GetHistory)
		bulkEditRoutes.GET("/history/:id", editController.GetHistoryRecord)

		bulkEditRoutes.POST("/async", jobHandler.CreateJob)
		bulkEditRoutes.GET("/jobs/:id", jobHandler.GetJobStatus)
	}
}

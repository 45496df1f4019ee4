package image

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the image API. uploadMiddleware runs only on POST /upload.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, uploadMiddleware ...gin.HandlerFunc) {
	upload := append(append([]gin.HandlerFunc{}, uploadMiddleware...), h.Upload)
	r.POST("/upload", upload...)
	r.GET("/image/:userId", h.GetByUser)
	r.GET("/allImages", h.ListAll)
	r.POST("/filterImages", h.ListByFilter)
}

// RegisterBlobRoutes serves stored blobs under /uploads/.
func RegisterBlobRoutes(r gin.IRouter, h *Handler) {
	r.GET("/uploads/:filename", h.ServeBlob)
	r.HEAD("/uploads/:filename", h.ServeBlob)
}

package route

import (
	"github.com/gin-gonic/gin"

	"github.com/bassista/bookpop/internal/api/controller"
	"github.com/bassista/bookpop/internal/api/middleware"
	"github.com/bassista/bookpop/internal/app"
)

// NewBookRouter registers all book endpoints under the given group.
func NewBookRouter(appCtx *app.App, group *gin.RouterGroup) {
	bc := controller.NewBookController(appCtx.Books, appCtx.Tracker)
	timeoutMiddleware := middleware.RequestTimeout(appCtx.Config.Server.RequestTimeout)

	group.GET("books", timeoutMiddleware, bc.AllBooks)
	group.GET("books/popular", timeoutMiddleware, bc.PopularBooks)
	group.GET("books/search", timeoutMiddleware, bc.SearchBooks)
	group.GET("books/:id", timeoutMiddleware, bc.GetBook)
	group.POST("books", timeoutMiddleware, bc.CreateBook)
	group.POST("books/batch", timeoutMiddleware, bc.CreateBooks)
	group.PUT("books/:id", timeoutMiddleware, bc.UpdateBook)
	group.DELETE("books/:id", timeoutMiddleware, bc.DeleteBook)
}

package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/bassista/bookpop/internal/books"
	"github.com/bassista/bookpop/internal/logger"
)

// BookService is the slice of the books service the controller needs.
type BookService interface {
	GetByID(ctx context.Context, id int64) (*books.Book, error)
	List(ctx context.Context) ([]books.Book, error)
	Search(ctx context.Context, title, author string) ([]books.Book, error)
	Create(ctx context.Context, book *books.Book) error
	Update(ctx context.Context, id int64, book *books.Book) error
	Delete(ctx context.Context, id int64) error
	CreateMany(ctx context.Context, items []books.Book) ([]books.Book, error)
}

// PopularityService serves ranked top-K lookups.
type PopularityService interface {
	TopPopular(ctx context.Context, count int) ([]books.Book, error)
}

// BookController handles all book HTTP endpoints.
type BookController struct {
	service  BookService
	popular  PopularityService
	validate *validator.Validate
}

// NewBookController creates a controller over the given services.
func NewBookController(service BookService, popular PopularityService) *BookController {
	return &BookController{
		service:  service,
		popular:  popular,
		validate: validator.New(),
	}
}

// GetBook handles GET /api/books/:id.
func (bc *BookController) GetBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}
	logger.WithComponent("book-controller").Debugf("GET /books/%d handler called", id)

	book, err := bc.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, books.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
			return
		}
		logger.WithComponent("book-controller").Errorf("get book %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read book"})
		return
	}
	c.JSON(http.StatusOK, book)
}

// AllBooks handles GET /api/books. An empty collection maps to 404 to keep
// the outward contract; the service itself treats empty as a valid result.
func (bc *BookController) AllBooks(c *gin.Context) {
	logger.WithComponent("book-controller").Debugf("GET /books handler called")

	items, err := bc.service.List(c.Request.Context())
	if err != nil {
		logger.WithComponent("book-controller").Errorf("list books: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read book list"})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no books found"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// SearchBooks handles GET /api/books/search?title=&author=.
func (bc *BookController) SearchBooks(c *gin.Context) {
	title := c.Query("title")
	author := c.Query("author")
	logger.WithComponent("book-controller").Debugf("GET /books/search handler called, title=%q author=%q", title, author)

	items, err := bc.service.Search(c.Request.Context(), title, author)
	if err != nil {
		logger.WithComponent("book-controller").Errorf("search books: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search books"})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no books matched"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// PopularBooks handles GET /api/books/popular?count=. An empty leaderboard
// yields 204, not an error.
func (bc *BookController) PopularBooks(c *gin.Context) {
	count := books.DefaultTopCount
	if raw := c.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid count"})
			return
		}
		count = parsed
	}
	logger.WithComponent("book-controller").Debugf("GET /books/popular handler called, count=%d", count)

	items, err := bc.popular.TopPopular(c.Request.Context(), count)
	if err != nil {
		logger.WithComponent("book-controller").Errorf("popular books: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read leaderboard"})
		return
	}
	if len(items) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateBook handles POST /api/books.
func (bc *BookController) CreateBook(c *gin.Context) {
	logger.WithComponent("book-controller").Debugf("POST /books handler called")

	var book books.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := bc.validate.Struct(book); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := bc.service.Create(c.Request.Context(), &book); err != nil {
		logger.WithComponent("book-controller").Errorf("create book: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create book"})
		return
	}
	c.JSON(http.StatusCreated, book)
}

// UpdateBook handles PUT /api/books/:id. The path id must match the payload id.
func (bc *BookController) UpdateBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}
	logger.WithComponent("book-controller").Debugf("PUT /books/%d handler called", id)

	var book books.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := bc.validate.Struct(book); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := bc.service.Update(c.Request.Context(), id, &book)
	switch {
	case errors.Is(err, books.ErrBadInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "id mismatch"})
	case errors.Is(err, books.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
	case err != nil:
		logger.WithComponent("book-controller").Errorf("update book %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update book"})
	default:
		c.Status(http.StatusNoContent)
	}
}

// DeleteBook handles DELETE /api/books/:id.
func (bc *BookController) DeleteBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}
	logger.WithComponent("book-controller").Debugf("DELETE /books/%d handler called", id)

	err := bc.service.Delete(c.Request.Context(), id)
	switch {
	case errors.Is(err, books.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
	case err != nil:
		logger.WithComponent("book-controller").Errorf("delete book %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete book"})
	default:
		c.Status(http.StatusNoContent)
	}
}

// CreateBooks handles POST /api/books/batch.
func (bc *BookController) CreateBooks(c *gin.Context) {
	logger.WithComponent("book-controller").Debugf("POST /books/batch handler called")

	var items []books.Book
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	for i := range items {
		if err := bc.validate.Struct(items[i]); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	inserted, err := bc.service.CreateMany(c.Request.Context(), items)
	if err != nil {
		if errors.Is(err, books.ErrBadInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "the book list cannot be empty"})
			return
		}
		logger.WithComponent("book-controller").Errorf("batch create books: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create books"})
		return
	}
	c.JSON(http.StatusOK, inserted)
}

// bookID parses the :id path parameter, writing a 400 response on failure.
func bookID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return 0, false
	}
	return id, true
}

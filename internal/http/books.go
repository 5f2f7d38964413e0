package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/booknest/booknest/internal/entities"
)

type BooksController struct {
	store BookStore

	// afterCreate, when set, is invoked with each newly created book (used to
	// queue background metadata enrichment). Never blocks the response.
	afterCreate func(*entities.Book)
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{store: store}
}

// OnCreate registers a hook called after each successful create.
func (controller *BooksController) OnCreate(hook func(*entities.Book)) {
	controller.afterCreate = hook
}

func (controller *BooksController) ListBooks(c *gin.Context) {
	books, err := controller.store.List(c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	book, err := controller.store.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (controller *BooksController) CreateBook(c *gin.Context) {
	var draft entities.BookDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	book, err := controller.store.Create(draft)
	if err != nil {
		respondError(c, err)
		return
	}
	if controller.afterCreate != nil {
		controller.afterCreate(book)
	}
	c.JSON(http.StatusCreated, book)
}

func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p entities.BookPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	book, err := controller.store.Update(id, p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := controller.store.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

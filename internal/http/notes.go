package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type NotesController struct {
	store NoteStore
}

func NewNotesController(store NoteStore) *NotesController {
	return &NotesController{store: store}
}

type noteBody struct {
	Content string `json:"content"`
}

func (controller *NotesController) ListNotes(c *gin.Context) {
	bookID, ok := parseID(c, "bookId")
	if !ok {
		return
	}
	notes, err := controller.store.ListForBook(bookID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

func (controller *NotesController) CreateNote(c *gin.Context) {
	bookID, ok := parseID(c, "bookId")
	if !ok {
		return
	}
	var body noteBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	note, err := controller.store.Create(bookID, body.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (controller *NotesController) UpdateNote(c *gin.Context) {
	noteID, ok := parseID(c, "noteId")
	if !ok {
		return
	}
	var body noteBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	note, err := controller.store.Update(noteID, body.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func (controller *NotesController) DeleteNote(c *gin.Context) {
	noteID, ok := parseID(c, "noteId")
	if !ok {
		return
	}
	if err := controller.store.Delete(noteID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

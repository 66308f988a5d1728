package handlers

import (
	"net/http"
	"testing"

	"github.com/andrewpaige1/lexideck-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type folderListing struct {
	models.Folder
	GoodCount int `json:"goodCount"`
}

func TestCreateFolderDefaults(t *testing.T) {
	ts := newTestServer(t)
	token, userID := ts.signup(t, "folders")

	root := ts.createFolder(t, token, "  Spanish  ", nil)
	assert.Equal(t, "Spanish", root.Name)
	assert.Equal(t, userID, root.UserID)
	assert.Equal(t, models.DefaultFolderColor, root.Color)
	assert.Nil(t, root.ParentFolderID)

	child := ts.createFolder(t, token, "Verbs", &root.ID)
	require.NotNil(t, child.ParentFolderID)
	assert.Equal(t, root.ID, *child.ParentFolderID)

	code, _ := ts.do(t, http.MethodPost, "/api/folders", token, map[string]any{"name": ""})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = ts.do(t, http.MethodPost, "/api/folders", token, map[string]any{"name": "x", "color": "red"})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = ts.do(t, http.MethodPost, "/api/folders", token, map[string]any{"name": "x", "parentFolder": "nope"})
	assert.Equal(t, http.StatusNotFound, code)

	var roots []folderListing
	ts.mustDo(t, http.MethodGet, "/api/folders?rootsOnly=true", token, nil, http.StatusOK, &roots)
	require.Len(t, roots, 1)
	assert.Equal(t, root.ID, roots[0].ID)

	var children []folderListing
	ts.mustDo(t, http.MethodGet, "/api/folders?parentFolder="+root.ID, token, nil, http.StatusOK, &children)
	require.Len(t, children, 1)
	assert.Equal(t, child.ID, children[0].ID)
}

func TestMoveFolderRejectsCycle(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signup(t, "mover")
	a := ts.createFolder(t, token, "A", nil)
	b := ts.createFolder(t, token, "B", &a.ID)
	c := ts.createFolder(t, token, "C", &b.ID)

	code, _ := ts.do(t, http.MethodPost, "/api/folders/"+a.ID+"/move", token, map[string]any{"parentFolder": c.ID})
	assert.Equal(t, http.StatusConflict, code)
	code, _ = ts.do(t, http.MethodPut, "/api/folders/"+a.ID, token, map[string]any{"parentFolder": a.ID})
	assert.Equal(t, http.StatusConflict, code)

	var moved models.Folder
	ts.mustDo(t, http.MethodPost, "/api/folders/"+c.ID+"/move", token, map[string]any{"parentFolder": nil}, http.StatusOK, &moved)
	assert.Nil(t, moved.ParentFolderID)

	var renamed models.Folder
	ts.mustDo(t, http.MethodPut, "/api/folders/"+b.ID, token, map[string]any{"name": "Bee"}, http.StatusOK, &renamed)
	assert.Equal(t, "Bee", renamed.Name)
	require.NotNil(t, renamed.ParentFolderID, "a rename keeps the parent")
	assert.Equal(t, a.ID, *renamed.ParentFolderID)
}

func TestDeleteFolderSubtree(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signup(t, "deleter")
	root := ts.createFolder(t, token, "Root", nil)
	child := ts.createFolder(t, token, "Child", &root.ID)
	keep := ts.createFolder(t, token, "Keep", nil)
	card := ts.createCard(t, token, "hola", &child.ID)
	ts.createCard(t, token, "adios", &keep.ID)

	ts.mustDo(t, http.MethodDelete, "/api/folders/"+root.ID, token, nil, http.StatusOK, nil)

	code, _ := ts.do(t, http.MethodGet, "/api/folders/"+child.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	var got models.Flashcard
	ts.mustDo(t, http.MethodGet, "/api/flashcards/"+card.ID, token, nil, http.StatusOK, &got)
	assert.Nil(t, got.FolderID, "cards survive their folder")

	var kept models.Folder
	ts.mustDo(t, http.MethodGet, "/api/folders/"+keep.ID, token, nil, http.StatusOK, &kept)
	assert.Equal(t, 1, kept.FlashcardCount)
}

func TestFolderCards(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signup(t, "organiser")
	folder := ts.createFolder(t, token, "Box", nil)
	other := ts.createFolder(t, token, "Other", nil)
	card := ts.createCard(t, token, "gato", nil)

	var added struct {
		Flashcard models.Flashcard `json:"flashcard"`
		Folder    models.Folder    `json:"folder"`
	}
	ts.mustDo(t, http.MethodPost, "/api/folders/"+folder.ID+"/cards", token, map[string]any{"flashcardId": card.ID}, http.StatusOK, &added)
	require.NotNil(t, added.Flashcard.FolderID)
	assert.Equal(t, folder.ID, *added.Flashcard.FolderID)
	assert.Equal(t, 1, added.Folder.FlashcardCount)

	var detail struct {
		models.Folder
		Flashcards []models.Flashcard `json:"flashcards"`
		Children   []models.Folder    `json:"childFolders"`
	}
	ts.mustDo(t, http.MethodGet, "/api/folders/"+folder.ID, token, nil, http.StatusOK, &detail)
	require.Len(t, detail.Flashcards, 1)
	assert.Equal(t, card.ID, detail.Flashcards[0].ID)
	assert.Empty(t, detail.Children)

	code, _ := ts.do(t, http.MethodDelete, "/api/folders/"+other.ID+"/cards/"+card.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	var removed models.Flashcard
	ts.mustDo(t, http.MethodDelete, "/api/folders/"+folder.ID+"/cards/"+card.ID, token, nil, http.StatusOK, &removed)
	assert.Nil(t, removed.FolderID)

	var recounted models.Folder
	ts.mustDo(t, http.MethodPost, "/api/folders/"+folder.ID+"/recount", token, nil, http.StatusOK, &recounted)
	assert.Equal(t, 0, recounted.FlashcardCount)
}

func TestFolderGoodCount(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signup(t, "good")
	folder := ts.createFolder(t, token, "Mastery", nil)
	for i, level := range []int{5, 5, 4} {
		c := ts.createCard(t, token, string(rune('a'+i)), &folder.ID)
		ts.mustDo(t, http.MethodPost, "/api/flashcards/"+c.ID+"/answer", token, map[string]any{
			"confidenceLevel": level,
		}, http.StatusOK, nil)
	}

	var folders []folderListing
	ts.mustDo(t, http.MethodGet, "/api/folders", token, nil, http.StatusOK, &folders)
	require.Len(t, folders, 1)
	assert.Equal(t, 3, folders[0].FlashcardCount)
	assert.Equal(t, 2, folders[0].GoodCount)
}

func TestFoldersAreIsolated(t *testing.T) {
	ts := newTestServer(t)
	owner, _ := ts.signup(t, "owner")
	intruder, _ := ts.signup(t, "intruder")
	folder := ts.createFolder(t, owner, "Private", nil)

	code, _ := ts.do(t, http.MethodGet, "/api/folders/"+folder.ID, intruder, nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = ts.do(t, http.MethodDelete, "/api/folders/"+folder.ID, intruder, nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = ts.do(t, http.MethodPost, "/api/flashcards", intruder, map[string]any{
		"frontContent": "a", "backContent": "b", "folderId": folder.ID,
	})
	assert.Equal(t, http.StatusNotFound, code)

	var folders []folderListing
	ts.mustDo(t, http.MethodGet, "/api/folders", intruder, nil, http.StatusOK, &folders)
	assert.Empty(t, folders)
}

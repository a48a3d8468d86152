package recipes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"rasoi/filemgr"
	"rasoi/models"
	"rasoi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxUploadSize = 10 << 20 // 10 MB

// saveImage is swapped for a stub in tests.
var saveImage = filemgr.SaveImage

// CreateRecipe adds a recipe to one category. The author is always the
// authenticated caller; a client-supplied author field is never read.
func CreateRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	category := ps.ByName("category")
	if !models.ValidCategory(category) {
		utils.RespondWithMessage(w, http.StatusNotFound, "Unknown category")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.RespondWithMessage(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithMessage(w, http.StatusUnauthorized, "Missing token")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	ingredients := parseList(r, "ingredients")
	howTo := parseList(r, "how_to")

	file, header, err := r.FormFile("image")
	if title == "" || len(ingredients) == 0 || len(howTo) == 0 || err != nil {
		utils.RespondWithMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}
	defer file.Close()

	imageURL, err := saveImage(file, header)
	if err != nil {
		if errors.Is(err, filemgr.ErrUnsupportedImage) {
			utils.RespondWithMessage(w, http.StatusBadRequest, "Invalid image file")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving file", err)
		return
	}

	recipe := &models.Recipe{
		Title:       title,
		Image:       imageURL,
		AuthorID:    userID,
		Ingredients: ingredients,
		HowTo:       howTo,
		CreatedAt:   time.Now(),
	}

	if err := store.Insert(r.Context(), category, recipe); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message": "Recipe added successfully",
		"recipe":  recipe,
	})
}

// UpdateRecipe applies a sparse update: only fields present in the form are
// touched. Only the author may update.
func UpdateRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	category := ps.ByName("category")
	if !models.ValidCategory(category) {
		utils.RespondWithMessage(w, http.StatusNotFound, "Unknown category")
		return
	}

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithMessage(w, http.StatusNotFound, "Recipe not found")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.RespondWithMessage(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	recipe, err := store.ByID(r.Context(), category, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.RespondWithMessage(w, http.StatusNotFound, "Recipe not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	if recipe.AuthorID != utils.GetUserIDFromRequest(r) {
		utils.RespondWithMessage(w, http.StatusForbidden, "You can only update your own recipes")
		return
	}

	updates := bson.M{}
	if title := strings.TrimSpace(r.FormValue("title")); title != "" {
		updates["title"] = title
	}
	if _, ok := r.MultipartForm.Value["ingredients"]; ok {
		if ingredients := parseList(r, "ingredients"); len(ingredients) > 0 {
			updates["ingredients"] = ingredients
		}
	}
	if _, ok := r.MultipartForm.Value["how_to"]; ok {
		if howTo := parseList(r, "how_to"); len(howTo) > 0 {
			updates["how_to"] = howTo
		}
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		imageURL, err := saveImage(file, header)
		if err != nil {
			if errors.Is(err, filemgr.ErrUnsupportedImage) {
				utils.RespondWithMessage(w, http.StatusBadRequest, "Invalid image file")
				return
			}
			utils.RespondWithError(w, http.StatusInternalServerError, "Error saving file", err)
			return
		}
		updates["image"] = imageURL
	}

	if len(updates) == 0 {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"message": "Recipe updated successfully",
			"recipe":  recipe,
		})
		return
	}

	updated, err := store.Update(r.Context(), category, id, updates)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Raced a delete; the recipe is gone now.
			utils.RespondWithMessage(w, http.StatusNotFound, "Recipe not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Recipe updated successfully",
		"recipe":  updated,
	})
}

// DeleteRecipe removes a recipe permanently. Only the author may delete.
func DeleteRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	category := ps.ByName("category")
	if !models.ValidCategory(category) {
		utils.RespondWithMessage(w, http.StatusNotFound, "Unknown category")
		return
	}

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithMessage(w, http.StatusNotFound, "Recipe not found")
		return
	}

	recipe, err := store.ByID(r.Context(), category, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.RespondWithMessage(w, http.StatusNotFound, "Recipe not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	if recipe.AuthorID != utils.GetUserIDFromRequest(r) {
		utils.RespondWithMessage(w, http.StatusForbidden, "You can only delete your own recipes")
		return
	}

	if err := store.Delete(r.Context(), category, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.RespondWithMessage(w, http.StatusNotFound, "Recipe not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Recipe deleted successfully")
}

// parseList reads an ordered string list from a multipart field. The mobile
// client sends a JSON-encoded array in a single value; repeated fields and a
// bare single value are accepted too.
func parseList(r *http.Request, key string) []string {
	values := r.MultipartForm.Value[key]
	if len(values) == 1 {
		var parsed []string
		if err := json.Unmarshal([]byte(values[0]), &parsed); err == nil {
			return cleanList(parsed)
		}
	}
	return cleanList(values)
}

func cleanList(values []string) []string {
	var out []string
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

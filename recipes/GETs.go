package recipes

import (
	"errors"
	"net/http"

	"rasoi/models"
	"rasoi/userdata"
	"rasoi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// attachAuthors is swapped for a stub in tests.
var attachAuthors = userdata.AttachAuthors

// DispatchGet fans out the three GET shapes that share one route depth:
//
//	/api/recipe/all/:category   public listing
//	/api/recipe/:category/user  the caller's own recipes
//	/api/recipe/:category/:id   a single recipe
//
// httprouter cannot register a literal segment alongside a wildcard at the
// same position, so the split happens here.
func DispatchGet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	first := ps.ByName("category")
	second := ps.ByName("id")

	switch {
	case first == "all":
		getAllRecipes(w, r, second)
	case second == "user":
		getUserRecipes(w, r, first)
	default:
		getRecipe(w, r, first, second)
	}
}

// getAllRecipes is public and never errors on an empty category.
func getAllRecipes(w http.ResponseWriter, r *http.Request, category string) {
	if !models.ValidCategory(category) {
		utils.RespondWithMessage(w, http.StatusNotFound, "Unknown category")
		return
	}

	recipes, err := store.All(r.Context(), category)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}

	if err := attachAuthors(r.Context(), recipes); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, recipes)
}

// getUserRecipes requires auth. An empty result is a 404, which the mobile
// client relies on to render its empty state.
func getUserRecipes(w http.ResponseWriter, r *http.Request, category string) {
	if !models.ValidCategory(category) {
		utils.RespondWithMessage(w, http.StatusNotFound, "Unknown category")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithMessage(w, http.StatusUnauthorized, "Missing token")
		return
	}

	recipes, err := store.ByAuthor(r.Context(), category, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	if len(recipes) == 0 {
		utils.RespondWithMessage(w, http.StatusNotFound, "No Recipes Found Here.")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Here are your recipes",
		"recipes": recipes,
	})
}

func getRecipe(w http.ResponseWriter, r *http.Request, category, idHex string) {
	if !models.ValidCategory(category) {
		utils.RespondWithMessage(w, http.StatusNotFound, "Unknown category")
		return
	}

	id, err := primitive.ObjectIDFromHex(idHex)
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

	single := []models.Recipe{*recipe}
	if err := attachAuthors(r.Context(), single); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, single[0])
}

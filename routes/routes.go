package routes

import (
	"net/http"

	"rasoi/auth"
	"rasoi/middleware"
	"rasoi/recipes"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", auth.Register)
	router.POST("/api/auth/login", auth.Login)
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
}

func AddRecipeRoutes(router *httprouter.Router) {
	router.POST("/api/recipe/add/:category", middleware.Authenticate(recipes.CreateRecipe))
	// One GET route covers /all/:category, /:category/user and /:category/:id;
	// the handler splits them. OptionalAuth lets the public reads through and
	// gives /user its identity when a token is present.
	router.GET("/api/recipe/:category/:id", middleware.OptionalAuth(recipes.DispatchGet))
	router.PUT("/api/recipe/:category/:id", middleware.Authenticate(recipes.UpdateRecipe))
	router.DELETE("/api/recipe/:category/:id", middleware.Authenticate(recipes.DeleteRecipe))
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/uploads/*filepath", http.Dir("./static/uploads"))
}

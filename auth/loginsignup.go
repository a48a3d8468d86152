package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"regexp"
	"time"

	"rasoi/models"
	"rasoi/userdata"
	"rasoi/utils"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.Username == "" || input.Email == "" || input.Password == "" {
		utils.RespondWithMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if len(input.Password) < 6 {
		utils.RespondWithMessage(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}
	if !emailPattern.MatchString(input.Email) {
		utils.RespondWithMessage(w, http.StatusBadRequest, "Invalid email format")
		return
	}

	_, err := Creds.FindByUsernameOrEmail(r.Context(), input.Username, input.Email)
	if err == nil {
		utils.RespondWithMessage(w, http.StatusConflict, "User with this email or username already exists")
		return
	}
	if !errors.Is(err, ErrUserNotFound) {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password", err)
		return
	}

	user := &models.User{
		UserID:    "u" + utils.GenerateID(12),
		Username:  input.Username,
		Email:     input.Email,
		Password:  string(hashedPassword),
		CreatedAt: time.Now(),
	}

	if err := Creds.Create(r.Context(), user); err != nil {
		if errors.Is(err, ErrDuplicate) {
			utils.RespondWithMessage(w, http.StatusConflict, "User with this email or username already exists")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register user", err)
		return
	}

	// Warm the author cache so first reads skip the user lookup.
	userdata.CacheAuthor(user)

	token, err := GenerateToken(user.UserID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token", err)
		return
	}

	log.Printf("Registered user %s", user.Username)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message": "User registered successfully",
		"token":   token,
		"user":    user,
	})
}

func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.Email == "" || input.Password == "" {
		utils.RespondWithMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}

	user, err := Creds.FindByEmail(r.Context(), input.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utils.RespondWithMessage(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondWithMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := GenerateToken(user.UserID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// Logout only confirms the session is ending; tokens stay valid until expiry
// and the client discards its copy.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithMessage(w, http.StatusOK, "Successfully Logged Out")
}

package profile

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"groombook/db"
	"groombook/models"
	"groombook/stats"
	"groombook/utils"
)

// GetProfile returns the caller's own account record.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, user)
}

// GetLoyalty derives the loyalty card from the caller's booking count.
// Nothing is stored; the count is the source of truth.
func GetLoyalty(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	count, err := db.BookingsCollection.CountDocuments(r.Context(), bson.M{"userId": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load loyalty")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, stats.ComputeLoyalty(int(count)))
}

package booking

import (
	"context"
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"groombook/db"
	"groombook/models"
	"groombook/utils"
)

const petPicFolder = "./static/petpic"

// UploadPetPhoto attaches a photo to an existing booking so the
// groomer knows the pet before it arrives. Owner only.
func UploadPetPhoto(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookingID := ps.ByName("id")
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var b models.Booking
	err := db.BookingsCollection.FindOne(r.Context(), bson.M{"id": bookingID}).Decode(&b)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if b.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing photo")
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	if err := utils.EnsureDir(petPicFolder); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save photo")
		return
	}

	filename, err := utils.SaveFile(file, header, petPicFolder)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save photo")
		return
	}

	if err := utils.CreateThumb(petPicFolder, filename, 320); err != nil {
		log.Printf("Failed to create thumbnail for %s: %v", filename, err)
	}

	_, err = db.BookingsCollection.UpdateOne(
		context.TODO(),
		bson.M{"id": bookingID},
		bson.M{"$set": bson.M{"petPhoto": filename}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update booking")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"petPhoto": filename}, "Photo uploaded", nil)
}

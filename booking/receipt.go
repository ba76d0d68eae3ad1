package booking

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"

	"groombook/db"
	"groombook/globals"
	"groombook/middleware"
	"groombook/models"
	"groombook/schedule"
)

// receiptQRPayload returns bookingID|dateKey|time|signature so the
// front desk can verify a printed receipt offline.
func receiptQRPayload(bookingID, dateKey, slot string) string {
	data := fmt.Sprintf("%s|%s|%s", bookingID, dateKey, slot)
	h := hmac.New(sha256.New, globals.JwtSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// PrintReceipt streams a PDF receipt for one booking. Customers can
// only print their own; admins can print any.
func PrintReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookingID := ps.ByName("id")

	tokenString := r.Header.Get("Authorization")
	claims, err := middleware.ValidateJWT(tokenString)
	if err != nil {
		log.Printf("JWT validation error: %v", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var b models.Booking
	err = db.BookingsCollection.FindOne(context.TODO(), bson.M{"id": bookingID}).Decode(&b)
	if err != nil {
		http.Error(w, "Booking not found", http.StatusNotFound)
		return
	}

	if b.UserID != claims.UserID && claims.Role != models.RoleAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	dateKey := schedule.DateKey(b.Date)
	qrPNG, err := qrcode.Encode(receiptQRPayload(b.ID, dateKey, b.Time), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Grooming Appointment")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Booking: %s", b.ID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Service: %s", b.ServiceTitle))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s  Time: %s", dateKey, b.Time))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Owner: %s", b.OwnerName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Pet: %s", b.PetName))
	if b.PetWeightKg != nil {
		pdf.Ln(8)
		pdf.Cell(0, 10, fmt.Sprintf("Weight: %.1f kg", *b.PetWeightKg))
	}
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=booking-"+b.ID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
